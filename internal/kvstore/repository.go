// Package kvstore provides byte-oriented key/value repositories used as the
// backing storage for storefront records.
//
// Backends:
//   - MemoryRepository: process-local map (tests, throwaway sessions)
//   - SQLRepository: SQLite (modernc.org/sqlite) or PostgreSQL (pgx stdlib),
//     schema managed by goose migrations
//   - RedisRepository: go-redis, optional per-key TTL
//   - S3Repository: one object per key in an S3-compatible bucket
//
// All backends share the same contract: Get returns (nil, nil) for a missing
// key, Set overwrites, Delete of a missing key is not an error.
package kvstore

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
