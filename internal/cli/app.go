package cli

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/deliciousbites/internal/catalog"
	"github.com/dmitrijs2005/deliciousbites/internal/config"
	"github.com/dmitrijs2005/deliciousbites/internal/filex"
	"github.com/dmitrijs2005/deliciousbites/internal/kvstore"
	"github.com/dmitrijs2005/deliciousbites/internal/logging"
	"github.com/dmitrijs2005/deliciousbites/internal/storage"
	"github.com/dmitrijs2005/deliciousbites/internal/storefront"
)

// sleep is a test seam for UI pacing delays.
var sleep = time.Sleep

type App struct {
	config  *config.Config
	log     logging.Logger
	catalog *catalog.Catalog
	store   *storage.Store
	closers []io.Closer

	shop  *storefront.Storefront
	unsub func()
	snap  storefront.Snapshot

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured backends and builds the storefront. The caller
// must Close the App.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	cat, err := loadCatalog(c.CatalogPath)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "catalog loaded", "items", cat.Len())

	var closers []io.Closer
	fail := func(err error) (*App, error) {
		closeAll(closers)
		return nil, err
	}

	durable, closer, err := openDurable(ctx, c)
	if err != nil {
		return fail(err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	ephemeral, closer, err := openEphemeral(ctx, c)
	if err != nil {
		return fail(err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	secret := c.SessionSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return fail(err)
		}
		if c.SessionStore != config.StoreMemory {
			log.Warn(ctx, "no session secret configured, sessions will not survive a restart", "session_store", c.SessionStore)
		}
	}

	store := storage.New(durable, ephemeral, storage.NewTokenCodec([]byte(secret), c.SessionTTL), log)

	a := newApp(c, log, cat, store, bufio.NewReader(os.Stdin), os.Stdout)
	a.closers = closers
	a.open(ctx)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, cat *catalog.Catalog, store *storage.Store, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, log: log, catalog: cat, store: store, reader: r, out: w}
}

// open builds a fresh storefront from storage and subscribes to its changes.
func (a *App) open(ctx context.Context) {
	if a.unsub != nil {
		a.unsub()
	}
	a.shop = storefront.New(ctx, a.catalog, a.store, a.log)
	a.snap = a.shop.Snapshot()
	a.unsub = a.shop.OnChange(func(s storefront.Snapshot) {
		a.snap = s
	})
}

// Run prints the banner and blocks in the REPL until the user exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Delicious Bites (type 'help' for commands)")
	if acc := a.snap.Account; acc != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", acc.Name)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the storage backends.
func (a *App) Close() error {
	if a.unsub != nil {
		a.unsub()
	}
	return closeAll(a.closers)
}

func (a *App) isLoggedIn() bool {
	return a.snap.Account != nil
}

func (a *App) getStatus() string {
	return status(a.snap)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func openDurable(ctx context.Context, c *config.Config) (kvstore.Repository, io.Closer, error) {
	switch c.Store {
	case config.StoreMemory:
		return kvstore.NewMemoryRepository(), nil, nil
	case config.StoreSQLite:
		return openSQLite(ctx, c.DSN)
	case config.StorePostgres:
		repo, db, err := kvstore.OpenSQL(ctx, kvstore.Postgres, c.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, db, nil
	case config.StoreS3:
		repo, err := kvstore.OpenS3(ctx, kvstore.S3Options{
			Region:    c.S3.Region,
			Endpoint:  c.S3.Endpoint,
			Bucket:    c.S3.Bucket,
			Prefix:    c.S3.Prefix,
			AccessKey: c.S3.AccessKey,
			SecretKey: c.S3.SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

func openEphemeral(ctx context.Context, c *config.Config) (kvstore.Repository, io.Closer, error) {
	switch c.SessionStore {
	case config.StoreMemory:
		return kvstore.NewMemoryRepository(), nil, nil
	case config.StoreSQLite:
		if c.SessionDSN == "" {
			return nil, nil, errors.New("sqlite session store needs a session DSN")
		}
		if c.Store == config.StoreSQLite && c.SessionDSN == c.DSN {
			return nil, nil, errors.New("sqlite session store must not share the durable database")
		}
		return openSQLite(ctx, c.SessionDSN)
	case config.StoreRedis:
		client, err := kvstore.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.NewRedisRepository(client, kvstore.DefaultRedisPrefix, c.SessionTTL), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", c.SessionStore)
	}
}

func openSQLite(ctx context.Context, dsn string) (kvstore.Repository, io.Closer, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, nil, err
	}
	repo, db, err := kvstore.OpenSQL(ctx, kvstore.SQLite, dsn)
	if err != nil {
		return nil, nil, err
	}
	return repo, db, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
