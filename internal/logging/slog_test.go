package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "cart").Info(context.Background(), "added", "item", 3)

	out := buf.String()
	assert.Contains(t, out, "component=cart")
	assert.Contains(t, out, "item=3")
}

func TestZerologLogger_LevelsAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.With("component", "store").Warn(ctx, "corrupt record", "key", "currentUser")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"component":"store"`)
	assert.Contains(t, out, `"key":"currentUser"`)
}

func TestZerologLogger_OddFieldsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	require.NotPanics(t, func() {
		log.Info(context.Background(), "odd", "dangling")
	})
	assert.Contains(t, buf.String(), `"message":"odd"`)
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format  string
		level   string
		wantErr bool
		want    string
	}{
		{format: FormatText, level: "info", want: "msg=hello"},
		{format: FormatJSON, level: "info", want: `"msg":"hello"`},
		{format: FormatConsole, level: "info", want: "hello"},
		{format: "xml", level: "info", wantErr: true},
		{format: FormatText, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(&buf, tt.format, tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			l.Info(context.Background(), "hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	l := Nop().With("k", "v")
	require.NotPanics(t, func() {
		l.Error(context.Background(), "nothing")
	})
}

func TestNewSlogWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newSlogWriter(&buf, true, slog.LevelWarn)
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.With("component", "storage").Warn(ctx, "session store cleared")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"component":"storage"`)
	assert.Contains(t, out, `"msg":"session store cleared"`)
}
