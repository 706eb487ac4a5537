// Package logger owns the process root zerolog logger and the request scoped
// children handlers and services log through
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// env reads LOG_ settings directly; config imports this package so it cannot be used here
func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv("LOG_" + key)); v != "" {
		return v
	}
	return def
}

// FromEnv overlays LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT,
// LOG_CALLER and LOG_SAMPLE_EVERY on def
func FromEnv(def Options) Options {
	o := def
	o.Level = strings.ToLower(env("LEVEL", o.Level))
	o.Format = strings.ToLower(env("FORMAT", o.Format))
	o.Service = env("SERVICE", o.Service)
	o.Component = env("COMPONENT", o.Component)
	if b, err := strconv.ParseBool(env("CALLER", "")); err == nil {
		o.WithCaller = b
	}
	if n, err := strconv.Atoi(env("SAMPLE_EVERY", "")); err == nil && n > 0 {
		o.SampleEvery = n
	}
	return o
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger] // internal storage of the root logger
	inited atomic.Bool
)

// Logger is the logging type every package uses
type Logger = zerolog.Logger

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv(Options{Level: "debug", Format: "console"}))
	}
	return root.Load()
}

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		}

		fields := map[string]string{"service": opt.Service, "component": opt.Component}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields["go_version"] = bi.GoVersion
		}
		for k, v := range opt.StaticFields {
			fields[k] = v
		}
		b := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		for k, v := range fields {
			if v != "" {
				b = b.Str(k, v)
			}
		}
		if opt.WithCaller {
			b = b.Caller()
		}

		log := b.Logger()
		if opt.SampleEvery > 1 {
			log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&log)
		inited.Store(true)
	})
}

// parseLevel falls back to debug on anything zerolog does not know
func parseLevel(s string) zerolog.Level {
	s = strings.TrimSpace(s)
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"request_id"}
	keyUserID    = ctxKey{"user_id"}
)

// WithRequest annotates ctx with common request-scoped fields
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// C returns a child of the root logger carrying the request_id and user_id stored by WithRequest
func C(ctx context.Context) *Logger {
	b := Get().With()
	for _, k := range []ctxKey{keyRequestID, keyUserID} {
		if s, _ := ctx.Value(k).(string); s != "" {
			b = b.Str(k.name, s)
		}
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
