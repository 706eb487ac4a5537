// Package monitor is the client side error monitor: every report goes to the
// zerolog stream and, when a Reporter is attached, to the telemetry endpoint
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"videotube/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Level of a report
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Fields is free-form context attached to a report (component, action, ids)
type Fields map[string]any

// Report is one monitored event as forwarded to a Reporter
type Report struct {
	Level     Level     `json:"level" validate:"required,oneof=error warning"`
	Message   string    `json:"message" validate:"required,max=2000"`
	Component string    `json:"component,omitempty" validate:"max=100"`
	Action    string    `json:"action,omitempty" validate:"max=100"`
	UserID    string    `json:"userId,omitempty"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Context   Fields    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Reporter ships reports somewhere durable
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// Monitor is safe for concurrent use
type Monitor struct {
	mu       sync.RWMutex
	reporter Reporter
	userID   string
	email    string

	log logger.Logger
	now func() time.Time
}

// New returns a Monitor; r may be nil to only log
func New(r Reporter) *Monitor {
	return &Monitor{reporter: r, log: *logger.Named("monitor"), now: time.Now}
}

var def atomic.Pointer[Monitor]

// Get returns the process-wide monitor, creating a log-only one on first use
func Get() *Monitor {
	if m := def.Load(); m != nil {
		return m
	}
	def.CompareAndSwap(nil, New(nil))
	return def.Load()
}

// SetDefault replaces the process-wide monitor
func SetDefault(m *Monitor) { def.Store(m) }

// SetReporter attaches or detaches the forwarding target
func (m *Monitor) SetReporter(r Reporter) {
	m.mu.Lock()
	m.reporter = r
	m.mu.Unlock()
}

// SetUser tags subsequent reports with the signed-in user
func (m *Monitor) SetUser(id, email string) {
	m.mu.Lock()
	m.userID, m.email = id, email
	m.mu.Unlock()
	m.log.Debug().Str("user_id", id).Msg("monitor user set")
}

// ClearUser drops the user tag, e.g. on sign-out
func (m *Monitor) ClearUser() {
	m.mu.Lock()
	m.userID, m.email = "", ""
	m.mu.Unlock()
	m.log.Debug().Msg("monitor user cleared")
}

// User returns the current user tag
func (m *Monitor) User() (id, email string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID, m.email
}

// LogError records err with optional context
func (m *Monitor) LogError(ctx context.Context, err error, f Fields) {
	if err == nil {
		return
	}
	m.emit(ctx, LevelError, err.Error(), err, f)
}

// LogWarning records a non-fatal condition
func (m *Monitor) LogWarning(ctx context.Context, msg string, f Fields) {
	m.emit(ctx, LevelWarning, msg, nil, f)
}

func (m *Monitor) emit(ctx context.Context, lvl Level, msg string, err error, f Fields) {
	m.mu.RLock()
	rep, uid, email := m.reporter, m.userID, m.email
	m.mu.RUnlock()

	r := Report{Level: lvl, Message: msg, UserID: uid, Email: email, Timestamp: m.now().UTC()}
	if len(f) > 0 {
		r.Context = make(Fields, len(f))
		for k, v := range f {
			switch k {
			case "component":
				r.Component, _ = v.(string)
			case "action":
				r.Action, _ = v.(string)
			default:
				r.Context[k] = v
			}
		}
	}

	var ev *zerolog.Event
	if lvl == LevelError {
		ev = logger.C(ctx).Error().Err(err)
	} else {
		ev = logger.C(ctx).Warn()
	}
	ev = ev.Str("component", r.Component).Str("action", r.Action)
	if uid != "" {
		ev = ev.Str("user_id", uid)
	}
	if len(r.Context) > 0 {
		ev = ev.Fields(map[string]any(r.Context))
	}
	ev.Msg(msg)

	if rep == nil {
		return
	}
	// a cancelled caller should not lose its own error report
	if rerr := rep.Report(context.WithoutCancel(ctx), r); rerr != nil {
		m.log.Debug().Err(rerr).Msg("monitor report forward failed")
	}
}
