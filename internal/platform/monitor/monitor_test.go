package monitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

type captureReporter struct {
	got []Report
	err error
}

func (c *captureReporter) Report(_ context.Context, r Report) error {
	c.got = append(c.got, r)
	return c.err
}

func TestLogError_ForwardsWithUserAndFields(t *testing.T) {
	rep := &captureReporter{}
	m := New(rep)
	m.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	m.SetUser("u-1", "u@example.com")

	m.LogError(context.Background(), errors.New("boom"), Fields{"component": "VideoGrid", "action": "fetch", "videoId": "v1"})

	if len(rep.got) != 1 {
		t.Fatalf("reports = %d", len(rep.got))
	}
	r := rep.got[0]
	if r.Level != LevelError || r.Message != "boom" || r.Component != "VideoGrid" || r.Action != "fetch" {
		t.Fatalf("report = %+v", r)
	}
	if r.UserID != "u-1" || r.Email != "u@example.com" || r.Context["videoId"] != "v1" {
		t.Fatalf("report = %+v", r)
	}
	if _, ok := r.Context["component"]; ok {
		t.Fatalf("component should be lifted out of context")
	}
}

func TestClearUserAndNilError(t *testing.T) {
	rep := &captureReporter{err: errors.New("offline")}
	m := New(rep)
	m.SetUser("u-1", "")
	m.ClearUser()
	if id, _ := m.User(); id != "" {
		t.Fatalf("user not cleared")
	}

	m.LogError(context.Background(), nil, nil)
	if len(rep.got) != 0 {
		t.Fatalf("nil error must not report")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.LogWarning(ctx, "slow", nil)
	if len(rep.got) != 1 || rep.got[0].Level != LevelWarning || rep.got[0].UserID != "" {
		t.Fatalf("got %+v", rep.got)
	}
}

func TestGetReturnsSingleton(t *testing.T) {
	if Get() != Get() {
		t.Fatalf("Get must return the same monitor")
	}
	m := New(nil)
	prev := Get()
	SetDefault(m)
	defer SetDefault(prev)
	if Get() != m {
		t.Fatalf("SetDefault not applied")
	}
}
