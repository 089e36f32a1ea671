package writable

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestWithName(t *testing.T) {
	s := New(0, WithName("count"))
	if s.Name() != "count" {
		t.Errorf("Name() = %q, want %q", s.Name(), "count")
	}
}

func TestWithName_EmptyKeepsDefault(t *testing.T) {
	s := New(0, WithName(""))
	if s.Name() != defaultName {
		t.Errorf("Name() = %q, want %q", s.Name(), defaultName)
	}
}

func TestWithLogger_NilIgnored(t *testing.T) {
	s := New(0, WithLogger(nil))
	if s.logger == nil {
		t.Fatal("logger = nil, want slog.Default()")
	}
}

func TestNew_NilOptionIgnored(t *testing.T) {
	s := New(0, nil, WithName("x"))
	if s.Name() != "x" {
		t.Errorf("Name() = %q, want %q", s.Name(), "x")
	}
}

func TestWithLogger_SubscriptionEventsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(0, WithName("count"), WithLogger(logger))
	unsub := s.Subscribe(func(int) {})
	unsub()
	unsub()

	output := buf.String()
	for _, want := range []string{
		`"msg":"subscriber added"`,
		`"msg":"subscriber removed"`,
		`"store":"count"`,
		`"store_id":"` + s.ID() + `"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %s\nGot: %s", want, output)
		}
	}

	// the second unsub is a no-op and must not log again
	if n := strings.Count(output, "subscriber removed"); n != 1 {
		t.Errorf("subscriber removed logged %d times, want 1", n)
	}
}

func TestWithPanicRecovery_ContinuesRound(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	s := New(0, WithName("count"), WithLogger(logger), WithPanicRecovery())
	var after recorder[int]

	s.Subscribe(func(v int) {
		if v == 1 {
			panic("subscriber failed")
		}
	})
	s.Subscribe(after.record)

	s.Set(1) // must not panic

	if got := after.got(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("later subscriber received %v, want [0 1]", got)
	}

	output := buf.String()
	for _, want := range []string{
		`"msg":"subscriber panicked"`,
		`"panic":"subscriber failed"`,
		`"correlation_id"`,
		`"stack"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %s\nGot: %s", want, output)
		}
	}
}

func TestWithPanicRecovery_ImmediateNotificationKeepsSubscription(t *testing.T) {
	s := New(0, WithLogger(testLogger()), WithPanicRecovery())

	s.Subscribe(func(v int) {
		if v == 0 {
			panic("not ready")
		}
	})

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestWithPanicRecovery_UpdateCallbackStillPanics(t *testing.T) {
	s := New(0, WithLogger(testLogger()), WithPanicRecovery())

	mustPanic(t, func() {
		s.Update(func(int) int { panic("transform failed") })
	})
}
