package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/TimeAway/blog-design/internal/store"
	"github.com/TimeAway/blog-design/internal/ulid"
)

type instanceDefaults struct {
	id        string
	kind      string
	dismissed bool
	left      bool
}

type InstanceOption func(*instanceDefaults)

func WithInstanceID(id string) InstanceOption {
	return func(d *instanceDefaults) { d.id = id }
}

func WithKind(kind string) InstanceOption {
	return func(d *instanceDefaults) { d.kind = kind }
}

// Dismissed records the instance as dismissed.
func Dismissed() InstanceOption {
	return func(d *instanceDefaults) { d.dismissed = true }
}

// Left records the instance as dismissed with its exit transition finished.
func Left() InstanceOption {
	return func(d *instanceDefaults) {
		d.dismissed = true
		d.left = true
	}
}

func CreateTestInstance(t *testing.T, s store.Store, opts ...InstanceOption) store.Instance {
	t.Helper()

	defaults := instanceDefaults{
		id:   ulid.New(),
		kind: "info",
	}
	for _, opt := range opts {
		opt(&defaults)
	}

	ctx := context.Background()
	if _, err := s.Create(ctx, defaults.id, defaults.kind); err != nil {
		t.Fatalf("creating test instance: %v", err)
	}
	if defaults.dismissed {
		if _, err := s.MarkDismissed(ctx, defaults.id, time.Now()); err != nil {
			t.Fatalf("dismissing test instance: %v", err)
		}
	}
	if defaults.left {
		if _, err := s.MarkLeft(ctx, defaults.id, time.Now()); err != nil {
			t.Fatalf("finishing test instance: %v", err)
		}
	}

	inst, err := s.Get(ctx, defaults.id)
	if err != nil {
		t.Fatalf("reloading test instance: %v", err)
	}
	return inst
}
