// Package store persists the lifecycle of mounted alert instances so that a
// dismissed alert stays dismissed for the life of its ID.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/TimeAway/blog-design/internal/apperror"
)

var ErrNotFound = errors.New("alert instance not found")

type Instance struct {
	ID          string
	Kind        string
	CreatedAt   time.Time
	DismissedAt *time.Time
	LeftAt      *time.Time
}

func (i Instance) Dismissed() bool {
	return i.DismissedAt != nil
}

type Store interface {
	// Create records a new instance, or returns the existing record when the
	// ID is already known.
	Create(ctx context.Context, id, kind string) (Instance, error)
	Get(ctx context.Context, id string) (Instance, error)
	// MarkDismissed reports whether this call performed the dismissal.
	MarkDismissed(ctx context.Context, id string, at time.Time) (bool, error)
	// MarkLeft reports whether this call recorded the end of the exit
	// transition. It is a no-op for instances that were never dismissed.
	MarkLeft(ctx context.Context, id string, at time.Time) (bool, error)
}

const timeLayout = time.RFC3339Nano

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, id, kind string) (Instance, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alert_instances (id, kind, created_at) VALUES (?, ?, ?)`,
		id, kind, now.Format(timeLayout),
	)
	if err == nil {
		return Instance{ID: id, Kind: kind, CreatedAt: now}, nil
	}
	if apperror.IsUniqueConstraintViolation(err) {
		return s.Get(ctx, id)
	}
	return Instance{}, fmt.Errorf("inserting alert instance: %w", err)
}

func (s *SQLStore) Get(ctx context.Context, id string) (Instance, error) {
	var (
		inst        Instance
		createdAt   string
		dismissedAt sql.NullString
		leftAt      sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, created_at, dismissed_at, left_at FROM alert_instances WHERE id = ?`, id,
	).Scan(&inst.ID, &inst.Kind, &createdAt, &dismissedAt, &leftAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Instance{}, ErrNotFound
	}
	if err != nil {
		return Instance{}, fmt.Errorf("querying alert instance: %w", err)
	}

	if inst.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Instance{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if inst.DismissedAt, err = parseNullTime(dismissedAt); err != nil {
		return Instance{}, fmt.Errorf("parsing dismissed_at: %w", err)
	}
	if inst.LeftAt, err = parseNullTime(leftAt); err != nil {
		return Instance{}, fmt.Errorf("parsing left_at: %w", err)
	}
	return inst, nil
}

func (s *SQLStore) MarkDismissed(ctx context.Context, id string, at time.Time) (bool, error) {
	return s.markOnce(ctx,
		`UPDATE alert_instances SET dismissed_at = ? WHERE id = ? AND dismissed_at IS NULL`,
		id, at)
}

func (s *SQLStore) MarkLeft(ctx context.Context, id string, at time.Time) (bool, error) {
	return s.markOnce(ctx,
		`UPDATE alert_instances SET left_at = ? WHERE id = ? AND dismissed_at IS NOT NULL AND left_at IS NULL`,
		id, at)
}

// markOnce runs a conditional update; exactly one caller sees a changed row.
func (s *SQLStore) markOnce(ctx context.Context, query, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, at.UTC().Format(timeLayout), id)
	if err != nil {
		return false, fmt.Errorf("updating alert instance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 1 {
		return true, nil
	}
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MemoryStore keeps instances in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	instances map[string]Instance
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{instances: make(map[string]Instance)}
}

func (m *MemoryStore) Create(_ context.Context, id, kind string) (Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.instances[id]; ok {
		return inst, nil
	}
	inst := Instance{ID: id, Kind: kind, CreatedAt: time.Now().UTC()}
	m.instances[id] = inst
	return inst, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	if !ok {
		return Instance{}, ErrNotFound
	}
	return inst, nil
}

func (m *MemoryStore) MarkDismissed(_ context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	if !ok {
		return false, ErrNotFound
	}
	if inst.DismissedAt != nil {
		return false, nil
	}
	at = at.UTC()
	inst.DismissedAt = &at
	m.instances[id] = inst
	return true, nil
}

func (m *MemoryStore) MarkLeft(_ context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instances[id]
	if !ok {
		return false, ErrNotFound
	}
	if inst.DismissedAt == nil || inst.LeftAt != nil {
		return false, nil
	}
	at = at.UTC()
	inst.LeftAt = &at
	m.instances[id] = inst
	return true, nil
}
