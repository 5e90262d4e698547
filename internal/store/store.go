// Package store is the persistence gateway: three independent key-value
// slots (task collection, user profile, theme flag), JSON-serialized, read
// once at startup and written whole on every change. An absent slot is
// distinguished from an explicitly empty or false value so callers can fall
// back to computed defaults.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskflow-app/taskflow/internal/models"
)

// Slot names. The redis backend prefixes them, the postgres backend uses
// them as primary keys.
const (
	SlotTasks   = "tasks"
	SlotProfile = "profile"
	SlotTheme   = "theme"
)

// Store is the persistence gateway interface. LoadProfile and LoadTheme
// return (nil, nil) when the slot was never set.
type Store interface {
	LoadTasks(ctx context.Context) ([]models.Task, error)
	SaveTasks(ctx context.Context, tasks []models.Task) error

	LoadProfile(ctx context.Context) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	DeleteProfile(ctx context.Context) error

	LoadTheme(ctx context.Context) (*bool, error)
	SaveTheme(ctx context.Context, dark bool) error

	// Reset clears the task and profile slots (logout semantics). The theme
	// flag survives a reset.
	Reset(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

// KV is the minimal slot access a backend must provide. Get returns
// ok=false when the slot was never set.
type KV interface {
	Get(ctx context.Context, slot string) (value []byte, ok bool, err error)
	Set(ctx context.Context, slot string, value []byte) error
	Delete(ctx context.Context, slot string) error
	Ping(ctx context.Context) error
	Close() error
}

// Gateway implements Store over any KV backend.
type Gateway struct {
	kv KV
}

// NewGateway wraps a KV backend in the slot gateway.
func NewGateway(kv KV) *Gateway {
	return &Gateway{kv: kv}
}

var _ Store = (*Gateway)(nil)

// KV exposes the underlying backend. Callers that can share its
// connection, like the rate limiter over Redis, reach it through here.
func (g *Gateway) KV() KV {
	return g.kv
}

// LoadTasks loads the full task collection. A never-set slot is an empty
// collection. Stored tasks with unknown enum values are rejected rather
// than silently carried forward.
func (g *Gateway) LoadTasks(ctx context.Context) ([]models.Task, error) {
	raw, ok, err := g.kv.Get(ctx, SlotTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if !ok {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode stored tasks: %w", err)
	}
	for i := range tasks {
		if err := validateStoredTask(&tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// SaveTasks replaces the whole task collection.
func (g *Gateway) SaveTasks(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := g.kv.Set(ctx, SlotTasks, raw); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// LoadProfile loads the user profile, or (nil, nil) when onboarding has
// not happened yet.
func (g *Gateway) LoadProfile(ctx context.Context) (*models.UserProfile, error) {
	raw, ok, err := g.kv.Get(ctx, SlotProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	if profile.Name == "" {
		return nil, fmt.Errorf("stored profile has empty name")
	}
	return &profile, nil
}

// SaveProfile stores the user profile.
func (g *Gateway) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile == nil || profile.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := g.kv.Set(ctx, SlotProfile, raw); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile slot, returning the app to onboarding
// state.
func (g *Gateway) DeleteProfile(ctx context.Context) error {
	if err := g.kv.Delete(ctx, SlotProfile); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// LoadTheme loads the dark-mode flag, or (nil, nil) when never set so the
// caller can apply the platform preference instead.
func (g *Gateway) LoadTheme(ctx context.Context) (*bool, error) {
	raw, ok, err := g.kv.Get(ctx, SlotTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var dark bool
	if err := json.Unmarshal(raw, &dark); err != nil {
		return nil, fmt.Errorf("failed to decode stored theme: %w", err)
	}
	return &dark, nil
}

// SaveTheme stores the dark-mode flag.
func (g *Gateway) SaveTheme(ctx context.Context, dark bool) error {
	raw, err := json.Marshal(dark)
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := g.kv.Set(ctx, SlotTheme, raw); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Reset clears tasks and profile together.
func (g *Gateway) Reset(ctx context.Context) error {
	if err := g.kv.Delete(ctx, SlotTasks); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return g.DeleteProfile(ctx)
}

// Ping checks backend reachability.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.kv.Ping(ctx)
}

// Close closes the backend connection.
func (g *Gateway) Close() error {
	return g.kv.Close()
}

func validateStoredTask(t *models.Task) error {
	if t.ID == "" {
		return fmt.Errorf("stored task has empty id")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("stored task %s has invalid type %q", t.ID, t.Type)
	}
	if !t.Duration.Unit.Valid() {
		return fmt.Errorf("stored task %s has invalid duration unit %q", t.ID, t.Duration.Unit)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("stored task %s has invalid priority %q", t.ID, t.Priority)
	}
	return nil
}
