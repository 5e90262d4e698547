package store

import (
	"context"
	"testing"

	"github.com/taskflow-app/taskflow/internal/models"
)

func TestGateway_TasksSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewMemoryStore()

	// Never-set slot loads as an empty collection.
	tasks, err := g.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks on empty store: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d tasks", len(tasks))
	}

	saved := []models.Task{
		{
			ID:        "t1",
			Title:     "write report",
			Type:      models.TaskTypeDaily,
			CreatedAt: 1700000000000,
			Duration:  models.Duration{Value: 2, Unit: models.UnitHours},
			Priority:  models.PriorityHigh,
			Subtasks:  []models.Subtask{{ID: "s1", Title: "outline"}},
		},
	}
	if err := g.SaveTasks(ctx, saved); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}

	loaded, err := g.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "t1" || loaded[0].Subtasks[0].Title != "outline" {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}

	// Saving an explicitly empty collection is distinct from never-set but
	// loads the same way.
	if err := g.SaveTasks(ctx, nil); err != nil {
		t.Fatalf("SaveTasks(nil): %v", err)
	}
	loaded, err = g.LoadTasks(ctx)
	if err != nil || len(loaded) != 0 {
		t.Errorf("expected empty collection after clearing save, got %v (%v)", loaded, err)
	}
}

func TestGateway_RejectsCorruptTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()
	g := NewGateway(kv)

	corrupt := []byte(`[{"id":"t1","title":"x","type":"SOMEDAY","createdAt":1,` +
		`"duration":{"value":1,"unit":"hours"},"priority":"low","completed":false}]`)
	if err := kv.Set(ctx, SlotTasks, corrupt); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := g.LoadTasks(ctx); err == nil {
		t.Error("expected error loading task with invalid type enum")
	}
}

func TestGateway_ProfileSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewMemoryStore()

	// Absent profile means onboarding state, not an error.
	profile, err := g.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile on empty store: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}

	if err := g.SaveProfile(ctx, &models.UserProfile{Name: "Ada", Onboarded: true}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	profile, err = g.LoadProfile(ctx)
	if err != nil || profile == nil || profile.Name != "Ada" || !profile.Onboarded {
		t.Errorf("profile round-trip mismatch: %+v (%v)", profile, err)
	}

	if err := g.SaveProfile(ctx, &models.UserProfile{}); err == nil {
		t.Error("expected error saving profile without a name")
	}

	if err := g.DeleteProfile(ctx); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	profile, err = g.LoadProfile(ctx)
	if err != nil || profile != nil {
		t.Errorf("expected absent profile after delete, got %+v (%v)", profile, err)
	}
}

func TestGateway_ThemeSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewMemoryStore()

	// Never-set is nil so the client can fall back to the platform
	// preference; an explicit false must survive as false.
	dark, err := g.LoadTheme(ctx)
	if err != nil {
		t.Fatalf("LoadTheme on empty store: %v", err)
	}
	if dark != nil {
		t.Fatalf("expected nil theme, got %v", *dark)
	}

	if err := g.SaveTheme(ctx, false); err != nil {
		t.Fatalf("SaveTheme(false): %v", err)
	}
	dark, err = g.LoadTheme(ctx)
	if err != nil || dark == nil || *dark != false {
		t.Errorf("expected explicit false theme, got %v (%v)", dark, err)
	}

	if err := g.SaveTheme(ctx, true); err != nil {
		t.Fatalf("SaveTheme(true): %v", err)
	}
	dark, _ = g.LoadTheme(ctx)
	if dark == nil || *dark != true {
		t.Errorf("expected true theme, got %v", dark)
	}
}

func TestGateway_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewMemoryStore()

	seed := []models.Task{{
		ID: "t1", Title: "x", Type: models.TaskTypeDaily, CreatedAt: 1,
		Duration: models.Duration{Value: 1, Unit: models.UnitMinutes},
		Priority: models.PriorityLow,
	}}
	if err := g.SaveTasks(ctx, seed); err != nil {
		t.Fatal(err)
	}
	if err := g.SaveProfile(ctx, &models.UserProfile{Name: "Ada", Onboarded: true}); err != nil {
		t.Fatal(err)
	}
	if err := g.SaveTheme(ctx, true); err != nil {
		t.Fatal(err)
	}

	if err := g.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	tasks, _ := g.LoadTasks(ctx)
	if len(tasks) != 0 {
		t.Error("tasks survived reset")
	}
	profile, _ := g.LoadProfile(ctx)
	if profile != nil {
		t.Error("profile survived reset")
	}
	dark, _ := g.LoadTheme(ctx)
	if dark == nil || !*dark {
		t.Error("theme should survive reset")
	}
}
