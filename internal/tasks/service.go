// Package tasks holds the application state container. All task, profile,
// and theme state lives here behind one lock, loaded from the persistence
// gateway at startup and written through on every mutation.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow-app/taskflow/internal/engine"
	"github.com/taskflow-app/taskflow/internal/logger"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/services/ai"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/internal/validation"
	"go.uber.org/zap"
)

var (
	// ErrTaskNotFound is returned when a task ID does not exist
	ErrTaskNotFound = errors.New("task not found")
	// ErrTitleRequired is returned when a task is created or updated with an empty title
	ErrTitleRequired = errors.New("task title is required")
	// ErrSuggestionInFlight is returned when a breakdown for the same title
	// is already being generated. At most one request per draft may be
	// outstanding.
	ErrSuggestionInFlight = errors.New("suggestion already in flight for this title")
	// ErrNoProvider is returned when no suggestion provider is configured
	ErrNoProvider = errors.New("no suggestion provider configured")
)

// CreateTaskInput is the caller-supplied portion of a new task. ID,
// CreatedAt, and Completed are owned by the service.
type CreateTaskInput struct {
	Title       string
	Description string
	Type        models.TaskType
	Duration    models.Duration
	Priority    models.Priority
	DueDate     *int64
	Subtasks    []string
}

// UpdateTaskInput replaces a task's editable fields, type included. ID,
// CreatedAt, and completion state are preserved from the stored task.
type UpdateTaskInput struct {
	Title       string
	Description string
	Type        models.TaskType
	Duration    models.Duration
	Priority    models.Priority
	DueDate     *int64
	Subtasks    []models.Subtask
}

// Stats is an aggregate snapshot over all tasks.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Daily     int `json:"daily"`
	LongTerm  int `json:"longTerm"`
	Progress  int `json:"progress"`
}

// Service owns the in-memory task list, user profile, and theme flag. It is
// the explicit state container; nothing else in the process holds task
// state. Safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	tasks    []models.Task
	profile  *models.UserProfile
	theme    *bool
	store    store.Store
	provider ai.SuggestionProvider
	logger   *zap.Logger
	loc      *time.Location

	inflight map[string]struct{}
}

// NewService creates a service backed by the given store. provider may be
// nil, in which case Suggest returns ErrNoProvider.
func NewService(st store.Store, provider ai.SuggestionProvider, log *zap.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:    st,
		provider: provider,
		logger:   log,
		loc:      loc,
		inflight: make(map[string]struct{}),
	}
}

// Load hydrates the container from the store. Call once at startup before
// serving requests.
func (s *Service) Load(ctx context.Context) error {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	profile, err := s.store.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	theme, err := s.store.LoadTheme(ctx)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.profile = profile
	s.theme = theme

	s.logger.Info("state_loaded",
		zap.Int("task_count", len(tasks)),
		zap.Bool("onboarded", profile != nil && profile.Onboarded),
	)
	return nil
}

// Create adds a new task and persists the list. Due dates are snapped to
// the end of their calendar day.
func (s *Service) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := validation.SanitizeText(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: validation.SanitizeText(input.Description),
		Type:        input.Type,
		Completed:   false,
		CreatedAt:   models.NowMilli(),
		Duration:    input.Duration,
		Priority:    input.Priority,
	}
	if input.DueDate != nil {
		due := models.NormalizeDueDate(*input.DueDate, s.loc)
		task.DueDate = &due
	}
	for _, st := range input.Subtasks {
		st = validation.SanitizeText(st)
		if st == "" {
			continue
		}
		task.Subtasks = append(task.Subtasks, models.Subtask{
			ID:    uuid.New().String(),
			Title: st,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	if err := s.store.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, fmt.Errorf("failed to persist tasks: %w", err)
	}

	s.logger.Info("task_created",
		zap.String("task_id", task.ID),
		zap.String("type", string(task.Type)),
	)
	return &task, nil
}

// Update replaces a task's editable fields. ID, CreatedAt, Type, and
// Completed are preserved.
func (s *Service) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	title := validation.SanitizeText(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	prev := s.tasks[idx]
	updated := prev
	updated.Title = title
	updated.Description = validation.SanitizeText(input.Description)
	updated.Type = input.Type
	updated.Duration = input.Duration
	updated.Priority = input.Priority
	updated.DueDate = nil
	if input.DueDate != nil {
		due := models.NormalizeDueDate(*input.DueDate, s.loc)
		updated.DueDate = &due
	}
	updated.Subtasks = input.Subtasks
	for i := range updated.Subtasks {
		if updated.Subtasks[i].ID == "" {
			updated.Subtasks[i].ID = uuid.New().String()
		}
	}

	s.tasks[idx] = updated
	if err := s.store.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks[idx] = prev
		return nil, fmt.Errorf("failed to persist tasks: %w", err)
	}

	s.logger.Info("task_updated", zap.String("task_id", id))
	return &updated, nil
}

// Toggle flips a task's completion state.
func (s *Service) Toggle(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	s.tasks[idx].Completed = !s.tasks[idx].Completed
	if err := s.store.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks[idx].Completed = !s.tasks[idx].Completed
		return nil, fmt.Errorf("failed to persist tasks: %w", err)
	}

	task := s.tasks[idx]
	s.logger.Info("task_toggled",
		zap.String("task_id", id),
		zap.Bool("completed", task.Completed),
	)
	return &task, nil
}

// ToggleSubtask flips one subtask's completion state.
func (s *Service) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(taskID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	found := false
	for i := range s.tasks[idx].Subtasks {
		if s.tasks[idx].Subtasks[i].ID == subtaskID {
			s.tasks[idx].Subtasks[i].Completed = !s.tasks[idx].Subtasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, ErrTaskNotFound
	}

	if err := s.store.SaveTasks(ctx, s.tasks); err != nil {
		for i := range s.tasks[idx].Subtasks {
			if s.tasks[idx].Subtasks[i].ID == subtaskID {
				s.tasks[idx].Subtasks[i].Completed = !s.tasks[idx].Subtasks[i].Completed
			}
		}
		return nil, fmt.Errorf("failed to persist tasks: %w", err)
	}

	task := s.tasks[idx]
	return &task, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrTaskNotFound
	}

	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if err := s.store.SaveTasks(ctx, s.tasks); err != nil {
		s.tasks = append(s.tasks[:idx], append([]models.Task{removed}, s.tasks[idx:]...)...)
		return fmt.Errorf("failed to persist tasks: %w", err)
	}

	s.logger.Info("task_deleted", zap.String("task_id", id))
	return nil
}

// Get returns one task by ID.
func (s *Service) Get(id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	task := s.tasks[idx]
	return &task, nil
}

// List returns the tasks of one type in display order, plus the completion
// percentage over that view.
func (s *Service) List(typ models.TaskType) ([]models.Task, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := engine.SelectTasks(s.tasks, typ)
	sorted := engine.SortForDisplay(selected)
	return sorted, engine.ComputeProgress(selected)
}

// All returns every task in display order.
func (s *Service) All() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SortForDisplay(s.tasks)
}

// Stats returns an aggregate snapshot over all tasks.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	daily, longTerm := engine.CountByType(s.tasks)
	return Stats{
		Total:     len(s.tasks),
		Completed: engine.CountCompleted(s.tasks),
		Daily:     daily,
		LongTerm:  longTerm,
		Progress:  engine.ComputeProgress(s.tasks),
	}
}

// Profile returns the stored user profile, or nil before onboarding.
func (s *Service) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Onboard saves the user profile.
func (s *Service) Onboard(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	profile.Name = validation.SanitizeText(profile.Name)
	if profile.Name == "" {
		return nil, errors.New("profile name is required")
	}
	profile.Onboarded = true

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveProfile(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	s.profile = &profile

	s.logger.Info("profile_saved", zap.Bool("onboarded", true))
	return &profile, nil
}

// ResetProfile clears the profile and all tasks. The theme flag survives a
// reset.
func (s *Service) ResetProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	s.tasks = nil
	s.profile = nil

	s.logger.Info("profile_reset")
	return nil
}

// Theme returns the dark-mode flag, or nil when never set.
func (s *Service) Theme() *bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == nil {
		return nil
	}
	v := *s.theme
	return &v
}

// SetTheme persists the dark-mode flag.
func (s *Service) SetTheme(ctx context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveTheme(ctx, dark); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	s.theme = &dark
	return nil
}

// Suggest requests a breakdown for a draft title. At most one request per
// normalized title may be in flight; concurrent duplicates get
// ErrSuggestionInFlight. Task state is never touched here; the caller
// decides whether to apply the suggestion.
func (s *Service) Suggest(ctx context.Context, title string, typ models.TaskType) (*ai.Suggestion, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	title = validation.SanitizeText(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	key := strings.ToLower(title)
	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return nil, ErrSuggestionInFlight
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	suggestion, err := s.provider.SuggestBreakdown(ctx, title, typ)
	if err != nil {
		// Provider errors can embed raw model output; sanitize before logging.
		s.logger.Warn("suggestion_failed",
			zap.String("task_type", string(typ)),
			zap.String("error", logger.SanitizeError(err)),
		)
		return nil, err
	}

	s.logger.Info("suggestion_generated",
		zap.String("task_type", string(typ)),
		zap.Int("substep_count", len(suggestion.Substeps)),
	)
	return suggestion, nil
}

// Snapshot returns a copy of all tasks without sorting. Used by background
// workers that need the raw list.
func (s *Service) Snapshot() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// indexOf returns the position of id in s.tasks, or -1. Caller holds the lock.
func (s *Service) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
