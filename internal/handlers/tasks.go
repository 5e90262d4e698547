package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/taskflow-app/taskflow/internal/engine"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/tasks"
	"github.com/taskflow-app/taskflow/internal/validation"
)

const (
	// MaxTitleLength is the maximum length for task titles
	MaxTitleLength = 500
	// MaxDescriptionLength is the maximum length for task descriptions
	MaxDescriptionLength = 10000
	// MaxSubtasks is the maximum number of subtasks per task
	MaxSubtasks = 50
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	service *tasks.Service
	loc     *time.Location
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service *tasks.Service, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TaskHandler{service: service, loc: loc}
}

// RegisterRoutes registers task routes on the given router
// The router should already have the /tasks prefix
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PUT")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/{id}/toggle", h.ToggleTask).Methods("POST")
	r.HandleFunc("/{id}/subtasks/{subtaskId}/toggle", h.ToggleSubtask).Methods("POST")
}

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	Description string   `json:"description" validate:"max=10000"`
	Type        string   `json:"type" validate:"required,task_type"`
	Duration    duration `json:"duration"`
	Priority    string   `json:"priority" validate:"required,priority"`
	DueDate     *int64   `json:"dueDate,omitempty"`
	Subtasks    []string `json:"subtasks,omitempty" validate:"max=50"`
}

// UpdateTaskRequest represents an update task request. It is a full
// replacement of the editable fields, including the task type.
type UpdateTaskRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=500"`
	Description string           `json:"description" validate:"max=10000"`
	Type        string           `json:"type" validate:"required,task_type"`
	Duration    duration         `json:"duration"`
	Priority    string           `json:"priority" validate:"required,priority"`
	DueDate     *int64           `json:"dueDate,omitempty"`
	Subtasks    []models.Subtask `json:"subtasks,omitempty" validate:"max=50"`
}

type duration struct {
	Value float64 `json:"value" validate:"gt=0"`
	Unit  string  `json:"unit" validate:"required,duration_unit"`
}

// TaskView is a task plus its derived display fields. TimeLeft and
// DueLabel are computed per request and never stored.
type TaskView struct {
	models.Task
	TimeLeft      string `json:"timeLeft,omitempty"`
	DueLabel      string `json:"dueLabel,omitempty"`
	DurationLabel string `json:"durationLabel"`
}

// ListTasksResponse represents the response for listing tasks
type ListTasksResponse struct {
	Tasks    []TaskView `json:"tasks"`
	Progress int        `json:"progress"`
}

func (h *TaskHandler) view(t models.Task) TaskView {
	v := TaskView{
		Task:          t,
		DurationLabel: engine.FormatDuration(t.Duration),
	}
	now := models.NowMilli()
	if t.DueDate != nil {
		v.TimeLeft = engine.DescribeTimeLeft(t.DueDate, t.Completed, now)
		v.DueLabel = engine.FormatDueLabel(*t.DueDate, now, h.loc)
	}
	return v
}

func (h *TaskHandler) views(list []models.Task) []TaskView {
	out := make([]TaskView, 0, len(list))
	for _, t := range list {
		out = append(out, h.view(t))
	}
	return out
}

// ListTasks lists tasks, optionally filtered by type, in display order
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	typeParam := r.URL.Query().Get("type")
	if typeParam == "" {
		respondJSON(w, http.StatusOK, ListTasksResponse{
			Tasks:    h.views(h.service.All()),
			Progress: h.service.Stats().Progress,
		})
		return
	}

	if err := validation.ValidateTaskType(typeParam); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	list, progress := h.service.List(models.TaskType(typeParam))
	respondJSON(w, http.StatusOK, ListTasksResponse{
		Tasks:    h.views(list),
		Progress: progress,
	})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, req) {
		return
	}

	task, err := h.service.Create(r.Context(), tasks.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Duration: models.Duration{
			Value: req.Duration.Value,
			Unit:  models.DurationUnit(req.Duration.Unit),
		},
		Priority: models.Priority(req.Priority),
		DueDate:  req.DueDate,
		Subtasks: req.Subtasks,
	})
	if err != nil {
		if errors.Is(err, tasks.ErrTitleRequired) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, h.view(*task))
}

// GetTask retrieves a task by ID
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	task, err := h.service.Get(id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return
	}
	respondJSON(w, http.StatusOK, h.view(*task))
}

// UpdateTask replaces a task's editable fields
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, req) {
		return
	}

	task, err := h.service.Update(r.Context(), id, tasks.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Duration: models.Duration{
			Value: req.Duration.Value,
			Unit:  models.DurationUnit(req.Duration.Unit),
		},
		Priority: models.Priority(req.Priority),
		DueDate:  req.DueDate,
		Subtasks: req.Subtasks,
	})
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrTaskNotFound):
			respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		case errors.Is(err, tasks.ErrTitleRequired):
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
		default:
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		}
		return
	}

	respondJSON(w, http.StatusOK, h.view(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete task")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ToggleTask flips a task's completion state
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	task, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to toggle task")
		return
	}
	respondJSON(w, http.StatusOK, h.view(*task))
}

// ToggleSubtask flips a subtask's completion state
func (h *TaskHandler) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	task, err := h.service.ToggleSubtask(r.Context(), vars["id"], vars["subtaskId"])
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "Task or subtask not found")
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to toggle subtask")
		return
	}
	respondJSON(w, http.StatusOK, h.view(*task))
}

// decodeBody decodes a JSON request body, writing an error response on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}
	return true
}

// validateBody runs struct validation, writing an error response on failure.
func validateBody(w http.ResponseWriter, req any) bool {
	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return false
	}
	return true
}
