package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartbible/connect/internal/metrics"
	"github.com/heartbible/connect/internal/middleware"
	"github.com/heartbible/connect/internal/models"
	"github.com/heartbible/connect/internal/stats"
)

// ReminderService defines the reminder operations required by the
// ReminderHandler.
type ReminderService interface {
	// List returns all reminders of owner; empty owner yields an empty slice.
	List(ctx context.Context, owner string) ([]models.Reminder, error)
	// Create validates and persists a new reminder for owner.
	Create(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error)
	// Update validates and overwrites the reminder with the given id.
	Update(ctx context.Context, owner, id string, rem models.Reminder) error
	// Delete removes the reminder with the given id permanently.
	Delete(ctx context.Context, id string) error
	// Statistics computes the aggregate counts over the owner's reminders.
	Statistics(ctx context.Context, owner string) (stats.Summary, error)
}

// ReminderHandler handles HTTP requests for reminder CRUD and statistics.
type ReminderHandler struct {
	// ReminderService performs the underlying reminder operations.
	ReminderService ReminderService
}

// List handles GET /api/reminders requests scoped by the owner identifier.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetOwnerFromContext(r.Context())

	reminders, err := h.ReminderService.List(r.Context(), owner)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reminders)
}

// Create handles POST /api/reminders requests. Validation failures answer
// with 422 and a field-keyed error map; store failures answer with a
// generic 500.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetOwnerFromContext(r.Context())
	if owner == "" {
		http.Error(w, "missing dni", http.StatusBadRequest)
		return
	}

	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, err := h.ReminderService.Create(r.Context(), owner, rem)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	metrics.RemindersWritten.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// Update handles PUT /api/reminders/{id} requests.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetOwnerFromContext(r.Context())
	if owner == "" {
		http.Error(w, "missing dni", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	var rem models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&rem); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ReminderService.Update(r.Context(), owner, id, rem); err != nil {
		writeServiceError(w, err)
		return
	}
	metrics.RemindersWritten.Inc()

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("reminder updated"))
}

// Delete handles DELETE /api/reminders/{id} requests. The removal is
// unconditional and permanent.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ReminderService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("reminder deleted"))
}

// Stats handles GET /api/reminders/stats requests.
func (h *ReminderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetOwnerFromContext(r.Context())

	summary, err := h.ReminderService.Statistics(r.Context(), owner)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

// writeServiceError maps a service failure onto the error taxonomy:
// validation errors are field-scoped 422s, unknown ids are 404s, and
// everything else is a generic store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	if verrs, ok := models.AsValidation(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]models.ValidationErrors{"errors": verrs})
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "reminder not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
