package session

import (
	"context"
	"sync"
	"time"

	"github.com/heartbible/connect/internal/models"
	"github.com/heartbible/connect/internal/stats"
)

// Session holds one user's in-memory reminder list. The list is rebuilt
// wholesale by Refresh and patched locally after each confirmed write; it
// mirrors the store but is not authoritative.
type Session struct {
	api *Client
	dni string

	mu        sync.Mutex
	reminders []models.Reminder
}

// NewSession creates a session scoped to the resolved identifier.
func NewSession(api *Client, dni string) *Session {
	return &Session{api: api, dni: dni}
}

// DNI returns the owner identifier scoping this session.
func (s *Session) DNI() string {
	return s.dni
}

// Refresh replaces the in-memory list with the store's current contents.
func (s *Session) Refresh(ctx context.Context) error {
	reminders, err := s.api.ListReminders(ctx, s.dni)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = reminders
	return nil
}

// Reminders returns a copy of the current in-memory list.
func (s *Session) Reminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Find returns the reminder with the given id, if present.
func (s *Session) Find(id string) (models.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reminder{}, false
}

// Statistics recomputes the aggregate counts over the in-memory list.
func (s *Session) Statistics() stats.Summary {
	return stats.Compute(s.Reminders())
}

// Delete removes a reminder from the store, then drops it from the
// in-memory list. The removal is permanent; there is no undo.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteReminder(ctx, s.dni, id); err != nil {
		return err
	}
	s.applyRemove(id)
	return nil
}

// applyAdd appends a record after a confirmed create. When the server did
// not echo a creation time, the local clock stands in until the next
// refresh.
func (s *Session) applyAdd(rem models.Reminder) {
	if rem.CreatedAt.IsZero() {
		rem.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, rem)
}

// applyUpdate replaces the record in place after a confirmed update,
// keeping the prior owner and creation time.
func (s *Session) applyUpdate(id string, rem models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id {
			rem.ID = id
			rem.DNI = r.DNI
			rem.CreatedAt = r.CreatedAt
			s.reminders[i] = rem
			return
		}
	}
}

// applyRemove drops the record after a confirmed delete.
func (s *Session) applyRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return
		}
	}
}
