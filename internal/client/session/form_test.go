package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/heartbible/connect/internal/models"
)

// fakeNotifier records the notifications shown to the user.
type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (f *fakeNotifier) Success(title, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, title)
}

func (f *fakeNotifier) Error(title, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, title)
}

func newTestForm(t *testing.T) (*Form, *Session, *fakeNotifier) {
	t.Helper()
	s := newTestSession(t, "ve12345678")
	n := &fakeNotifier{}
	return NewForm(s, n, zap.NewNop()), s, n
}

func TestForm_OpenResetsToDefaults(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	if !f.IsOpen() {
		t.Fatal("form should be open")
	}
	draft := f.Reminder()
	if draft.VerseCount != 1 || draft.TimeOption != models.InMoment || !draft.IsPersonal {
		t.Errorf("unexpected defaults: %+v", draft)
	}
	if draft.ID != "" {
		t.Error("Open must leave the form in Create state")
	}
}

func TestForm_SlugFollowsTitleAndText(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	if got := f.Reminder().Slug; got != "prueba-juan-316" {
		t.Errorf("slug = %q; want %q", got, "prueba-juan-316")
	}

	f.SetText("Juan 1:1")
	if got := f.Reminder().Slug; got != "prueba-juan-11" {
		t.Errorf("slug = %q after text change; want %q", got, "prueba-juan-11")
	}
}

func TestForm_ModeSwitchClearsStoryFields(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(5)

	f.UseModule()
	draft := f.Reminder()
	if draft.Title != "" || draft.Text != "" || draft.VerseCount != 1 || draft.Slug != "" {
		t.Errorf("story fields not cleared on mode switch: %+v", draft)
	}
	if draft.IsPersonal {
		t.Error("expected module mode")
	}
}

func TestForm_SelectStoryCopiesCatalogVerbatim(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	f.SelectModule("modulo-1")
	if err := f.SelectStory("Jesús calma la tormenta"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft := f.Reminder()
	if draft.Title != "Jesús calma la tormenta" || draft.Text != "Marcos 4:32-45" || draft.VerseCount != 14 {
		t.Errorf("catalog story not copied verbatim: %+v", draft)
	}
	if draft.Slug != "jess-calma-la-tormenta-marcos-43245" {
		t.Errorf("slug = %q", draft.Slug)
	}
}

func TestForm_SelectStoryUnknown(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()
	f.SelectModule("modulo-1")

	if err := f.SelectStory("No existe"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestForm_SelectModuleClearsPendingStory(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	f.SelectModule("modulo-1")
	if err := f.SelectStory("Jesús calma la tormenta"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.SelectModule("modulo-3")
	draft := f.Reminder()
	if draft.Title != "" || draft.Slug != "" {
		t.Errorf("pending story selection must be cleared: %+v", draft)
	}
}

func TestForm_ValidatePersonal(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()

	verrs := f.Validate()
	if verrs == nil {
		t.Fatal("expected validation errors on an empty form")
	}
	if verrs["title"] == "" || verrs["text"] == "" || verrs["slug"] == "" {
		t.Errorf("unexpected errors: %+v", verrs)
	}

	// Fixing a field clears its message.
	f.SetTitle("Prueba")
	if errs := f.Errors(); errs["title"] != "" {
		t.Errorf("title error not cleared: %+v", errs)
	}
}

func TestForm_ValidateVerseCountBounds(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")

	f.SetVerseCount(0)
	if verrs := f.Validate(); verrs["verseCount"] != "La cantidad de versículos debe ser al menos 1" {
		t.Errorf("expected verse count error, got %+v", verrs)
	}

	f.SetVerseCount(1)
	if verrs := f.Validate(); verrs != nil {
		t.Errorf("unexpected errors: %+v", verrs)
	}
}

func TestForm_ValidateSlugConflictExcludesSelf(t *testing.T) {
	f, s, _ := newTestForm(t)
	created := seedReminder(t, s, "Prueba", "Juan 3:16")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A new entry with the same derived slug conflicts.
	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(1)
	verrs := f.Validate()
	if verrs["slug"] != "Este slug ya está en uso" {
		t.Errorf("expected slug conflict, got %+v", verrs)
	}

	// Editing the record itself does not conflict with its own slug.
	if err := f.StartEdit(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verrs := f.Validate(); verrs != nil {
		t.Errorf("unexpected errors while editing: %+v", verrs)
	}
}

func TestForm_StartEditSeedsFields(t *testing.T) {
	f, s, _ := newTestForm(t)
	created := seedReminder(t, s, "Prueba", "Juan 3:16")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.StartEdit(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Editing() != created.ID {
		t.Errorf("Editing() = %q; want %q", f.Editing(), created.ID)
	}
	draft := f.Reminder()
	if draft.Title != "Prueba" || draft.Slug != "prueba-juan-316" {
		t.Errorf("fields not seeded: %+v", draft)
	}

	if err := f.StartEdit("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestForm_SubmitCreate(t *testing.T) {
	f, s, n := newTestForm(t)
	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(1)
	f.SetTimeOption(models.In5Min)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The list was patched locally and the form closed.
	reminders := s.Reminders()
	if len(reminders) != 1 || reminders[0].Slug != "prueba-juan-316" {
		t.Errorf("list not patched: %+v", reminders)
	}
	if reminders[0].CreatedAt.IsZero() {
		t.Error("expected a creation time on the patched record")
	}
	if f.IsOpen() {
		t.Error("form should close after a successful submit")
	}
	if len(n.successes) != 1 || n.successes[0] != "Historia agregada" {
		t.Errorf("unexpected notifications: %+v", n.successes)
	}
}

func TestForm_SubmitUpdate(t *testing.T) {
	f, s, n := newTestForm(t)
	created := seedReminder(t, s, "Prueba", "Juan 3:16")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.StartEdit(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.SetVerseCount(3)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := s.Find(created.ID)
	if !ok || got.VerseCount != 3 {
		t.Errorf("update not patched locally: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Error("creation time must survive an update")
	}
	if len(n.successes) != 1 || n.successes[0] != "Historia actualizada" {
		t.Errorf("unexpected notifications: %+v", n.successes)
	}
}

func TestForm_SubmitValidationKeepsFormOpen(t *testing.T) {
	f, s, _ := newTestForm(t)
	f.Open()

	err := f.Submit(context.Background())
	if _, ok := models.AsValidation(err); !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !f.IsOpen() {
		t.Error("form must stay open on validation failure")
	}
	if len(s.Reminders()) != 0 {
		t.Error("nothing must reach the store")
	}
}

func TestForm_SubmitStoreErrorKeepsFormOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSession(NewClient(srv.URL, srv.Client()), "ve1")
	n := &fakeNotifier{}
	f := NewForm(s, n, zap.NewNop())

	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(1)

	err := f.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := models.AsValidation(err); ok {
		t.Fatal("store failure must not surface as validation")
	}
	if !f.IsOpen() {
		t.Error("form must stay open so the entry can be retried")
	}
	if f.Reminder().Title != "Prueba" {
		t.Error("field state must be preserved")
	}
	if len(n.failures) != 1 {
		t.Errorf("expected one error notification, got %+v", n.failures)
	}
}

func TestForm_SubmitServerValidationShownAsFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]models.ValidationErrors{
			"errors": {"slug": "Este slug ya está en uso"},
		})
	}))
	defer srv.Close()

	s := NewSession(NewClient(srv.URL, srv.Client()), "ve1")
	f := NewForm(s, &fakeNotifier{}, zap.NewNop())

	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(1)

	err := f.Submit(context.Background())
	verrs, ok := models.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if verrs["slug"] != "Este slug ya está en uso" {
		t.Errorf("unexpected errors: %+v", verrs)
	}
	if f.Errors()["slug"] == "" {
		t.Error("server field errors must be shown on the form")
	}
}

func TestForm_SubmitRejectsConcurrentAttempt(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Reminder{ID: "id-1", Slug: "prueba-juan-316"})
	}))
	defer srv.Close()

	s := NewSession(NewClient(srv.URL, srv.Client()), "ve1")
	f := NewForm(s, &fakeNotifier{}, zap.NewNop())

	f.Open()
	f.SetTitle("Prueba")
	f.SetText("Juan 3:16")
	f.SetVerseCount(1)

	done := make(chan error, 1)
	go func() {
		done <- f.Submit(context.Background())
	}()

	<-entered
	// First submit is blocked inside the store call; a second one must be
	// rejected, not queued.
	if err := f.Submit(context.Background()); !errors.Is(err, models.ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if len(s.Reminders()) != 1 {
		t.Errorf("first submit should have landed: %+v", s.Reminders())
	}
}
