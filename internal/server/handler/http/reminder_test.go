package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/heartbible/connect/internal/models"
	handler "github.com/heartbible/connect/internal/server/handler/http"
	"github.com/heartbible/connect/internal/stats"
)

// fakeReminderService records calls and returns preconfigured results.
type fakeReminderService struct {
	receivedOwner string
	receivedID    string
	receivedRem   models.Reminder

	listResult   []models.Reminder
	createResult models.Reminder
	statsResult  stats.Summary
	err          error
}

func (f *fakeReminderService) List(ctx context.Context, owner string) ([]models.Reminder, error) {
	f.receivedOwner = owner
	return f.listResult, f.err
}

func (f *fakeReminderService) Create(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error) {
	f.receivedOwner = owner
	f.receivedRem = rem
	return f.createResult, f.err
}

func (f *fakeReminderService) Update(ctx context.Context, owner, id string, rem models.Reminder) error {
	f.receivedOwner = owner
	f.receivedID = id
	f.receivedRem = rem
	return f.err
}

func (f *fakeReminderService) Delete(ctx context.Context, id string) error {
	f.receivedID = id
	return f.err
}

func (f *fakeReminderService) Statistics(ctx context.Context, owner string) (stats.Summary, error) {
	f.receivedOwner = owner
	return f.statsResult, f.err
}

// newTestRouter mounts the handlers the way the server does, so routing,
// content-type enforcement, and owner scoping are part of the test.
func newTestRouter(fake *fakeReminderService) http.Handler {
	return handler.NewRouter(
		&handler.SessionHandler{IdentityService: &fakeIdentityService{}},
		&handler.ReminderHandler{ReminderService: fake},
		&handler.CatalogHandler{},
		zap.NewNop(),
	)
}

func TestReminderList(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	fake := &fakeReminderService{
		listResult: []models.Reminder{
			{ID: "id1", Slug: "prueba-juan-316", Title: "Prueba", Text: "Juan 3:16", VerseCount: 1, TimeOption: models.InMoment, IsPersonal: true, DNI: "ve1", CreatedAt: now},
		},
	}
	router := newTestRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/reminders?dni=ve1", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedOwner != "ve1" {
		t.Errorf("receivedOwner = %q; want %q", fake.receivedOwner, "ve1")
	}

	var got []models.Reminder
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "prueba-juan-316" {
		t.Errorf("unexpected list: %+v", got)
	}
}

func TestReminderList_EmptyOwnerAnswersEmptyArray(t *testing.T) {
	router := newTestRouter(&fakeReminderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/reminders", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("body = %q; want JSON empty array", body)
	}
}

func TestReminderCreate(t *testing.T) {
	fake := &fakeReminderService{
		createResult: models.Reminder{ID: "new-id", Slug: "prueba-juan-316", Title: "Prueba", DNI: "ve1"},
	}
	router := newTestRouter(fake)

	b, _ := json.Marshal(models.Reminder{Title: "Prueba", Text: "Juan 3:16", VerseCount: 1, TimeOption: models.InMoment, IsPersonal: true})
	req := httptest.NewRequest(http.MethodPost, "/api/reminders?dni=ve1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusCreated)
	}

	var got models.Reminder
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.ID != "new-id" {
		t.Errorf("expected the stored record back, got %+v", got)
	}
	if fake.receivedRem.Title != "Prueba" {
		t.Errorf("service received %+v", fake.receivedRem)
	}
}

func TestReminderCreate_MissingOwner(t *testing.T) {
	router := newTestRouter(&fakeReminderService{})

	b, _ := json.Marshal(models.Reminder{Title: "Prueba"})
	req := httptest.NewRequest(http.MethodPost, "/api/reminders", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "missing dni\n" {
		t.Errorf("body = %q; want %q", body, "missing dni\n")
	}
}

func TestReminderCreate_ValidationErrors(t *testing.T) {
	fake := &fakeReminderService{
		err: models.ValidationErrors{"title": "El título es requerido"},
	}
	router := newTestRouter(fake)

	b, _ := json.Marshal(models.Reminder{IsPersonal: true})
	req := httptest.NewRequest(http.MethodPost, "/api/reminders?dni=ve1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp.Errors["title"] != "El título es requerido" {
		t.Errorf("unexpected errors payload: %+v", resp.Errors)
	}
}

func TestReminderCreate_StoreError(t *testing.T) {
	fake := &fakeReminderService{err: errors.New("db down")}
	router := newTestRouter(fake)

	b, _ := json.Marshal(models.Reminder{Title: "Prueba"})
	req := httptest.NewRequest(http.MethodPost, "/api/reminders?dni=ve1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want %d", w.Code, http.StatusInternalServerError)
	}
	if body := w.Body.String(); body != "internal error\n" {
		t.Errorf("body = %q; want generic error", body)
	}
}

func TestReminderUpdate(t *testing.T) {
	fake := &fakeReminderService{}
	router := newTestRouter(fake)

	b, _ := json.Marshal(models.Reminder{Title: "Prueba", VerseCount: 2})
	req := httptest.NewRequest(http.MethodPut, "/api/reminders/id1?dni=ve1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedID != "id1" || fake.receivedOwner != "ve1" {
		t.Errorf("service received id=%q owner=%q", fake.receivedID, fake.receivedOwner)
	}
}

func TestReminderUpdate_NotFound(t *testing.T) {
	fake := &fakeReminderService{err: models.ErrNotFound}
	router := newTestRouter(fake)

	b, _ := json.Marshal(models.Reminder{Title: "Prueba"})
	req := httptest.NewRequest(http.MethodPut, "/api/reminders/missing?dni=ve1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}

func TestReminderDelete(t *testing.T) {
	fake := &fakeReminderService{}
	router := newTestRouter(fake)

	req := httptest.NewRequest(http.MethodDelete, "/api/reminders/id1?dni=ve1", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedID != "id1" {
		t.Errorf("receivedID = %q; want %q", fake.receivedID, "id1")
	}
}

func TestReminderStats(t *testing.T) {
	fake := &fakeReminderService{
		statsResult: stats.Summary{TotalStories: 2, TotalVerses: 15, InMoment: 1, AverageVerses: 7.5},
	}
	router := newTestRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/reminders/stats?dni=ve1", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var got stats.Summary
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.TotalStories != 2 || got.AverageVerses != 7.5 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestCatalogRoutes(t *testing.T) {
	router := newTestRouter(&fakeReminderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/modules", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var mods []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(w.Body).Decode(&mods); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(mods) != 3 || mods[0].Value != "modulo-1" {
		t.Errorf("unexpected modules: %+v", mods)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/catalog/modules/modulo-2/stories", nil)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/catalog/modules/modulo-9/stories", nil)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}
