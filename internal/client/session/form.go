package session

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/heartbible/connect/internal/catalog"
	"github.com/heartbible/connect/internal/models"
	"github.com/heartbible/connect/internal/slug"
)

// Form is the reminder form state machine. It has two steady states:
// Create (no target id) and Edit (bound to an existing reminder). All
// collaborators are passed in explicitly so tests can substitute fakes.
type Form struct {
	session  *Session
	notifier Notifier
	log      *zap.Logger

	mu        sync.Mutex
	open      bool
	editingID string // empty in Create state

	title      string
	text       string
	verseCount int
	timeOption models.TimeOption
	module     string
	isPersonal bool
	slug       string

	errors models.ValidationErrors

	// inFlight guards Submit: a second submit while one is running is
	// rejected, not queued.
	inFlight atomic.Bool
}

// NewForm builds a form bound to the session's reminder list.
func NewForm(s *Session, n Notifier, log *zap.Logger) *Form {
	f := &Form{session: s, notifier: n, log: log}
	f.reset()
	return f
}

// reset returns the form to its empty Create state. Callers hold f.mu or
// have exclusive access.
func (f *Form) reset() {
	f.editingID = ""
	f.title = ""
	f.text = ""
	f.verseCount = 1
	f.timeOption = models.InMoment
	f.module = ""
	f.isPersonal = true
	f.slug = ""
	f.errors = nil
}

// Open transitions the form into its empty Create state and opens it.
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.open = true
}

// StartEdit transitions Create→Edit, seeding every editable field from the
// listed reminder. Returns models.ErrNotFound when the id is not in the
// in-memory list.
func (f *Form) StartEdit(id string) error {
	rem, ok := f.session.Find(id)
	if !ok {
		return models.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.editingID = rem.ID
	f.title = rem.Title
	f.text = rem.Text
	f.verseCount = rem.VerseCount
	f.timeOption = rem.TimeOption
	f.module = rem.Module
	f.isPersonal = rem.IsPersonal
	f.slug = rem.Slug
	f.errors = nil
	f.open = true
	return nil
}

// Cancel abandons the current entry and returns to the closed Create state.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	f.open = false
}

// IsOpen reports whether the form is currently shown.
func (f *Form) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Editing returns the bound reminder id, or "" in Create state.
func (f *Form) Editing() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

// SetTitle updates the title; in personal mode the slug is re-derived.
func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
	if f.isPersonal {
		f.slug = slug.Make(f.title, f.text)
	}
	delete(f.errors, "title")
}

// SetText updates the scriptural text; in personal mode the slug is
// re-derived.
func (f *Form) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	if f.isPersonal {
		f.slug = slug.Make(f.title, f.text)
	}
	delete(f.errors, "text")
}

// SetVerseCount updates the verse count.
func (f *Form) SetVerseCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verseCount = n
	delete(f.errors, "verseCount")
}

// SetTimeOption updates the reminder-timing label.
func (f *Form) SetTimeOption(t models.TimeOption) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeOption = t
	delete(f.errors, "timeOption")
}

// UsePersonal switches the form to freeform entry.
func (f *Form) UsePersonal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isPersonal = true
	f.module = ""
}

// UseModule switches the form to catalog-driven entry. The story fields
// are cleared and stay empty until a catalog story is selected.
func (f *Form) UseModule() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isPersonal = false
	f.clearStoryFields()
}

// SelectModule picks a catalog module and clears any previously chosen
// story pending a new selection.
func (f *Form) SelectModule(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.isPersonal = false
	f.module = value
	f.clearStoryFields()
	delete(f.errors, "module")
}

// SelectStory copies the catalog story's title, text, and verse count
// verbatim and re-derives the slug. The selected module must contain the
// story.
func (f *Form) SelectStory(title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	story, ok := catalog.FindStory(f.module, title)
	if !ok {
		return models.ErrNotFound
	}
	f.title = story.Title
	f.text = story.Text
	f.verseCount = story.VerseCount
	f.slug = slug.Make(story.Title, story.Text)
	delete(f.errors, "story")
	return nil
}

// clearStoryFields empties the story-derived fields. Callers hold f.mu.
func (f *Form) clearStoryFields() {
	f.title = ""
	f.text = ""
	f.verseCount = 1
	f.slug = ""
}

// Reminder snapshots the current field values as a Reminder draft.
func (f *Form) Reminder() models.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft()
}

// draft builds the Reminder from the current fields. Callers hold f.mu.
func (f *Form) draft() models.Reminder {
	return models.Reminder{
		ID:         f.editingID,
		Slug:       f.slug,
		Title:      f.title,
		Text:       f.text,
		VerseCount: f.verseCount,
		TimeOption: f.timeOption,
		Module:     f.module,
		IsPersonal: f.isPersonal,
	}
}

// Errors returns the field-scoped messages from the last validation.
func (f *Form) Errors() models.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

// Validate checks the current fields and records field-scoped errors.
// Personal entries need a title, text, verse count >= 1, and a slug that
// no other reminder of this owner uses; while editing, the record itself
// is excluded from the uniqueness check. Module entries need a selected
// module and a selected story.
func (f *Form) Validate() models.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	verrs := models.ValidationErrors{}
	if f.isPersonal {
		if f.title == "" {
			verrs["title"] = "El título es requerido"
		}
		if f.text == "" {
			verrs["text"] = "El texto es requerido"
		}
		if f.verseCount < 1 {
			verrs["verseCount"] = "La cantidad de versículos debe ser al menos 1"
		}
		if f.slug == "" {
			verrs["slug"] = "El slug es requerido"
		} else {
			for _, r := range f.session.Reminders() {
				if r.Slug == f.slug && r.ID != f.editingID {
					verrs["slug"] = "Este slug ya está en uso"
					break
				}
			}
		}
	} else {
		if f.module == "" {
			verrs["module"] = "Debe seleccionar un módulo"
		}
		if f.title == "" {
			verrs["story"] = "Debe seleccionar una historia"
		}
	}

	if len(verrs) == 0 {
		f.errors = nil
		return nil
	}
	f.errors = verrs
	return verrs
}

// Submit validates and sends the entry to the store. Exactly one submit
// may be in flight; a concurrent attempt gets models.ErrSubmitInFlight.
// On success the list is patched locally, the form resets to its closed
// Create state, and the notifier announces the outcome. A store failure
// is logged and surfaced as a generic notification, leaving the form open.
func (f *Form) Submit(ctx context.Context) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return models.ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	if verrs := f.Validate(); verrs != nil {
		return verrs
	}

	f.mu.Lock()
	editingID := f.editingID
	draft := f.draft()
	f.mu.Unlock()

	if editingID == "" {
		created, err := f.session.api.CreateReminder(ctx, f.session.DNI(), draft)
		if err != nil {
			return f.storeFailure("agregar", err)
		}
		f.session.applyAdd(created)
		f.notifier.Success("Historia agregada", "La historia ha sido agregada exitosamente.")
	} else {
		if err := f.session.api.UpdateReminder(ctx, f.session.DNI(), editingID, draft); err != nil {
			return f.storeFailure("actualizar", err)
		}
		f.session.applyUpdate(editingID, draft)
		f.notifier.Success("Historia actualizada", "La historia ha sido actualizada exitosamente.")
	}

	f.mu.Lock()
	f.reset()
	f.open = false
	f.mu.Unlock()
	return nil
}

// storeFailure logs a failed write and tells the user something went
// wrong; field state is preserved so the entry can be retried.
func (f *Form) storeFailure(action string, err error) error {
	if verrs, ok := models.AsValidation(err); ok {
		// The server re-validated and disagreed; show its field errors.
		f.mu.Lock()
		f.errors = verrs
		f.mu.Unlock()
		return verrs
	}
	f.log.Error("reminder submit failed", zap.String("action", action), zap.Error(err))
	f.notifier.Error("Error", "No se pudo "+action+" la historia.")
	return err
}
