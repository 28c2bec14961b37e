package service

import (
	"context"
	"strings"

	"github.com/heartbible/connect/internal/catalog"
	"github.com/heartbible/connect/internal/models"
	"github.com/heartbible/connect/internal/slug"
	"github.com/heartbible/connect/internal/stats"
)

// ReminderRepository defines the persistence operations needed by the
// ReminderService.
type ReminderRepository interface {
	// ListByOwner retrieves all reminders belonging to the given owner.
	ListByOwner(ctx context.Context, owner string) ([]models.Reminder, error)
	// Create persists a new reminder for owner and returns it with the
	// store-assigned id and creation timestamp filled in.
	Create(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error)
	// Update overwrites the mutable fields of the reminder with the given id.
	Update(ctx context.Context, id string, rem models.Reminder) error
	// Delete removes the reminder with the given id permanently.
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether owner already uses slug on a record other
	// than excludeID.
	SlugExists(ctx context.Context, owner, slug, excludeID string) (bool, error)
}

// ReminderService implements reminder business logic: slug derivation,
// validation, and CRUD delegation.
type ReminderService struct {
	repo ReminderRepository
}

// NewReminderService constructs a ReminderService with the provided repository.
func NewReminderService(repo ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// List returns all reminders of owner. An empty owner short-circuits to an
// empty result without querying the store.
func (s *ReminderService) List(ctx context.Context, owner string) ([]models.Reminder, error) {
	if owner == "" {
		return []models.Reminder{}, nil
	}
	return s.repo.ListByOwner(ctx, owner)
}

// Create validates and persists a new reminder for owner. The slug is
// derived server-side from title and text, so whatever the client sent is
// recomputed before validation.
func (s *ReminderService) Create(ctx context.Context, owner string, rem models.Reminder) (models.Reminder, error) {
	prepared, err := s.prepare(ctx, owner, "", rem)
	if err != nil {
		return models.Reminder{}, err
	}
	return s.repo.Create(ctx, owner, prepared)
}

// Update validates and overwrites an existing reminder. The record's owner
// and creation time are preserved by the repository; the slug uniqueness
// check excludes the record itself.
func (s *ReminderService) Update(ctx context.Context, owner, id string, rem models.Reminder) error {
	prepared, err := s.prepare(ctx, owner, id, rem)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, prepared)
}

// Delete removes a reminder unconditionally.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Statistics loads the owner's reminders and computes the aggregate counts.
func (s *ReminderService) Statistics(ctx context.Context, owner string) (stats.Summary, error) {
	reminders, err := s.List(ctx, owner)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Compute(reminders), nil
}

// prepare derives fields and validates rem for a create (excludeID empty)
// or an update. Validation failures come back as models.ValidationErrors;
// anything else is a store error.
func (s *ReminderService) prepare(ctx context.Context, owner, excludeID string, rem models.Reminder) (models.Reminder, error) {
	verrs := models.ValidationErrors{}

	if rem.IsPersonal {
		rem.Module = ""
		if strings.TrimSpace(rem.Title) == "" {
			verrs["title"] = "El título es requerido"
		}
		if strings.TrimSpace(rem.Text) == "" {
			verrs["text"] = "El texto es requerido"
		}
		if rem.VerseCount < 1 {
			verrs["verseCount"] = "La cantidad de versículos debe ser al menos 1"
		}
	} else {
		if !catalog.ValidModule(rem.Module) {
			verrs["module"] = "Debe seleccionar un módulo"
		} else {
			story, ok := catalog.FindStory(rem.Module, rem.Title)
			if !ok {
				verrs["story"] = "Debe seleccionar una historia"
			} else {
				// Catalog entries carry the story fields verbatim.
				rem.Title = story.Title
				rem.Text = story.Text
				rem.VerseCount = story.VerseCount
			}
		}
	}

	if !rem.TimeOption.Valid() {
		verrs["timeOption"] = "Tiempo de recordatorio inválido"
	}

	rem.Slug = slug.Make(rem.Title, rem.Text)
	if len(verrs) == 0 {
		if rem.Slug == "" {
			verrs["slug"] = "El slug es requerido"
		} else if rem.IsPersonal {
			// Uniqueness applies to freeform entries only; repeating a
			// catalog story is allowed and the statistics de-dupe by slug.
			taken, err := s.repo.SlugExists(ctx, owner, rem.Slug, excludeID)
			if err != nil {
				return models.Reminder{}, err
			}
			if taken {
				verrs["slug"] = "Este slug ya está en uso"
			}
		}
	}

	if len(verrs) > 0 {
		return models.Reminder{}, verrs
	}
	return rem, nil
}
