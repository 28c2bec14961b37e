// Package stats computes the aggregate figures shown on the statistics
// cards. Everything is recomputed from scratch on every call; the reminder
// sets involved are small.
package stats

import (
	"github.com/heartbible/connect/internal/catalog"
	"github.com/heartbible/connect/internal/models"
)

// ModuleProgress reports how many catalog stories of one module the user
// has recorded, against the total the module offers.
type ModuleProgress struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
}

// Summary holds the aggregate counts over one owner's reminders.
type Summary struct {
	// TotalStories counts distinct stories, de-duplicated by slug.
	TotalStories int `json:"totalStories"`
	// TotalVerses sums VerseCount over the de-duplicated set.
	TotalVerses int `json:"totalVerses"`
	// InMoment counts reminders labeled "al momento".
	InMoment int `json:"inMoment"`
	// AverageVerses is TotalVerses / TotalStories, 0 when empty.
	AverageVerses float64 `json:"averageVerses"`
	// Modules reports per-module completion, one entry per catalog module.
	Modules []ModuleProgress `json:"modules"`
}

// Compute builds a Summary from the given reminders. The completion
// denominators come from the catalog story counts rather than a fixed
// table, so they stay correct when catalog content changes.
func Compute(reminders []models.Reminder) Summary {
	var s Summary

	seen := make(map[string]bool, len(reminders))
	perModule := make(map[string]int)
	for _, r := range reminders {
		if r.TimeOption == models.InMoment {
			s.InMoment++
		}
		if r.Slug != "" && seen[r.Slug] {
			continue
		}
		seen[r.Slug] = true
		s.TotalStories++
		s.TotalVerses += r.VerseCount
		if r.Module != "" {
			perModule[r.Module]++
		}
	}

	if s.TotalStories > 0 {
		s.AverageVerses = float64(s.TotalVerses) / float64(s.TotalStories)
	}

	for _, m := range catalog.Modules() {
		s.Modules = append(s.Modules, ModuleProgress{
			Module: m.Value,
			Name:   m.Name,
			Done:   perModule[m.Value],
			Total:  catalog.StoryCount(m.Value),
		})
	}
	return s
}
