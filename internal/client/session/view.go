package session

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/heartbible/connect/internal/models"
	"github.com/heartbible/connect/internal/stats"
)

// RenderTable formats the reminder list as a table. It is a pure function
// of the in-memory collection and is recomputed on every change.
func RenderTable(reminders []models.Reminder) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tHistoria\tTexto bíblico\tVersículos\tMódulo\tRecordatorio\tFecha de aprendizaje")
	for _, r := range reminders {
		module := "-"
		if r.Module != "" {
			module = formatModule(r.Module)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID, r.Title, r.Text, r.VerseCount, module,
			r.TimeOption.Label(), r.CreatedAt.Local().Format("02/01/2006 15:04"),
		)
	}
	_ = w.Flush()
	return sb.String()
}

// RenderStats formats the statistics cards as text.
func RenderStats(s stats.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Historias en mi corazón: %d\n", s.TotalStories)
	fmt.Fprintf(&sb, "Total de versículos: %d\n", s.TotalVerses)
	fmt.Fprintf(&sb, "Historias al momento: %d\n", s.InMoment)
	fmt.Fprintf(&sb, "Promedio de versículos: %.1f\n", s.AverageVerses)
	for _, m := range s.Modules {
		fmt.Fprintf(&sb, "%s: %d/%d historias\n", m.Name, m.Done, m.Total)
	}
	return sb.String()
}

// formatModule turns a module value like "modulo-1" into "Modulo 1".
func formatModule(value string) string {
	parts := strings.Split(value, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
