// Package catalog holds the read-only module content users can pick
// ready-made stories from. The tables are fixed at build time.
package catalog

// Module is a predefined content group.
type Module struct {
	// Name is the display name shown in selectors.
	Name string `json:"name"`
	// Value is the stable key stored on reminders.
	Value string `json:"value"`
}

// Story is one predefined story inside a module.
type Story struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	VerseCount int    `json:"verseCount"`
}

var modules = []Module{
	{Name: "Módulo 1", Value: "modulo-1"},
	{Name: "Módulo 2", Value: "modulo-2"},
	{Name: "Módulo 3", Value: "modulo-3"},
}

var moduleStories = map[string][]Story{
	"modulo-1": {
		{Title: "Jesús sana a un paralítico", Text: "Marcos 2:1-12", VerseCount: 12},
		{Title: "Jesús calma la tormenta", Text: "Marcos 4:32-45", VerseCount: 14},
		{Title: "El endemoniado gadareno", Text: "Marcos 5:1-20", VerseCount: 20},
		{Title: "La hija de Jairo, y la mujer que tocó el manto de Jesús", Text: "Marcos 5:21-43", VerseCount: 23},
		{Title: "Alimentación de los cinco mil", Text: "Marcos 6:30-44", VerseCount: 15},
		{Title: "El ciego Bartimeo recibe la vista", Text: "Marcos 10:46-52", VerseCount: 7},
	},
	"modulo-2": {
		{Title: "El hijo prodigo", Text: "Lucas 15:11-32", VerseCount: 22},
	},
	"modulo-3": {
		{Title: "Creación", Text: "Génesis 1:1-2:3", VerseCount: 34},
		{Title: "Adán y Eva", Text: "Génesis 2:4-25", VerseCount: 22},
		{Title: "La Caída", Text: "Génesis 3:1-15", VerseCount: 15},
		{Title: "El Diluvio", Text: "Génesis 6:9-9:17", VerseCount: 77},
		{Title: "Abraham", Text: "Génesis 12:1-7", VerseCount: 7},
		{Title: "Sacrificio de Isaac", Text: "Génesis 22:1-19", VerseCount: 19},
		{Title: "Las Dos Parteras", Text: "Exodo 1:15-21", VerseCount: 7},
		{Title: "Nacimiento de Moisés", Text: "Éxodo 1:22 - 2:10", VerseCount: 11},
		{Title: "La Zarza Ardiente", Text: "Éxodo 3:1-12", VerseCount: 12},
		{Title: "Los Diez Mandamientos", Text: "Éxodo 20:1-20", VerseCount: 20},
		{Title: "La Serpiente de Bronce", Text: "Números 21:4-9", VerseCount: 6},
		{Title: "Nacimiento de Jesús", Text: "Mateo 1:18-25", VerseCount: 7},
		{Title: "Nacimiento de Jesús", Text: "Lucas 2:4-20", VerseCount: 16},
		{Title: "El Bautismo de Jesús", Text: "Mateo 3:13-17", VerseCount: 5},
		{Title: "Jesús Calma la Tormenta", Text: "Marcos 4:35-41", VerseCount: 7},
		{Title: "Jesús Sana al Endemoniado Gadareno", Text: "Marcos 5:1-20", VerseCount: 20},
		{Title: "Jesús, Jairo y la Mujer", Text: "Marcos 5:21-43", VerseCount: 23},
		{Title: "La Parábola del Hijo Pródigo", Text: "Lucas 15:11-32", VerseCount: 22},
		{Title: "Jesús le Habla a Nicodemo", Text: "Juan 3:1-16", VerseCount: 16},
		{Title: "Crucifixión y Muerte", Text: "Lucas 23:33-49", VerseCount: 17},
		{Title: "Resurrección", Text: "Lucas 24:1-12", VerseCount: 12},
		{Title: "Ascensión", Text: "Hechos 1:3-11", VerseCount: 9},
	},
}

// Modules returns every available module in display order.
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}

// ValidModule reports whether value names a known module.
func ValidModule(value string) bool {
	_, ok := moduleStories[value]
	return ok
}

// Stories returns the ordered story list of a module, or nil for an
// unknown module value.
func Stories(value string) []Story {
	src, ok := moduleStories[value]
	if !ok {
		return nil
	}
	out := make([]Story, len(src))
	copy(out, src)
	return out
}

// FindStory looks up a story by title within a module. The title is the
// selection key the original picker used, so the first match wins.
func FindStory(moduleValue, title string) (Story, bool) {
	for _, s := range moduleStories[moduleValue] {
		if s.Title == title {
			return s, true
		}
	}
	return Story{}, false
}

// StoryCount returns how many stories a module contains. This is the
// completion denominator shown next to per-module statistics.
func StoryCount(value string) int {
	return len(moduleStories[value])
}
