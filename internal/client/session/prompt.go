package session

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/heartbible/connect/internal/catalog"
	"github.com/heartbible/connect/internal/models"
)

// PromptPersonal fills the form with a freeform entry read line by line.
func PromptPersonal(scanner *bufio.Scanner, f *Form) {
	f.UsePersonal()

	fmt.Print("Título de la historia: ")
	scanner.Scan()
	f.SetTitle(strings.TrimSpace(scanner.Text()))

	fmt.Print("Texto bíblico: ")
	scanner.Scan()
	f.SetText(strings.TrimSpace(scanner.Text()))

	fmt.Print("Cantidad de versículos: ")
	scanner.Scan()
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		n = 0
	}
	f.SetVerseCount(n)

	promptTimeOption(scanner, f)
}

// PromptModule fills the form from the catalog: the user picks a module,
// then one of its stories.
func PromptModule(scanner *bufio.Scanner, f *Form) error {
	f.UseModule()

	fmt.Println("Módulos disponibles:")
	for i, m := range catalog.Modules() {
		fmt.Printf("  %d. %s\n", i+1, m.Name)
	}
	fmt.Print("Módulo: ")
	scanner.Scan()
	mi, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	mods := catalog.Modules()
	if err != nil || mi < 1 || mi > len(mods) {
		return fmt.Errorf("módulo inválido")
	}
	f.SelectModule(mods[mi-1].Value)

	stories := catalog.Stories(mods[mi-1].Value)
	fmt.Println("Historias disponibles:")
	for i, s := range stories {
		fmt.Printf("  %d. %s (%s, %d versículos)\n", i+1, s.Title, s.Text, s.VerseCount)
	}
	fmt.Print("Historia: ")
	scanner.Scan()
	si, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || si < 1 || si > len(stories) {
		return fmt.Errorf("historia inválida")
	}
	if err := f.SelectStory(stories[si-1].Title); err != nil {
		return err
	}

	promptTimeOption(scanner, f)
	return nil
}

// PromptEdit re-prompts the editable fields of the record seeded by
// StartEdit. Catalog entries keep their module and story; only the
// reminder timing can change.
func PromptEdit(scanner *bufio.Scanner, f *Form) {
	if f.Reminder().IsPersonal {
		PromptPersonal(scanner, f)
		return
	}
	promptTimeOption(scanner, f)
}

// promptTimeOption reads the reminder-timing label, defaulting to
// "al momento" on bad input.
func promptTimeOption(scanner *bufio.Scanner, f *Form) {
	fmt.Println("Tiempo de recordatorio:")
	for i, t := range models.TimeOptions {
		fmt.Printf("  %d. %s\n", i+1, t.Label())
	}
	fmt.Print("Opción: ")
	scanner.Scan()
	ti, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || ti < 1 || ti > len(models.TimeOptions) {
		ti = 1
	}
	f.SetTimeOption(models.TimeOptions[ti-1])
}
