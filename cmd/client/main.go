// Package main runs the interactive Heartbible Connect client: a small
// shell to log in with a cédula and manage memorized-story reminders.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/heartbible/connect/internal/client/session"
	"github.com/heartbible/connect/internal/logger"
	"github.com/heartbible/connect/internal/models"
)

var (
	version   string
	buildDate string
)

// login resolves the identifier against the server and opens a session.
// A store failure keeps the user on the entry prompt.
func login(ctx context.Context, api *session.Client, notifier session.Notifier, args []string) *session.Session {
	var (
		dni        string
		newAccount bool
		err        error
	)
	switch len(args) {
	case 1:
		dni, newAccount, err = api.OpenSession(ctx, args[0])
	case 2:
		dni, newAccount, err = api.OpenSessionComposed(ctx, args[0], args[1])
	default:
		fmt.Println("Usage: login <cédula> | login <país> <documento>")
		return nil
	}
	if err != nil {
		notifier.Error("Error", "No se pudo iniciar sesión.")
		return nil
	}

	if newAccount {
		notifier.Success("Cuenta creada", "Bienvenido, "+dni)
	} else {
		notifier.Success("Sesión iniciada", "Bienvenido de nuevo, "+dni)
	}

	s := session.NewSession(api, dni)
	if err := s.Refresh(ctx); err != nil {
		notifier.Error("Error", "No se pudieron cargar las historias.")
	}
	return s
}

// repl runs the interactive shell loop, accepting commands to manage reminders.
func repl(api *session.Client, notifier session.Notifier, form func(*session.Session) *session.Form) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	var current *session.Session
	for {
		fmt.Print("heartbible> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, add, module, edit <id>, delete <id>, list, stats, logout, exit")
		case "login":
			if s := login(ctx, api, notifier, args[1:]); s != nil {
				current = s
			}
		case "logout":
			// Unconditional; nothing is invalidated on the server.
			current = nil
			fmt.Println("Sesión cerrada")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			if current == nil {
				fmt.Println("Inicia sesión primero: login <cédula>")
				continue
			}
			runCommand(ctx, scanner, current, form(current), args)
		}
	}
}

// runCommand dispatches the session-scoped commands.
func runCommand(ctx context.Context, scanner *bufio.Scanner, s *session.Session, f *session.Form, args []string) {
	switch args[0] {
	case "list":
		fmt.Print(session.RenderTable(s.Reminders()))
	case "stats":
		fmt.Print(session.RenderStats(s.Statistics()))
	case "add":
		f.Open()
		session.PromptPersonal(scanner, f)
		submit(ctx, f)
	case "module":
		f.Open()
		if err := session.PromptModule(scanner, f); err != nil {
			fmt.Println(err)
			f.Cancel()
			return
		}
		submit(ctx, f)
	case "edit":
		if len(args) < 2 {
			fmt.Println("Usage: edit <id>")
			return
		}
		if err := f.StartEdit(args[1]); err != nil {
			fmt.Println("Historia no encontrada")
			return
		}
		session.PromptEdit(scanner, f)
		submit(ctx, f)
	case "delete":
		if len(args) < 2 {
			fmt.Println("Usage: delete <id>")
			return
		}
		if err := s.Delete(ctx, args[1]); err != nil {
			fmt.Println("No se pudo eliminar la historia")
			return
		}
		fmt.Println("Historia eliminada")
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

// submit sends the form and prints field errors, if any.
func submit(ctx context.Context, f *session.Form) {
	err := f.Submit(ctx)
	if verrs, ok := models.AsValidation(err); ok {
		for field, msg := range verrs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		f.Cancel()
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL string
		showVer bool
	)
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Heartbible Connect Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zl := logger.New()
	if err := zl.Init("info"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Log.Sync() }()

	api := session.NewClient(baseURL, http.DefaultClient)
	notifier := &session.ConsoleNotifier{W: os.Stdout}

	forms := make(map[*session.Session]*session.Form)
	formFor := func(s *session.Session) *session.Form {
		if f, ok := forms[s]; ok {
			return f
		}
		f := session.NewForm(s, notifier, zl.Log)
		forms[s] = f
		return f
	}

	repl(api, notifier, formFor)
}
