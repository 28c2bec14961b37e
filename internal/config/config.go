// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string

	// MigrationsPath points at the directory with SQL migrations.
	MigrationsPath string

	// LogLevel sets the minimum log level.
	LogLevel string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.MigrationsPath, "m", "migrations", "path to migrations directory")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
}

// Parse parses command-line flags, loads a .env file if present, and lets
// environment variables override flag values. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables from OS")
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Addr = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		options.MigrationsPath = path
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		options.LogLevel = lvl
	}

	return options
}
