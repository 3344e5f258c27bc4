package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/overnightmvp/7-day/internal/config"
	"github.com/overnightmvp/7-day/internal/logging"
)

func main() {
	dir := flag.String("path", "migrations", "directory holding the migration files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-path dir] up|down\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.New(logging.Config{Format: "text"})
	log := logger.Zerolog()

	if flag.NArg() != 1 || (flag.Arg(0) != "up" && flag.Arg(0) != "down") {
		flag.Usage()
		os.Exit(2)
	}

	db, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("load database config")
	}

	if err := run(db.URL, *dir, flag.Arg(0)); err != nil {
		log.Fatal().Err(err).Str("direction", flag.Arg(0)).Msg("migration failed")
	}
	log.Info().Str("direction", flag.Arg(0)).Msg("migrations applied")
}

func run(dsn, dir, direction string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	sourceURL := "file://" + filepath.ToSlash(absPath)

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if direction == "up" {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
