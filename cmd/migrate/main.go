// Command migrate applies the versioned postgres schema of the stock ledger.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("usage")

// command is one migrate subcommand. Commands without a migrator run
// before any database connection is opened.
type command struct {
	args    string
	summary string
	minArgs int
	offline func(source string, args []string, log *zap.Logger) error
	online  func(m *migration.Migrator, args []string, log *zap.Logger) error
}

var commands = map[string]command{
	"up": {summary: "Apply all pending migrations", online: func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Up()
	}},
	"down": {summary: "Roll back all migrations", online: func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Down()
	}},
	"step": {args: "<n>", summary: "Apply n migrations (negative rolls back)", minArgs: 1, online: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	}},
	"goto": {args: "<version>", summary: "Migrate up or down to a version", minArgs: 1, online: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))
	}},
	"version": {summary: "Show the applied version", online: func(m *migration.Migrator, _ []string, log *zap.Logger) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
	"force": {args: "<version>", summary: "Set the version without running migrations", minArgs: 1, online: func(m *migration.Migrator, args []string, log *zap.Logger) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		log.Warn("Forcing migration version", zap.Int("version", v))
		return m.Force(v)
	}},
	"drop": {args: "-confirm", summary: "Drop every ledger table", online: func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		fs := flag.NewFlagSet("drop", flag.ContinueOnError)
		confirm := fs.Bool("confirm", false, "confirm the drop")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if !*confirm {
			return errors.New("drop needs -confirm")
		}
		return m.Drop()
	}},
	"create": {args: "<name> [description]", summary: "Write a new up/down file pair", minArgs: 1, offline: create},
	"list":   {summary: "List migrations in the source", offline: list},
}

func main() {
	path := flag.String("path", "", "migrations directory (default: the embedded set)")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(*path, flag.Args(), log)
	_ = log.Sync()
	switch {
	case errors.Is(err, errUsage):
		usage()
		os.Exit(2)
	case err != nil:
		log.Error("Migration command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(path string, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok || len(rest) < cmd.minArgs {
		return errUsage
	}
	log.Info("Migration CLI started", zap.String("command", name), zap.String("source", sourceName(path)))

	if cmd.offline != nil {
		return cmd.offline(path, rest, log)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("driver %q has no versioned schema; the server creates sqlite tables on startup", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, migration.Source(path), log)
	if err != nil {
		return err
	}
	defer m.Close()
	return cmd.online(m, rest, log)
}

func create(dir string, args []string, log *zap.Logger) error {
	if dir == "" {
		dir = defaultMigrationsDir
	}
	var description string
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
	return nil
}

func list(path string, _ []string, log *zap.Logger) error {
	entries, err := migration.ListMigrations(migration.Source(path))
	if err != nil {
		return err
	}
	log.Info("Available migrations", zap.Int("count", len(entries)))
	for _, e := range entries {
		fmt.Println("  -", e)
	}
	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Stock ledger schema migrations\n\nUsage:\n  migrate [flags] <command> [arguments]\n\nCommands:")
	for _, name := range []string{"up", "down", "step", "goto", "version", "force", "drop", "create", "list"} {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-28s %s\n", name+" "+cmd.args, cmd.summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nDatabase settings come from config.toml or STOCKLEDGER_DATABASE_* variables.")
}
