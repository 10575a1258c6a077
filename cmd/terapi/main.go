package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emirirr/terapi/internal/cli"
	"github.com/emirirr/terapi/internal/config"
	"github.com/emirirr/terapi/internal/db"
	"github.com/emirirr/terapi/internal/logging"
	"github.com/emirirr/terapi/internal/notify"
	"github.com/emirirr/terapi/internal/repository"
	"github.com/emirirr/terapi/internal/service"
	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine data directory: env var or default ~/.terapi
	dataDir := os.Getenv("TERAPI_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".terapi")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}

	// One instance per data directory. A second process would race the
	// countdown and the history writes.
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another terapi instance is already running against %s", dataDir)
	}
	defer lock.Unlock()

	// The TUI owns stdout, so logs go to a file. Fall back to a discard
	// logger rather than refusing to start.
	log, closeLog, err := logging.NewFileLogger(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		log = logging.Discard()
	} else {
		defer closeLog()
	}

	database, err := db.OpenDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewSQLiteUserRepo(database)
	historyRepo := repository.NewSQLiteHistoryRepo(database)

	authSvc := service.NewAuthService(userRepo)
	historySvc := service.NewHistoryService(historyRepo)

	topic := ""
	if cfg.Notifications.Enabled {
		topic = cfg.Notifications.NtfyTopic
	}
	notifier := notify.NewNotifier(topic, time.Duration(cfg.Notifications.RequestTimeout)*time.Second)

	controller := service.NewSessionController(historySvc, notifier, log)

	app := &cli.App{
		Auth:       authSvc,
		History:    historySvc,
		Controller: controller,
		Config:     cfg,
		Log:        log,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
