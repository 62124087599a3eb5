package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/config"
	"github.com/remloop/remloop/internal/importer"
	"github.com/remloop/remloop/internal/storage"
	"github.com/remloop/remloop/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "remloop failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to config.yaml")
	importPath := flag.String("import", "", "import groups from a YAML file and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	a := app.New(store, cfg.Scheduler.Buffer)
	defer a.Close()

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		n, err := importer.Import(a, string(data))
		if err != nil {
			return fmt.Errorf("import groups: %w", err)
		}
		fmt.Printf("imported %d group(s)\n", n)
		return nil
	}

	if cfg.Dev.Seed {
		a.SeedStarterGroups()
	}

	runtimeCfg := update.RuntimeConfig{
		DesktopNotifications:   cfg.Notifications.Desktop,
		TerminalBell:           cfg.Notifications.Bell,
		DefaultIntervalMinutes: cfg.Scheduler.DefaultIntervalMinutes,
	}
	for _, s := range cfg.Sounds {
		runtimeCfg.Sounds = append(runtimeCfg.Sounds, update.Sound{ID: s.ID, Name: s.Name})
	}

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.Notifications.Desktop {
		notifier = update.ExecDesktopNotifier{}
	}

	program := tea.NewProgram(update.NewModelWithConfig(a, notifier, runtimeCfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
