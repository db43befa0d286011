package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scottopell/rqbit/internal/api"
	"github.com/scottopell/rqbit/internal/config"
	"github.com/scottopell/rqbit/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/rqbit-tui/config.yaml)")
	serverURL := flag.String("server", "", "daemon URL (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	log.Logger = zerolog.Nop()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	client := api.NewClient(cfg.Server.URL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)

	app := tui.NewApp(cfg, *configPath, client)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
