package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mkoller/agentdesk/internal/api"
	"github.com/mkoller/agentdesk/internal/app"
	"github.com/mkoller/agentdesk/internal/config"
	"github.com/mkoller/agentdesk/internal/db"
)

var (
	sessionID  string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "agentdesk",
	Short: "Live-call assist dashboard for contact-center agents",
	Long: `agentdesk attaches to one active call session and shows the live
transcript, AI playbook suggestions, and call controls in the terminal.
When the call ends it collects the wrap-up summary and a draft note.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	config.SetLogOutput(logFile)
	config.SetVerbose(verbose)

	// The dashboard runs without the local store if sqlite fails to open.
	store, err := db.Open(cfg.DBPath())
	if err != nil {
		config.LogWarn("local store unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APIKey)
	model := app.New(client, store, cfg.PushURL, sessionID)

	config.LogInfo("attaching to session %s", sessionID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

func main() {
	rootCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Call session id to attach to (required)")
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	if err := rootCmd.MarkFlagRequired("session"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
