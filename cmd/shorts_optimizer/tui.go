package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/shorts-optimizer/internal/session"
	"github.com/jonathan/shorts-optimizer/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long:  "Paste a script, optimize it and copy each section to the clipboard from an interactive terminal session.",
	RunE:  runTUI,
}

var tuiLogFile string

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file while the UI is running")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs go to a file or nowhere.
	if tuiLogFile != "" {
		f, err := tea.LogToFile(tuiLogFile, "shorts")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx := cmd.Context()
	opt, closeFn, err := newOptimizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	model := tui.NewModel(ctx, session.NewController(opt))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
