package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonathan/shorts-optimizer/internal/config"
	"github.com/jonathan/shorts-optimizer/internal/session"
	"github.com/jonathan/shorts-optimizer/internal/types"
)

type fakeOptimizer struct {
	result  *types.OptimizationResult
	err     error
	scripts []string
}

func (f *fakeOptimizer) Optimize(_ context.Context, script string) (*types.OptimizationResult, error) {
	f.scripts = append(f.scripts, script)
	return f.result, f.err
}

func sampleResult() *types.OptimizationResult {
	return &types.OptimizationResult{
		RefinedScript: []types.Shot{
			{Number: 1, Visual: "V1", Audio: "A1"},
			{Number: 2, Visual: "V2", Audio: "A2"},
		},
		Titles:       []string{"T1", "T2", "T3", "T4", "T5"},
		Description:  "Desc #ytshorts",
		EditingGuide: "1. Cut fast",
	}
}

// useFakeOptimizer swaps the client factory and records the settings it was given
func useFakeOptimizer(t *testing.T, fake *fakeOptimizer) *config.Config {
	t.Helper()
	var seen config.Config
	orig := newOptimizer
	newOptimizer = func(_ context.Context, cfg config.Config) (session.Optimizer, func() error, error) {
		seen = cfg
		return fake, func() error { return nil }, nil
	}
	t.Cleanup(func() { newOptimizer = orig })
	return &seen
}

// resetFlags clears package flag state that persists between Execute calls
func resetFlags() {
	configPath, apiKeyFlag, modelFlag, verboseFlag = "", "", "", false
	optimizeInputFile, optimizeOutputFile, optimizeCopy, optimizeJSON = "", "", "", false
	servePort = 0
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
