package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/shorts-optimizer/internal/export"
	"github.com/jonathan/shorts-optimizer/internal/observability"
	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/schemas"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a raw script in one shot",
	Long:  "Read a raw script from a file or stdin, send it to Gemini once and print the shot breakdown, titles, description and editing guide.",
	RunE:  runOptimize,
}

var (
	optimizeInputFile  string
	optimizeOutputFile string
	optimizeJSON       bool
	optimizeCopy       string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeInputFile, "in", "i", "", "Path to the raw script (stdin when empty or -)")
	optimizeCmd.Flags().StringVarP(&optimizeOutputFile, "out", "o", "", "Write the result JSON to this file")
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "Print the result as JSON instead of boxed sections")
	optimizeCmd.Flags().StringVar(&optimizeCopy, "copy", "", "Print only one flattened section: script, titles, description or editing")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	var section export.SectionName
	if optimizeCopy != "" {
		var err error
		if section, err = export.ParseSection(optimizeCopy); err != nil {
			return err
		}
	}

	script, err := readScript(cmd.InOrStdin(), optimizeInputFile)
	if err != nil {
		return err
	}
	if err := optimizer.CheckScript(script); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opt, closeFn, err := newOptimizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	result, err := opt.Optimize(ctx, script)
	if err == nil && result == nil {
		err = &optimizer.EmptyResponseError{}
	}
	if err != nil {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintError(err)
		return fmt.Errorf("optimization failed: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if optimizeOutputFile != "" {
		if err := schemas.ValidateJSONString(schemas.OptimizationResultSchema(), string(jsonBytes)); err != nil {
			return fmt.Errorf("result does not validate against schema: %w", err)
		}
		if err := os.WriteFile(optimizeOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", optimizeOutputFile)
	}

	out := cmd.OutOrStdout()
	switch {
	case section != "":
		text, err := export.Section(result, section)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, text)
	case optimizeJSON:
		_, _ = fmt.Fprintln(out, string(jsonBytes))
	default:
		observability.NewPrinter(out).PrintOptimizationResult(result)
	}
	return nil
}

func readScript(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
