// Package main provides the CLI entry point for quotex.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/industrialquote/quotex-go/pkg/quotex"
	"github.com/industrialquote/quotex-go/pkg/quotex/compare"
	"github.com/industrialquote/quotex-go/pkg/quotex/models"
	"github.com/industrialquote/quotex-go/pkg/quotex/output"
)

var (
	outputPath string
	pretty     bool
	forceKind  string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quotex",
		Short: "Extract and compare industrial quotation workbooks",
		Long: `quotex extracts PRE and Analisi Profittabilita quotation workbooks
into a unified JSON tree, and compares two revisions of a quotation.`,
	}
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file overriding thresholds")

	extractCmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract a quotation workbook to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVar(&forceKind, "force", "", "Skip detection and extract as: pre, analisi_profittabilita")

	detectCmd := &cobra.Command{
		Use:   "detect [input.xlsx]",
		Short: "Report the detected format and confidence signals",
		Args:  cobra.ExactArgs(1),
		RunE:  runDetect,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [old] [new]",
		Short: "Compare two quotation revisions",
		Long: `compare diffs two quotations item by item and reports per-WBE margin
impact. Inputs may be workbooks (.xlsx) or previously extracted trees (.json).`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	rootCmd.AddCommand(extractCmd, detectCmd, compareCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (quotex.Config, error) {
	if configPath == "" {
		return quotex.DefaultConfig(), nil
	}
	return quotex.LoadConfig(configPath)
}

func newExtractor(cfg quotex.Config) *quotex.Extractor {
	return quotex.NewExtractorFromConfig(cfg)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex := newExtractor(cfg)

	var q *models.Quotation
	if forceKind != "" {
		kind, err := parseKind(forceKind)
		if err != nil {
			return err
		}
		q, err = ex.ForceExtract(inputPath, kind)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
	} else {
		q, err = ex.Extract(inputPath)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
	}
	return writeResult(q)
}

func runDetect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conf, err := newExtractor(cfg).AnalyzeConfidence(inputPath)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	return writeResult(conf)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ex := newExtractor(cfg)

	old, err := loadQuotation(ex, args[0])
	if err != nil {
		return err
	}
	updated, err := loadQuotation(ex, args[1])
	if err != nil {
		return err
	}

	opts := compare.Options{
		Tolerance:           cfg.Tolerance(),
		MarginRiskThreshold: cfg.MarginRiskThreshold(),
	}
	report := compare.Compare(old, updated, opts)
	report.ReportID = uuid.NewString()
	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return writeResult(report)
}

// loadQuotation accepts either a workbook or an already extracted tree.
func loadQuotation(ex *quotex.Extractor, path string) (*models.Quotation, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		q, err := models.LoadJSON(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return q, nil
	}
	q, err := ex.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extraction failed for %s: %w", path, err)
	}
	return q, nil
}

func parseKind(s string) (quotex.Kind, error) {
	switch s {
	case string(quotex.KindPre):
		return quotex.KindPre, nil
	case string(quotex.KindProfittabilita):
		return quotex.KindProfittabilita, nil
	default:
		return "", fmt.Errorf("invalid format %q (must be %s or %s)",
			s, quotex.KindPre, quotex.KindProfittabilita)
	}
}

func writeResult(v interface{}) error {
	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}
