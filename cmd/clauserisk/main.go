package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/metrics"
	"github.com/unbound-force/clauserisk/internal/report"
	"github.com/unbound-force/clauserisk/internal/scaffold"
	"github.com/unbound-force/clauserisk/internal/scoring"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "clauserisk",
		Short: "clauserisk: contract clause risk scoring",
		Long: `clauserisk scores classified contract clauses for legal and
financial risk. Each clause gets a canonical risk category, extracted
monetary and duration signals, high-risk triggers, a calibrated
confidence, a severity bucket and prioritized mitigations; the
contract gets a normalized 0-100 risk score and an executive
mitigation summary.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false,
		"log per-clause scoring details to stderr")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newCategoriesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd())
	return root
}

// scoreParams holds the parsed flags for the score command.
type scoreParams struct {
	inputPath       string
	configPath      string
	format          string
	workers         int
	verbose         bool
	interactive     bool
	metricsTextfile string
	maxScore        float64
	maxHighRisk     int
	stdin           io.Reader
	stdout          io.Writer
	stderr          io.Writer
}

// validFormat reports whether format is one of allowed.
func validFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(quoted, ", "))
}

// loadConfig loads the policy file and applies flag overrides.
func loadConfig(path string, workers int) (*config.RiskConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, nil
}

// runScore is the extracted, testable body of the score command.
func runScore(ctx context.Context, p scoreParams) error {
	if err := validFormat(p.format, "text", "json", "markdown", "html"); err != nil {
		return err
	}

	cfg, err := loadConfig(p.configPath, p.workers)
	if err != nil {
		return err
	}
	inputs, err := readClauses(p.inputPath, p.stdin)
	if err != nil {
		return err
	}

	opts := scoring.Options{Logger: logger}
	var prom *metrics.Prometheus
	if p.metricsTextfile != "" {
		if prom, err = metrics.NewPrometheus(nil); err != nil {
			return err
		}
		opts.Metrics = prom
	}

	engine, err := scoring.NewEngine(cfg, opts)
	if err != nil {
		return err
	}

	logger.Info("scoring contract", "clauses", len(inputs), "workers", cfg.Workers)
	a, err := engine.ScoreContract(ctx, inputs)
	if err != nil {
		return err
	}
	logger.Info("scoring complete",
		"normalized", fmt.Sprintf("%.1f", a.Summary.NormalizedScore),
		"high_risk", a.Summary.HighRiskCount)

	if prom != nil {
		if err := prom.WriteTextfile(p.metricsTextfile); err != nil {
			return err
		}
		logger.Info("wrote metrics", "path", p.metricsTextfile)
	}

	if p.interactive {
		return runInteractiveScore(a)
	}

	if err := writeAssessment(p.stdout, p.format, a, p.verbose); err != nil {
		return err
	}

	printCISummary(p.stderr, a.Summary, p.maxScore, p.maxHighRisk)
	return checkCIThresholds(a.Summary, p.maxScore, p.maxHighRisk)
}

// writeAssessment outputs the assessment in the requested format.
func writeAssessment(w io.Writer, format string, a *scoring.Assessment, verbose bool) error {
	switch format {
	case "json":
		return report.WriteJSON(w, a)
	case "markdown":
		return report.WriteMarkdown(w, a)
	case "html":
		return report.WriteHTML(w, a)
	default:
		return report.WriteTextOptions(w, a, report.TextOptions{Verbose: verbose})
	}
}

// printCISummary prints a one-line CI summary to stderr when
// threshold flags are set.
func printCISummary(w io.Writer, s taxonomy.ContractRiskSummary, maxScore float64, maxHighRisk int) {
	if maxScore <= 0 && maxHighRisk <= 0 {
		return
	}

	var parts []string
	if maxScore > 0 {
		status := "PASS"
		if s.NormalizedScore > maxScore {
			status = "FAIL"
		}
		parts = append(parts, fmt.Sprintf("Risk score: %.1f/%.1f (%s)",
			s.NormalizedScore, maxScore, status))
	}
	if maxHighRisk > 0 {
		status := "PASS"
		if s.HighRiskCount > maxHighRisk {
			status = "FAIL"
		}
		parts = append(parts, fmt.Sprintf("High-risk clauses: %d/%d (%s)",
			s.HighRiskCount, maxHighRisk, status))
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

// checkCIThresholds returns an error if any CI thresholds are exceeded.
func checkCIThresholds(s taxonomy.ContractRiskSummary, maxScore float64, maxHighRisk int) error {
	if maxScore > 0 && s.NormalizedScore > maxScore {
		return fmt.Errorf("risk score %.1f exceeds maximum %.1f",
			s.NormalizedScore, maxScore)
	}
	if maxHighRisk > 0 && s.HighRiskCount > maxHighRisk {
		return fmt.Errorf("%d high-risk clauses exceed maximum %d",
			s.HighRiskCount, maxHighRisk)
	}
	return nil
}

func newScoreCmd() *cobra.Command {
	var p scoreParams

	cmd := &cobra.Command{
		Use:   "score [clauses-file]",
		Short: "Score a contract's classified clauses",
		Long: `Score a file of classified clauses (JSON or YAML; stdin when the
file is omitted or "-"). Each entry carries the clause text, the
classifier's raw label and its confidence:

  [{"clause": "...", "label": "Uncapped Liability", "confidence": 0.85}]

The object form {"clauses": [...]} is accepted as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p.inputPath = args[0]
			}
			p.stdin = cmd.InOrStdin()
			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			return runScore(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"risk policy YAML file (default: built-in policy)")
	cmd.Flags().StringVar(&p.format, "format", "text",
		"output format: text, json, markdown, or html")
	cmd.Flags().IntVarP(&p.workers, "workers", "w", 0,
		"clauses scored concurrently (default: policy setting)")
	cmd.Flags().BoolVarP(&p.verbose, "verbose", "v", false,
		"include per-clause triggers and mitigations in text output")
	cmd.Flags().BoolVarP(&p.interactive, "interactive", "i", false,
		"launch interactive TUI for browsing results")
	cmd.Flags().StringVar(&p.metricsTextfile, "metrics-textfile", "",
		"write Prometheus scoring metrics to this file")
	cmd.Flags().Float64Var(&p.maxScore, "max-score", 0,
		"fail if the normalized risk score exceeds this (0 = no limit)")
	cmd.Flags().IntVar(&p.maxHighRisk, "max-high-risk", 0,
		"fail if the high-risk clause count exceeds this (0 = no limit)")

	return cmd
}

// evaluateParams holds the parsed flags for the evaluate command.
type evaluateParams struct {
	inputPath  string
	configPath string
	format     string
	bins       int
	stdin      io.Reader
	stdout     io.Writer
}

// runEvaluate is the extracted, testable body of the evaluate command.
func runEvaluate(ctx context.Context, p evaluateParams) error {
	if err := validFormat(p.format, "text", "json"); err != nil {
		return err
	}

	cfg, err := loadConfig(p.configPath, 0)
	if err != nil {
		return err
	}
	inputs, err := readClauses(p.inputPath, p.stdin)
	if err != nil {
		return err
	}
	engine, err := scoring.NewEngine(cfg, scoring.Options{Logger: logger})
	if err != nil {
		return err
	}

	logger.Info("evaluating calibration", "clauses", len(inputs), "bins", p.bins)
	ev, err := engine.Evaluate(ctx, inputs, p.bins)
	if err != nil {
		return err
	}

	if p.format == "json" {
		return report.WriteEvaluationJSON(p.stdout, ev)
	}
	return report.WriteEvaluationText(p.stdout, ev)
}

func newEvaluateCmd() *cobra.Command {
	var p evaluateParams

	cmd := &cobra.Command{
		Use:   "evaluate [clauses-file]",
		Short: "Measure confidence calibration on labelled clauses",
		Long: `Score clauses that carry an "expected" category and compare the
expected calibration error (ECE) of the raw classifier confidence
with that of the calibrated confidence. Clauses without an expected
category are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p.inputPath = args[0]
			}
			p.stdin = cmd.InOrStdin()
			p.stdout = cmd.OutOrStdout()
			return runEvaluate(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"risk policy YAML file (default: built-in policy)")
	cmd.Flags().StringVar(&p.format, "format", "text",
		"output format: text or json")
	cmd.Flags().IntVar(&p.bins, "bins", scoring.DefaultBins,
		"number of equal-width confidence bins")

	return cmd
}

// categoryInfo is one row of the categories command.
type categoryInfo struct {
	Category           taxonomy.Category `json:"category"`
	Slug               string            `json:"slug"`
	BaseImpact         float64           `json:"base_impact"`
	FinancialThreshold float64           `json:"financial_threshold"`
	ThresholdNote      string            `json:"financial_threshold_note"`
	Description        string            `json:"description"`
}

// categoriesParams holds the parsed flags for the categories command.
type categoriesParams struct {
	configPath string
	format     string
	stdout     io.Writer
}

// runCategories is the extracted, testable body of the categories
// command.
func runCategories(p categoriesParams) error {
	if err := validFormat(p.format, "text", "json"); err != nil {
		return err
	}
	cfg, err := loadConfig(p.configPath, 0)
	if err != nil {
		return err
	}
	profiles, err := cfg.Profiles()
	if err != nil {
		return err
	}

	infos := make([]categoryInfo, 0, len(profiles))
	for _, cat := range taxonomy.Categories() {
		pc, err := profiles.Get(cat)
		if err != nil {
			return err
		}
		infos = append(infos, categoryInfo{
			Category:           cat,
			Slug:               cat.Slug(),
			BaseImpact:         pc.BaseImpact,
			FinancialThreshold: pc.FinancialThreshold,
			ThresholdNote:      pc.ThresholdNote,
			Description:        pc.Description,
		})
	}

	if p.format == "json" {
		enc := json.NewEncoder(p.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	s := report.DefaultStyles()
	for i, c := range infos {
		if i > 0 {
			fmt.Fprintln(p.stdout)
		}
		fmt.Fprintln(p.stdout, s.Header.Render(fmt.Sprintf("%s (%s)", c.Category, c.Slug)))
		fmt.Fprintf(p.stdout, "    weight %.1f, high exposure above %s\n",
			c.BaseImpact, taxonomy.Dollars(c.FinancialThreshold))
		fmt.Fprintln(p.stdout, s.Muted.Render("    "+c.Description))
		if c.ThresholdNote != "" {
			fmt.Fprintln(p.stdout, s.Muted.Render("    "+c.ThresholdNote))
		}
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	var p categoriesParams

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the canonical risk categories and their policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p.stdout = cmd.OutOrStdout()
			return runCategories(p)
		},
	}

	cmd.Flags().StringVarP(&p.configPath, "config", "c", "",
		"risk policy YAML file (default: built-in policy)")
	cmd.Flags().StringVar(&p.format, "format", "text",
		"output format: text or json")

	return cmd
}

// runConfig is the extracted, testable body of the config command.
func runConfig(path string, w io.Writer) error {
	cfg, err := loadConfig(path, 0)
	if err != nil {
		return err
	}
	out, err := cfg.WriteYAML()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective risk policy as YAML",
		Long: `Print the effective risk policy (built-in defaults, then the
--config file, then CLAUSERISK_* environment variables) as YAML. The
output is a valid --config file and a starting point for tuning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "",
		"risk policy YAML file (default: built-in policy)")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for clauserisk assessment output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of clauserisk score --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a starter risk policy and example clauses",
		Long: `Write clauserisk.yaml (the built-in risk policy), an example
clause file and a .env.example template into dir (default: the current
directory). Existing files are skipped unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			_, err := scaffold.Run(scaffold.Options{
				TargetDir: dir,
				Force:     force,
				Version:   version,
				Stdout:    cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite existing files")

	return cmd
}
