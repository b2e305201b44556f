// Package scoring runs the per-clause risk pipeline (category
// resolution, signal extraction, high-risk detection, calibration,
// exposure banding, severity scoring, mitigation) and aggregates the
// clause records of a contract into a bounded 0-100 score.
package scoring

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/clauserisk/internal/calibrate"
	"github.com/unbound-force/clauserisk/internal/category"
	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/detect"
	"github.com/unbound-force/clauserisk/internal/extract"
	"github.com/unbound-force/clauserisk/internal/metrics"
	"github.com/unbound-force/clauserisk/internal/mitigation"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// ScoringMethod describes the severity formula in reports.
const ScoringMethod = "base_impact x exposure_multiplier x calibrated_confidence"

// Options configures an Engine.
type Options struct {
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// Metrics receives scoring telemetry. Nil uses metrics.Noop.
	Metrics metrics.Recorder
}

// Engine scores clauses. It holds only read-only tables and is safe for
// concurrent use.
type Engine struct {
	cfg        *config.RiskConfig
	profiles   config.Profiles
	mapper     *category.Mapper
	extractor  *extract.Extractor
	detector   *detect.Detector
	calibrator *calibrate.Calibrator
	logger     *log.Logger
	metrics    metrics.Recorder
}

// Assessment is the scored form of one contract.
type Assessment struct {
	Clauses []taxonomy.ClauseRiskRecord  `json:"clauses"`
	Summary taxonomy.ContractRiskSummary `json:"summary"`
}

// NewEngine validates cfg and builds an Engine. A nil cfg uses
// config.DefaultConfig. Configuration errors are returned unchanged so
// callers can match the config sentinels.
func NewEngine(cfg *config.RiskConfig, opts Options) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	mapper, err := category.New(cfg)
	if err != nil {
		return nil, err
	}
	detector, err := detect.New(cfg)
	if err != nil {
		return nil, err
	}
	calibrator, err := calibrate.New(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		profiles:   profiles,
		mapper:     mapper,
		extractor:  extract.New(cfg.Detection),
		detector:   detector,
		calibrator: calibrator,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.metrics == nil {
		e.metrics = metrics.Noop{}
	}
	return e, nil
}

// Config returns the engine's configuration. Callers must not modify it.
func (e *Engine) Config() *config.RiskConfig {
	return e.cfg
}

// Mapper returns the engine's category mapper.
func (e *Engine) Mapper() *category.Mapper {
	return e.mapper
}

// ScoreClause runs the full per-clause pipeline. The returned record's
// Index is zero; ScoreContract sets it.
func (e *Engine) ScoreClause(in taxonomy.ClauseInput) (taxonomy.ClauseRiskRecord, error) {
	start := time.Now()

	res := e.mapper.Resolve(in.Label, in.Confidence, in.Text)
	profile, err := e.profiles.Get(res.Category)
	if err != nil {
		return taxonomy.ClauseRiskRecord{}, err
	}

	md := e.extractor.Metadata(in.Text)
	detection := e.detector.Detect(in.Text, res.Category, md)
	cal := e.calibrator.Calibrate(in.Confidence, in.Text, res.Category, md)

	rec := taxonomy.ClauseRiskRecord{
		ClauseText:           in.Text,
		RawLabel:             in.Label,
		CanonicalCategory:    res.Category,
		CategorySource:       string(res.Source),
		RawConfidence:        cal.OriginalConfidence,
		CalibratedConfidence: cal.CalibratedConfidence,
		BaseImpact:           profile.BaseImpact,
		ExtractedMetadata:    md,
		HighRiskDetection:    detection,
		CalibrationDetails:   cal,
	}

	if res.Category == taxonomy.Neutral {
		rec.FinancialExposure = taxonomy.FinancialExposure{
			Level:         taxonomy.ExposureLow,
			Multiplier:    e.cfg.Exposure.LowMultiplier,
			MonetaryValue: md.MonetaryValue,
		}
		rec.SeverityBucket = taxonomy.BucketNone
		rec.MitigationStrategies = []taxonomy.Mitigation{}
	} else {
		rec.FinancialExposure = Exposure(md.ExposureAmount(), profile.FinancialThreshold, e.cfg.Exposure)
		rec.FinancialExposure.MonetaryValue = md.MonetaryValue
		rec.AdjustedImpact = rec.BaseImpact * rec.FinancialExposure.Multiplier
		rec.SeverityScore = rec.AdjustedImpact * rec.CalibratedConfidence
		rec.SeverityBucket = Bucket(rec.SeverityScore, e.cfg.Severity)
		if detection.SeverityOverride != nil {
			rec.SeverityBucket = *detection.SeverityOverride
		}
		rec.MitigationStrategies = mitigation.Generate(rec)
	}

	e.metrics.ClauseScored(rec.CanonicalCategory, rec.SeverityBucket, detection.IsHighRisk, time.Since(start))
	return rec, nil
}

// ScoreContract scores every clause concurrently, bounded by the
// configured worker count, and aggregates the results. Records keep
// input order. An empty input yields a zero summary.
func (e *Engine) ScoreContract(ctx context.Context, inputs []taxonomy.ClauseInput) (*Assessment, error) {
	start := time.Now()
	records := make([]taxonomy.ClauseRiskRecord, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := e.ScoreClause(in)
			if err != nil {
				return fmt.Errorf("clause %d: %w", i, err)
			}
			rec.Index = i
			records[i] = rec
			e.logger.Debug("scored clause",
				"index", i,
				"category", rec.CanonicalCategory,
				"source", rec.CategorySource,
				"score", rec.SeverityScore,
				"bucket", rec.SeverityBucket,
				"triggers", len(rec.HighRiskDetection.TriggerIDs),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := e.Aggregate(records)
	e.metrics.ContractScored(len(records), summary.NormalizedScore, time.Since(start))
	e.logger.Debug("scored contract",
		"clauses", summary.TotalClauses,
		"normalized", summary.NormalizedScore,
		"high_risk", summary.HighRiskCount,
	)
	return &Assessment{Clauses: records, Summary: summary}, nil
}
