// Package detect flags clauses that match hard-coded high-risk
// language patterns for their canonical category, and decides when a
// match is severe enough to force a High severity bucket.
package detect

import (
	"fmt"

	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/extract"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Phrase lists for the fixed predicates. *Terms lists are stems that
// match at a word start ("terminat" matches "termination"); only the
// *Words lists require whole-word matches.
var (
	immediateTerms   = []string{"immediate"}
	terminationTerms = []string{"terminat"}
	convenienceTerms = []string{"for convenience", "without cause"}
	noCureTerms      = []string{
		"no cure", "without opportunity to cure", "without an opportunity to cure",
		"no opportunity to cure", "without any cure period",
	}

	indemnityTerms = []string{"indemnif"}

	piiTerms        = []string{"personally identifiable", "personal data", "personal information"}
	piiWords        = []string{"pii"}
	regulationWords = []string{"gdpr", "ccpa", "general data protection regulation", "california consumer privacy act"}
	breachTerms     = []string{"data breach", "security breach", "security incident", "breach notification"}

	penaltyTerms = []string{"liquidated damages"}
	penaltyWords = []string{"penalty", "penalties"}
	lateFeeTerms = []string{"late fee", "late payment", "late charge", "overdue"}

	assignmentTerms = []string{
		"hereby assign", "shall assign", "assigns all", "assignment of",
		"transfer of ownership", "transfers ownership", "title and interest",
		"shall vest", "ownership of all",
	}
	perpetualTerms    = []string{"perpetual", "irrevocable"}
	infringementTerms = []string{"infring"}
	workForHireTerms  = []string{"work for hire", "work made for hire", "works made for hire"}
)

// Detector evaluates the high-risk predicates. It is immutable and safe
// for concurrent use.
type Detector struct {
	profiles      config.Profiles
	capTerms      []string
	criticalAbove float64
}

// New builds a Detector from cfg.
func New(cfg *config.RiskConfig) (*Detector, error) {
	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	return &Detector{
		profiles:      profiles,
		capTerms:      append([]string(nil), cfg.Detection.CapTerms...),
		criticalAbove: cfg.Exposure.CriticalAbove,
	}, nil
}

// findings accumulates matched predicates for one clause.
type findings struct {
	triggers []string
	ids      []taxonomy.TriggerID
	critical bool
}

func (f *findings) add(id taxonomy.TriggerID, desc string) {
	f.ids = append(f.ids, id)
	f.triggers = append(f.triggers, desc)
}

func (f *findings) result() taxonomy.HighRiskDetection {
	// Always return non-nil slices so JSON marshals as [] not null.
	d := taxonomy.HighRiskDetection{
		IsHighRisk: len(f.ids) > 0,
		Triggers:   append(make([]string, 0, len(f.triggers)), f.triggers...),
		TriggerIDs: append(make([]taxonomy.TriggerID, 0, len(f.ids)), f.ids...),
	}
	if f.critical {
		high := taxonomy.BucketHigh
		d.SeverityOverride = &high
	}
	return d
}

// Detect evaluates the predicates of cat, and only cat, against text.
// Every matching predicate is reported, in a fixed order per category.
// md must be the metadata extracted from the same text.
func (d *Detector) Detect(text string, cat taxonomy.Category, md taxonomy.ExtractedMetadata) taxonomy.HighRiskDetection {
	lower := extract.Lower(text)
	var f findings

	switch cat {
	case taxonomy.TerminationRisk:
		d.termination(lower, &f)
	case taxonomy.LiabilityRisk:
		d.liability(lower, md, &f)
	case taxonomy.DataPrivacyRisk:
		d.privacy(lower, &f)
	case taxonomy.PaymentRisk:
		d.payment(lower, md, &f)
	case taxonomy.IPRisk:
		d.ip(lower, &f)
	}
	return f.result()
}

func (d *Detector) termination(lower string, f *findings) {
	immediate := extract.HasAnyStem(lower, immediateTerms) && extract.HasAnyStem(lower, terminationTerms)
	noCure := extract.HasAnyStem(lower, noCureTerms)

	if immediate {
		f.add(taxonomy.TriggerImmediateTermination, "Immediate termination right")
	}
	if extract.HasAnyStem(lower, convenienceTerms) {
		f.add(taxonomy.TriggerConvenience, "Termination for convenience or without cause")
	}
	if noCure {
		f.add(taxonomy.TriggerNoCure, "No opportunity to cure before termination")
	}
	if immediate && noCure {
		f.critical = true
	}
}

func (d *Detector) liability(lower string, md taxonomy.ExtractedMetadata, f *findings) {
	d.amount(taxonomy.LiabilityRisk, taxonomy.TriggerLiabilityAmount, md, f)

	indemnity := extract.HasAnyStem(lower, indemnityTerms)
	if md.UncappedLanguage {
		desc := "Uncapped or unlimited liability"
		if indemnity {
			desc = "Uncapped indemnification obligation"
		}
		f.add(taxonomy.TriggerUncappedLiability, desc)
		f.critical = true
	}
	if indemnity && !extract.HasAnyWord(lower, d.capTerms) {
		f.add(taxonomy.TriggerUncappedIndemnity, "Indemnification without a liability cap")
	}
}

func (d *Detector) privacy(lower string, f *findings) {
	if extract.HasAnyStem(lower, piiTerms) || extract.HasAnyWord(lower, piiWords) {
		f.add(taxonomy.TriggerPersonalData, "Handles personally identifiable information")
	}
	if extract.HasAnyWord(lower, regulationWords) {
		f.add(taxonomy.TriggerPrivacyRegime, "GDPR/CCPA regulatory obligations")
	}
	if extract.HasAnyStem(lower, breachTerms) {
		f.add(taxonomy.TriggerDataBreach, "Data breach notification or liability")
	}
}

func (d *Detector) payment(lower string, md taxonomy.ExtractedMetadata, f *findings) {
	if extract.HasAnyStem(lower, penaltyTerms) || extract.HasAnyWord(lower, penaltyWords) {
		f.add(taxonomy.TriggerPenalty, "Liquidated damages or penalty clause")
	}
	d.amount(taxonomy.PaymentRisk, taxonomy.TriggerPaymentAmount, md, f)
	if extract.HasAnyStem(lower, lateFeeTerms) {
		f.add(taxonomy.TriggerLateFee, "Late payment fees or interest")
	}
}

func (d *Detector) ip(lower string, f *findings) {
	if extract.HasAnyStem(lower, assignmentTerms) {
		f.add(taxonomy.TriggerIPAssignment, "Transfer or assignment of IP ownership")
	}
	if extract.HasAnyStem(lower, perpetualTerms) {
		f.add(taxonomy.TriggerPerpetual, "Perpetual or irrevocable license")
	}
	if extract.HasAnyStem(lower, infringementTerms) {
		f.add(taxonomy.TriggerInfringement, "Infringement liability")
	}
	if extract.HasAnyStem(lower, workForHireTerms) {
		f.add(taxonomy.TriggerWorkForHire, "Work made for hire")
	}
}

// amount fires when the exposure amount is above the category's
// financial threshold, and marks the clause critical above the
// critical band.
func (d *Detector) amount(cat taxonomy.Category, id taxonomy.TriggerID, md taxonomy.ExtractedMetadata, f *findings) {
	threshold := d.profiles[cat].FinancialThreshold
	amt := md.ExposureAmount()
	if !amt.Exceeds(threshold) {
		return
	}
	f.add(id, fmt.Sprintf("Monetary exposure %s exceeds %s threshold",
		amt, taxonomy.Dollars(threshold)))
	if amt.Exceeds(d.criticalAbove) {
		f.critical = true
	}
}
