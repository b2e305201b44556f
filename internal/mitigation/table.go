package mitigation

import (
	"fmt"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// candidate is one row of a category's strategy table.
type candidate struct {
	priority  taxonomy.Priority
	strategy  string
	action    string
	rationale string

	// requires lists triggers of which at least one must have matched.
	// Empty means the row always applies.
	requires []taxonomy.TriggerID

	// promoteOn lists triggers that raise the row to Critical.
	promoteOn []taxonomy.TriggerID

	// when is an extra condition on the clause record.
	when func(taxonomy.ClauseRiskRecord) bool

	// actionFor, when set, renders the action from the record.
	actionFor func(taxonomy.ClauseRiskRecord) string
}

func highBucket(r taxonomy.ClauseRiskRecord) bool {
	return r.SeverityBucket == taxonomy.BucketHigh
}

func shortNotice(r taxonomy.ClauseRiskRecord) bool {
	n := r.ExtractedMetadata.Durations.NoticePeriodDays
	return n > 0 && n < 30
}

func materialExposure(r taxonomy.ClauseRiskRecord) bool {
	return r.FinancialExposure.Level != taxonomy.ExposureLow && r.FinancialExposure.Level != ""
}

// coverage renders the exposure amount for action text.
func coverage(r taxonomy.ClauseRiskRecord) string {
	amt := r.ExtractedMetadata.ExposureAmount()
	if amt == nil || amt.Unbounded {
		return "the full potential exposure"
	}
	return amt.String()
}

var tables = map[taxonomy.Category][]candidate{
	taxonomy.LiabilityRisk: {
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Cap Liability",
			action:    "Negotiate a liability cap (e.g., 1x or 2x annual contract value) to limit maximum exposure.",
			rationale: "Uncapped or large liability creates open-ended financial risk. Industry practice caps it at a multiple of fees paid.",
			requires: []taxonomy.TriggerID{
				taxonomy.TriggerUncappedLiability, taxonomy.TriggerUncappedIndemnity, taxonomy.TriggerLiabilityAmount,
			},
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerUncappedLiability},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Add Exclusions",
			action:    "Exclude liability for consequential, indirect, or punitive damages unless explicitly required.",
			rationale: "Consequential damages can far exceed direct contract value.",
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerUncappedLiability},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Obtain Liability Insurance",
			rationale: "Insurance mitigates the financial impact of indemnification claims.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerLiabilityAmount},
			actionFor: func(r taxonomy.ClauseRiskRecord) string {
				return fmt.Sprintf("Secure professional liability insurance covering %s to transfer risk.", coverage(r))
			},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Mutual Indemnification",
			action:    "Negotiate mutual indemnification obligations to balance risk between parties.",
			rationale: "One-sided indemnification creates asymmetric risk exposure.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerUncappedIndemnity, taxonomy.TriggerUncappedLiability},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Legal Review Required",
			action:    "Have legal counsel review liability provisions before signing.",
			rationale: "High-severity liability clauses require expert interpretation and negotiation.",
			when:      highBucket,
		},
	},

	taxonomy.TerminationRisk: {
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Add Notice Period",
			action:    "Negotiate a minimum 30-60 day notice period before termination becomes effective.",
			rationale: "Provides time to find replacement services or wind down operations.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerImmediateTermination, taxonomy.TriggerConvenience},
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerImmediateTermination},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Add Cure Period",
			action:    "Negotiate a 30-day cure period for non-material breaches before termination.",
			rationale: "Provides an opportunity to fix issues and preserve the business relationship.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerNoCure, taxonomy.TriggerImmediateTermination},
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerNoCure},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Add Termination Fee",
			action:    "Require the counterparty to pay a termination fee (e.g., 3-6 months of fees) for convenience termination.",
			rationale: "Compensates for investment and planned revenue loss.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerConvenience},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Make Termination Mutual",
			action:    "Make termination for convenience mutual so both parties hold equal rights.",
			rationale: "Prevents a one-sided termination advantage.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerConvenience},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Extend Notice Period",
			rationale: "Short notice periods increase operational disruption risk.",
			when:      shortNotice,
			actionFor: func(r taxonomy.ClauseRiskRecord) string {
				return fmt.Sprintf("Extend the notice period from %d to 30-60 days.",
					r.ExtractedMetadata.Durations.NoticePeriodDays)
			},
		},
	},

	taxonomy.DataPrivacyRisk: {
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Data Processing Agreement",
			action:    "Execute a Data Processing Agreement (DPA) defining roles, responsibilities, and liability allocation.",
			rationale: "A DPA clarifies processor and controller obligations and limits liability exposure.",
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Implement Compliance Program",
			action:    "Establish a GDPR/CCPA compliance program with data mapping, consent management, and breach response.",
			rationale: "Regulatory fines for non-compliance can reach millions of dollars.",
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerPrivacyRegime},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Data Minimization",
			action:    "Collect only the minimum PII needed for performance; encrypt it at rest and in transit behind role-based access.",
			rationale: "Less data and stronger safeguards reduce breach liability and regulatory scrutiny.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerPersonalData},
		},
		{
			priority:  taxonomy.PriorityCritical,
			strategy:  "Incident Response Plan",
			action:    "Develop and test a data breach incident response plan with notification procedures.",
			rationale: "Rapid breach response limits liability and regulatory penalties.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerDataBreach},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Cyber Insurance",
			action:    "Obtain cyber liability insurance covering breach notification costs and regulatory fines.",
			rationale: "Transfers the financial risk of data breaches and regulatory actions.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerDataBreach},
		},
	},

	taxonomy.PaymentRisk: {
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Negotiate Reasonable Damages",
			action:    "Ensure liquidated damages are a reasonable estimate of actual harm, not penalties.",
			rationale: "Excessive penalties may be unenforceable and create budget risk.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerPenalty},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Payment Terms Negotiation",
			rationale: "Reduces cash flow impact and aligns payments with value delivery.",
			when:      materialExposure,
			actionFor: func(r taxonomy.ClauseRiskRecord) string {
				return fmt.Sprintf("Negotiate extended payment terms or milestone-based payments for %s.", coverage(r))
			},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Reduce Late Fees",
			action:    "Cap late payment interest at prime rate plus 2-3% to avoid excessive penalties.",
			rationale: "High interest rates compound the financial impact of payment delays.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerLateFee},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Grace Period",
			action:    "Negotiate a 10-15 day grace period before late fees apply.",
			rationale: "Provides a buffer for administrative delays without penalty.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerLateFee},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "Add Performance Standards",
			action:    "Define clear performance metrics and SLAs to avoid ambiguity in payment and damages triggers.",
			rationale: "Clarity reduces disputes and unexpected penalty assessments.",
		},
	},

	taxonomy.IPRisk: {
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Retain IP Ownership",
			action:    "Negotiate to retain ownership of pre-existing and background IP; grant a limited license instead of assignment.",
			rationale: "Prevents loss of core competitive assets and future business flexibility.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerIPAssignment, taxonomy.TriggerWorkForHire},
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerIPAssignment},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Limit License Term",
			action:    "Change the perpetual license to a term license tied to contract duration, with reversion on termination.",
			rationale: "Prevents permanent loss of control over IP monetization.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerPerpetual},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "IP Indemnification",
			action:    "Obtain IP indemnification and a non-infringement warranty from the counterparty for its technology.",
			rationale: "Transfers the risk of third-party IP claims to the IP provider.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerInfringement},
		},
		{
			priority:  taxonomy.PriorityHigh,
			strategy:  "Exclude Background IP",
			action:    "Clarify that only new work created specifically for this project is work made for hire.",
			rationale: "Prevents loss of existing IP assets and reusable components.",
			requires:  []taxonomy.TriggerID{taxonomy.TriggerWorkForHire, taxonomy.TriggerIPAssignment},
			promoteOn: []taxonomy.TriggerID{taxonomy.TriggerWorkForHire},
		},
		{
			priority:  taxonomy.PriorityMedium,
			strategy:  "IP Counsel Review",
			action:    "Have IP counsel confirm ownership, license scope, and field-of-use terms.",
			rationale: "IP terms are hard to unwind after signature.",
		},
	},
}

// fallback applies to High clauses whose table produced nothing.
func fallback(r taxonomy.ClauseRiskRecord) []taxonomy.Mitigation {
	return []taxonomy.Mitigation{
		{
			Priority:  taxonomy.PriorityHigh,
			Strategy:  "Legal and Business Review",
			Action:    "Escalate to legal counsel and senior management for review and approval.",
			Rationale: fmt.Sprintf("High-severity %s requires expert evaluation before contract execution.", r.CanonicalCategory),
		},
		{
			Priority:  taxonomy.PriorityMedium,
			Strategy:  "Document Assumptions",
			Action:    "Document business assumptions and risk acceptance in writing for future reference.",
			Rationale: "Creates an audit trail for risk decisions and supports future negotiations.",
		},
	}
}
