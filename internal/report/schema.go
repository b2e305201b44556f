package report

// Schema is the JSON Schema (Draft 2020-12) for the clauserisk
// assessment JSON output. It documents the structure returned by
// WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/clauserisk/assessment.schema.json",
  "title": "Contract Risk Assessment",
  "description": "Output schema for clauserisk score --format=json",
  "type": "object",
  "required": ["version", "assessment_id", "generated_at", "clauses", "summary"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Envelope version (semver)"
    },
    "assessment_id": {
      "type": "string",
      "description": "Random UUID identifying this assessment run",
      "pattern": "^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$"
    },
    "generated_at": {
      "type": "string",
      "description": "RFC 3339 timestamp of report generation"
    },
    "clauses": {
      "type": "array",
      "items": { "$ref": "#/$defs/ClauseRiskRecord" }
    },
    "summary": { "$ref": "#/$defs/ContractRiskSummary" }
  },
  "$defs": {
    "Category": {
      "enum": [
        "Liability Risk", "Termination Risk", "IP Risk",
        "Data Privacy Risk", "Payment Risk", "Neutral"
      ]
    },
    "Bucket": {
      "enum": ["High", "Medium", "Low", "None"]
    },
    "ExposureLevel": {
      "enum": ["low", "medium", "high", "critical"]
    },
    "Priority": {
      "enum": ["Critical", "High", "Medium", "Low"]
    },
    "Confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "Amount": {
      "description": "Dollar figure, the unbounded sentinel, or null when none was detected",
      "anyOf": [
        { "type": "number", "minimum": 0 },
        { "const": "unbounded" },
        { "type": "null" }
      ]
    },
    "ClauseRiskRecord": {
      "type": "object",
      "required": [
        "index", "clause_text", "raw_label", "canonical_category",
        "category_source", "raw_confidence", "calibrated_confidence",
        "base_impact", "adjusted_impact", "severity_score",
        "severity_bucket", "extracted_metadata", "high_risk_detection",
        "financial_exposure", "calibration_details", "mitigation_strategies"
      ],
      "properties": {
        "index": { "type": "integer", "minimum": 0 },
        "clause_text": { "type": "string" },
        "raw_label": { "type": "string" },
        "canonical_category": { "$ref": "#/$defs/Category" },
        "category_source": {
          "enum": ["model", "text:ip", "text:privacy"]
        },
        "raw_confidence": { "$ref": "#/$defs/Confidence" },
        "calibrated_confidence": { "$ref": "#/$defs/Confidence" },
        "base_impact": { "type": "number", "minimum": 0 },
        "adjusted_impact": { "type": "number", "minimum": 0 },
        "severity_score": { "type": "number", "minimum": 0 },
        "severity_bucket": { "$ref": "#/$defs/Bucket" },
        "extracted_metadata": { "$ref": "#/$defs/ExtractedMetadata" },
        "high_risk_detection": { "$ref": "#/$defs/HighRiskDetection" },
        "financial_exposure": { "$ref": "#/$defs/FinancialExposure" },
        "calibration_details": { "$ref": "#/$defs/CalibrationResult" },
        "mitigation_strategies": {
          "type": "array",
          "items": { "$ref": "#/$defs/Mitigation" }
        }
      }
    },
    "ExtractedMetadata": {
      "type": "object",
      "required": ["monetary_value", "uncapped_language", "durations"],
      "properties": {
        "monetary_value": { "$ref": "#/$defs/Amount" },
        "uncapped_language": { "type": "boolean" },
        "durations": {
          "type": "object",
          "required": ["days", "months", "years", "notice_period_days"],
          "properties": {
            "days": { "type": "integer", "minimum": 0 },
            "months": { "type": "integer", "minimum": 0 },
            "years": { "type": "integer", "minimum": 0 },
            "notice_period_days": { "type": "integer", "minimum": 0 }
          }
        }
      }
    },
    "HighRiskDetection": {
      "type": "object",
      "required": ["is_high_risk", "triggers", "trigger_ids", "severity_override"],
      "properties": {
        "is_high_risk": { "type": "boolean" },
        "triggers": {
          "type": "array",
          "items": { "type": "string" }
        },
        "trigger_ids": {
          "type": "array",
          "items": { "type": "string", "pattern": "^[a-z]+\\.[a-z_]+$" }
        },
        "severity_override": {
          "description": "Forced bucket for critical-tier triggers",
          "enum": ["High", null]
        }
      }
    },
    "FinancialExposure": {
      "type": "object",
      "required": ["level", "multiplier", "monetary_value"],
      "properties": {
        "level": { "$ref": "#/$defs/ExposureLevel" },
        "multiplier": { "type": "number", "minimum": 0 },
        "monetary_value": { "$ref": "#/$defs/Amount" }
      }
    },
    "CalibrationResult": {
      "type": "object",
      "required": [
        "original_confidence", "calibrated_confidence",
        "adjustments", "keyword_matches"
      ],
      "properties": {
        "original_confidence": { "$ref": "#/$defs/Confidence" },
        "calibrated_confidence": { "$ref": "#/$defs/Confidence" },
        "adjustments": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["factor", "delta"],
            "properties": {
              "factor": { "type": "string" },
              "delta": { "type": "number" }
            }
          }
        },
        "keyword_matches": { "type": "integer", "minimum": 0 }
      }
    },
    "Mitigation": {
      "type": "object",
      "required": ["priority", "strategy", "action", "rationale"],
      "properties": {
        "priority": { "$ref": "#/$defs/Priority" },
        "strategy": { "type": "string" },
        "action": { "type": "string" },
        "rationale": { "type": "string" }
      }
    },
    "ContractRiskSummary": {
      "type": "object",
      "required": [
        "scoring_method", "total_severity_score", "max_possible_score",
        "normalized_score", "total_clauses", "high_risk_count",
        "calibrated_clauses", "severity_counts", "category_counts",
        "category_weights", "exposure_multipliers", "mitigation_summary"
      ],
      "properties": {
        "scoring_method": { "type": "string" },
        "total_severity_score": { "type": "number", "minimum": 0 },
        "max_possible_score": { "type": "number", "minimum": 0 },
        "normalized_score": { "type": "number", "minimum": 0, "maximum": 100 },
        "total_clauses": { "type": "integer", "minimum": 0 },
        "high_risk_count": { "type": "integer", "minimum": 0 },
        "calibrated_clauses": { "type": "integer", "minimum": 0 },
        "severity_counts": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/Bucket" },
          "additionalProperties": { "type": "integer", "minimum": 0 }
        },
        "category_counts": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/Category" },
          "additionalProperties": { "type": "integer", "minimum": 0 }
        },
        "category_weights": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/Category" },
          "additionalProperties": { "type": "number", "minimum": 0 }
        },
        "exposure_multipliers": {
          "type": "object",
          "propertyNames": { "$ref": "#/$defs/ExposureLevel" },
          "additionalProperties": { "type": "number", "minimum": 0 }
        },
        "mitigation_summary": { "$ref": "#/$defs/MitigationSummary" }
      }
    },
    "MitigationSummary": {
      "type": "object",
      "required": [
        "critical_actions", "high_priority_actions", "recommended_reviews",
        "total_mitigation_items", "estimated_effort", "effort_note"
      ],
      "properties": {
        "critical_actions": {
          "type": "array",
          "items": { "$ref": "#/$defs/Mitigation" }
        },
        "high_priority_actions": {
          "type": "array",
          "items": { "$ref": "#/$defs/Mitigation" }
        },
        "recommended_reviews": {
          "type": "array",
          "items": { "type": "string" }
        },
        "total_mitigation_items": { "type": "integer", "minimum": 0 },
        "estimated_effort": {
          "enum": ["Low", "Medium", "High", "Very High"]
        },
        "effort_note": { "type": "string" }
      }
    }
  }
}`
