package scoring

import (
	"github.com/unbound-force/clauserisk/internal/config"
	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Exposure bands an amount against a category's financial threshold:
//
//	critical  amount > CriticalAbove, or unbounded
//	high      threshold < amount <= CriticalAbove
//	medium    MediumAbove < amount <= threshold
//	low       anything else, including no amount
//
// The medium floor is fixed and does not depend on the category.
func Exposure(amount *taxonomy.Amount, threshold float64, bands config.ExposureConfig) taxonomy.FinancialExposure {
	fe := taxonomy.FinancialExposure{MonetaryValue: amount}
	switch {
	case amount.Exceeds(bands.CriticalAbove):
		fe.Level, fe.Multiplier = taxonomy.ExposureCritical, bands.CriticalMultiplier
	case amount.Exceeds(threshold):
		fe.Level, fe.Multiplier = taxonomy.ExposureHigh, bands.HighMultiplier
	case amount.Exceeds(bands.MediumAbove):
		fe.Level, fe.Multiplier = taxonomy.ExposureMedium, bands.MediumMultiplier
	default:
		fe.Level, fe.Multiplier = taxonomy.ExposureLow, bands.LowMultiplier
	}
	return fe
}

// Bucket maps a severity score onto a bucket using the configured
// cutoffs: High at or above cut.High, Medium at or above cut.Medium,
// Low above zero, None otherwise.
func Bucket(score float64, cut config.SeverityConfig) taxonomy.Bucket {
	switch {
	case score >= cut.High:
		return taxonomy.BucketHigh
	case score >= cut.Medium:
		return taxonomy.BucketMedium
	case score > 0:
		return taxonomy.BucketLow
	default:
		return taxonomy.BucketNone
	}
}
