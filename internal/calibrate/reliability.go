package calibrate

import (
	"errors"
	"fmt"
)

// ErrMismatchedSamples is returned when confidence and outcome slices
// differ in length.
var ErrMismatchedSamples = errors.New("confidences and outcomes differ in length")

// Bin is one equal-width confidence interval of a reliability diagram.
// The last bin is closed on the right so a confidence of 1.0 counts.
type Bin struct {
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
	Count          int     `json:"count"`
	MeanConfidence float64 `json:"mean_confidence"`
	Accuracy       float64 `json:"accuracy"`
}

// Histogram sorts confidences into bins equal-width intervals over
// [0, 1]. correct may be nil, in which case Accuracy stays 0.
func Histogram(confidences []float64, correct []bool, bins int) ([]Bin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bins must be positive, got %d", bins)
	}
	if correct != nil && len(correct) != len(confidences) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrMismatchedSamples, len(confidences), len(correct))
	}

	out := make([]Bin, bins)
	hits := make([]int, bins)
	for i := range out {
		out[i].Lower = float64(i) / float64(bins)
		out[i].Upper = float64(i+1) / float64(bins)
	}
	for i, c := range confidences {
		c = Clamp(c)
		b := int(c * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		out[b].Count++
		out[b].MeanConfidence += c
		if correct != nil && correct[i] {
			hits[b]++
		}
	}
	for i := range out {
		if out[i].Count == 0 {
			continue
		}
		out[i].MeanConfidence /= float64(out[i].Count)
		out[i].Accuracy = float64(hits[i]) / float64(out[i].Count)
	}
	return out, nil
}

// ExpectedCalibrationError returns the sample-weighted mean gap between
// accuracy and mean confidence across bins. An empty sample has an
// error of 0.
func ExpectedCalibrationError(confidences []float64, correct []bool, bins int) (float64, error) {
	if len(correct) != len(confidences) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrMismatchedSamples, len(confidences), len(correct))
	}
	hist, err := Histogram(confidences, correct, bins)
	if err != nil {
		return 0, err
	}
	if len(confidences) == 0 {
		return 0, nil
	}

	n := float64(len(confidences))
	var ece float64
	for _, b := range hist {
		if b.Count == 0 {
			continue
		}
		gap := b.Accuracy - b.MeanConfidence
		if gap < 0 {
			gap = -gap
		}
		ece += float64(b.Count) / n * gap
	}
	return ece, nil
}
