// Package validate checks a coarse nighttime-lights urban mask against a
// reference mask derived from finer-resolution imagery, producing a
// confusion matrix and the standard accuracy scores.
package validate

import (
	"math"

	"github.com/geolumen/ntl-cli/internal/classify"
	"github.com/geolumen/ntl-cli/internal/grid"
	"github.com/geolumen/ntl-cli/internal/model"
)

// ConfusionMatrix tallies per-pixel agreement between a predicted mask and
// a reference mask over their shared top-left extent.
type ConfusionMatrix struct {
	TP, FP, FN, TN int
}

// Total returns the number of compared pixels.
func (cm ConfusionMatrix) Total() int { return cm.TP + cm.FP + cm.FN + cm.TN }

// Compare crops both masks to their common extent and counts agreement,
// with predicted lit as the positive class.
func Compare(predicted, reference *grid.Mask) ConfusionMatrix {
	rows, cols := grid.CommonExtent(predicted.Rows(), predicted.Cols(), reference.Rows(), reference.Cols())
	var cm ConfusionMatrix
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p, ref := predicted.At(r, c), reference.At(r, c)
			switch {
			case p && ref:
				cm.TP++
			case p && !ref:
				cm.FP++
			case !p && ref:
				cm.FN++
			default:
				cm.TN++
			}
		}
	}
	return cm
}

// Metrics derives overall, producer's and user's accuracy plus Cohen's
// kappa from the matrix. Undefined ratios fall back to zero.
func (cm ConfusionMatrix) Metrics() (overall, producers, users, kappa float64) {
	total := float64(cm.Total())
	if total == 0 {
		return 0, 0, 0, 0
	}
	overall = float64(cm.TP+cm.TN) / total
	if cm.TP+cm.FN > 0 {
		producers = float64(cm.TP) / float64(cm.TP+cm.FN)
	}
	if cm.TP+cm.FP > 0 {
		users = float64(cm.TP) / float64(cm.TP+cm.FP)
	}
	pe := (float64(cm.TP+cm.FP)*float64(cm.TP+cm.FN) +
		float64(cm.FN+cm.TN)*float64(cm.FP+cm.TN)) / (total * total)
	if pe != 1 {
		kappa = (overall - pe) / (1 - pe)
	}
	return overall, producers, users, kappa
}

// Params configures a cross-resolution validation run.
type Params struct {
	Year            int
	CoarseThreshold float64
	FineThreshold   float64
}

// Run validates a coarse intensity grid against a fine-resolution index
// grid. The fine grid is block-averaged down to the coarse resolution,
// both are cropped to the common extent, then each is thresholded and
// compared. NaN cells in the aligned fine grid classify as non-urban.
func Run(coarse, fine *grid.Grid, p Params) *model.ValidationResult {
	aligned := grid.Align(fine, coarse.CellSize())

	rows, cols := grid.CommonExtent(coarse.Rows(), coarse.Cols(), aligned.Rows(), aligned.Cols())
	coarse = coarse.Crop(rows, cols)
	aligned = aligned.Crop(rows, cols)

	predicted := classify.Classify(coarse, p.CoarseThreshold)
	reference := referenceMask(aligned, p.FineThreshold)

	cm := Compare(predicted, reference)
	overall, producers, users, kappa := cm.Metrics()
	return &model.ValidationResult{
		Year:              p.Year,
		CoarseThreshold:   p.CoarseThreshold,
		FineThreshold:     p.FineThreshold,
		TruePositive:      cm.TP,
		FalsePositive:     cm.FP,
		FalseNegative:     cm.FN,
		TrueNegative:      cm.TN,
		TotalPixels:       cm.Total(),
		OverallAccuracy:   overall,
		ProducersAccuracy: producers,
		UsersAccuracy:     users,
		Kappa:             kappa,
	}
}

func referenceMask(g *grid.Grid, threshold float64) *grid.Mask {
	m := grid.NewMask(g.Rows(), g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			v := g.At(r, c)
			m.Set(r, c, !math.IsNaN(v) && v >= threshold)
		}
	}
	return m
}
