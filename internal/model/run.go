package model

import "time"

// RunStatus represents the current state of an analysis run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunKind distinguishes the two pipelines that persist history.
type RunKind string

const (
	RunKindAnalyze  RunKind = "analyze"
	RunKindValidate RunKind = "validate"
)

// RunParams records the configuration a run was started with.
type RunParams struct {
	Threshold             float64   `json:"threshold"`
	SensitivityThresholds []float64 `json:"sensitivity_thresholds,omitempty"`
	RingWidthsM           []float64 `json:"ring_widths_m,omitempty"`
	Sectors               int       `json:"sectors,omitempty"`
	PixelSizeM            float64   `json:"pixel_size_m"`
	FinePixelSizeM        float64   `json:"fine_pixel_size_m,omitempty"`
	FineThreshold         float64   `json:"fine_threshold,omitempty"`
	InputDir              string    `json:"input_dir,omitempty"`
	BoundaryPath          string    `json:"boundary_path,omitempty"`
}

// Run represents a single persisted analysis or validation run.
type Run struct {
	ID        string          `json:"id"`
	Kind      RunKind         `json:"kind"`
	Status    RunStatus       `json:"status"`
	Params    RunParams       `json:"params"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
