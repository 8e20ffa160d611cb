// Package model defines the record types produced by the analysis pipeline.
package model

// YearMetrics holds the per-year expansion metrics derived from a composite
// grid and its urban mask.
type YearMetrics struct {
	Year            int      `json:"year" csv:"year"`
	LitAreaKm2      float64  `json:"lit_area_km2" csv:"lit_area_km2"`
	Compactness     float64  `json:"compactness" csv:"compactness"`
	CentroidRow     *float64 `json:"centroid_row,omitempty" csv:"centroid_row,omitempty"`
	CentroidCol     *float64 `json:"centroid_col,omitempty" csv:"centroid_col,omitempty"`
	PixelCount      int      `json:"pixel_count" csv:"pixel_count"`
	AnnualGrowthPct *float64 `json:"annual_growth_pct,omitempty" csv:"annual_growth_pct,omitempty"`
}

// DNStats summarizes the distribution of positive radiance values for a year.
type DNStats struct {
	Year     int     `json:"year" csv:"year"`
	MinDN    float64 `json:"min_dn" csv:"min_dn"`
	MaxDN    float64 `json:"max_dn" csv:"max_dn"`
	MeanDN   float64 `json:"mean_dn" csv:"mean_dn"`
	MedianDN float64 `json:"median_dn" csv:"median_dn"`
}

// RingStat is one concentric-ring partition of a year's lit area.
type RingStat struct {
	Year           int     `json:"year" csv:"year"`
	Ring           string  `json:"ring" csv:"ring"`
	InnerM         float64 `json:"inner_m" csv:"inner_m"`
	OuterM         float64 `json:"outer_m" csv:"outer_m"`
	AreaKm2        float64 `json:"area_km2" csv:"area_km2"`
	PercentOfTotal float64 `json:"percent_of_total" csv:"percent_of_total"`
}

// SectorStat is one angular-sector partition of a year's lit area.
type SectorStat struct {
	Year           int     `json:"year" csv:"year"`
	Sector         int     `json:"sector" csv:"sector"`
	Direction      string  `json:"direction" csv:"direction"`
	AngleMin       float64 `json:"angle_min" csv:"angle_min"`
	AngleMax       float64 `json:"angle_max" csv:"angle_max"`
	AreaKm2        float64 `json:"area_km2" csv:"area_km2"`
	PercentOfTotal float64 `json:"percent_of_total" csv:"percent_of_total"`
}

// Displacement is the year-over-year movement of the lit-area centroid.
type Displacement struct {
	YearFrom       int     `json:"year_from" csv:"year_from"`
	YearTo         int     `json:"year_to" csv:"year_to"`
	DisplacementM  float64 `json:"displacement_m" csv:"displacement_m"`
	BearingDegrees float64 `json:"bearing_degrees" csv:"bearing_degrees"`
	Direction      string  `json:"direction" csv:"direction"`
}

// SensitivityRow holds mask metrics for one alternative threshold.
type SensitivityRow struct {
	Year        int     `json:"year" csv:"year"`
	Threshold   float64 `json:"threshold" csv:"threshold"`
	LitAreaKm2  float64 `json:"lit_area_km2" csv:"lit_area_km2"`
	Compactness float64 `json:"compactness" csv:"compactness"`
	PixelCount  int     `json:"pixel_count" csv:"pixel_count"`
}

// ValidationResult holds the cross-resolution agreement assessment of a
// coarse urban mask against a fine-resolution built-up index.
type ValidationResult struct {
	Year              int     `json:"year" csv:"year"`
	CoarseThreshold   float64 `json:"coarse_threshold" csv:"coarse_threshold"`
	FineThreshold     float64 `json:"fine_threshold" csv:"fine_threshold"`
	TruePositive      int     `json:"tp" csv:"tp"`
	FalsePositive     int     `json:"fp" csv:"fp"`
	FalseNegative     int     `json:"fn" csv:"fn"`
	TrueNegative      int     `json:"tn" csv:"tn"`
	TotalPixels       int     `json:"total_pixels" csv:"total_pixels"`
	OverallAccuracy   float64 `json:"overall_accuracy" csv:"overall_accuracy"`
	ProducersAccuracy float64 `json:"producers_accuracy" csv:"producers_accuracy"`
	UsersAccuracy     float64 `json:"users_accuracy" csv:"users_accuracy"`
	Kappa             float64 `json:"kappa" csv:"kappa"`
}

// AnalysisResult aggregates every table produced by a full analysis run.
type AnalysisResult struct {
	Years         []int             `json:"years"`
	Metrics       []YearMetrics     `json:"metrics"`
	DNStats       []DNStats         `json:"dn_stats"`
	Rings         []RingStat        `json:"rings"`
	Sectors       []SectorStat      `json:"sectors"`
	Displacements []Displacement    `json:"displacements"`
	Sensitivity   []SensitivityRow  `json:"sensitivity"`
	Validation    *ValidationResult `json:"validation,omitempty"`
}
