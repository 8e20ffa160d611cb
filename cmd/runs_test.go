package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geolumen/ntl-cli/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Kind:      model.RunKindAnalyze,
			Status:    model.RunStatusComplete,
			Result:    &model.AnalysisResult{Years: []int{2018, 2019, 2020}},
			CreatedAt: now,
			UpdatedAt: now.Add(90 * time.Second),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Kind:      model.RunKindValidate,
			Status:    model.RunStatusFailed,
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "abc12345")
	assert.Contains(t, out, "analyze")
	assert.Contains(t, out, "2018-2020")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "failed")
	assert.NotContains(t, out, "abc12345-6789")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestFormatSensitivity(t *testing.T) {
	rows := []model.SensitivityRow{
		{Year: 2020, Threshold: 3, LitAreaKm2: 1.929, Compactness: 1, PixelCount: 9},
		{Year: 2020, Threshold: 5, LitAreaKm2: 0, Compactness: 0, PixelCount: 0},
	}

	var buf bytes.Buffer
	formatSensitivity(&buf, rows)

	out := buf.String()
	assert.Contains(t, out, "THRESHOLD")
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "1.93")
	assert.Contains(t, out, "9")
}
