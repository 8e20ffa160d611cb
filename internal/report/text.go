package report

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/geolumen/ntl-cli/internal/model"
)

// WriteSummary renders a human-readable run summary.
func WriteSummary(w io.Writer, res *model.AnalysisResult) error {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "NIGHTTIME LIGHTS URBAN EXPANSION SUMMARY\n")
	p.Fprintf(w, "========================================\n\n")

	p.Fprintf(w, "Years analyzed: %d", len(res.Years))
	if len(res.Years) > 0 {
		p.Fprintf(w, " (%d-%d)", res.Years[0], res.Years[len(res.Years)-1])
	}
	p.Fprintf(w, "\n\n")

	p.Fprintf(w, "%-6s  %14s  %12s  %10s  %10s\n",
		"Year", "Lit Area (km2)", "Lit Pixels", "Compact.", "Growth %")
	for _, m := range res.Metrics {
		p.Fprintf(w, "%-6d  %14.2f  %12d  %10.3f", m.Year, m.LitAreaKm2, m.PixelCount, m.Compactness)
		if m.AnnualGrowthPct != nil {
			p.Fprintf(w, "  %+10.2f", *m.AnnualGrowthPct)
		}
		p.Fprintf(w, "\n")
	}

	if len(res.Displacements) > 0 {
		p.Fprintf(w, "\nCentroid movement:\n")
		for _, d := range res.Displacements {
			p.Fprintf(w, "  %d -> %d: %.0f m toward %s (%.1f deg)\n",
				d.YearFrom, d.YearTo, d.DisplacementM, d.Direction, d.BearingDegrees)
		}
	}

	if v := res.Validation; v != nil {
		p.Fprintf(w, "\nValidation (%d pixels):\n", v.TotalPixels)
		p.Fprintf(w, "  Overall accuracy:    %.3f\n", v.OverallAccuracy)
		p.Fprintf(w, "  Producer's accuracy: %.3f\n", v.ProducersAccuracy)
		p.Fprintf(w, "  User's accuracy:     %.3f\n", v.UsersAccuracy)
		p.Fprintf(w, "  Cohen's kappa:       %.3f\n", v.Kappa)
	}
	return nil
}

// WriteSummaryFile writes the summary to a file.
func WriteSummaryFile(path string, res *model.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()
	return WriteSummary(f, res)
}
