// Package chart renders a stream's encoded scalars as a scatter plot over
// time, one PNG per cookie file.
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/driftlab/cookietrail/store"
)

// Render draws rows as a time/value scatter plot and writes it next to the
// annotated CSV, returning the image path. The cookie name for the title is
// taken from the CSV file name.
func Render(csvPath string, rows []store.Row) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no rows to plot for %s", csvPath)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Values Over Time", cookieName(csvPath))
	p.X.Label.Text = "time"
	p.Y.Label.Text = "value"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}

	xys := make(plotter.XYs, len(rows))
	for i, row := range rows {
		xys[i].X = float64(row.Time.Unix())
		xys[i].Y = row.Scalar
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return "", fmt.Errorf("failed to build scatter plot: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 0xFF, A: 0xFF}
	p.Add(scatter)

	imagePath := strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".png"
	if err := p.Save(8*vg.Inch, 4*vg.Inch, imagePath); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	return imagePath, nil
}

func cookieName(csvPath string) string {
	base := filepath.Base(csvPath)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
