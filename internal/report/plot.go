package report

import (
	"fmt"
	"image/color"

	"github.com/cwbudde/tspga/internal/store"
	"github.com/cwbudde/tspga/internal/tour"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const plotSize = 6 * vg.Inch

var (
	bestColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	meanColor = color.RGBA{R: 30, G: 90, B: 200, A: 255}
)

// PlotTour draws the closed tour over the instance points and saves it to
// path. The image format follows the file extension.
func PlotTour(inst *tour.Instance, tourPath []int, distance float64, path string) error {
	n := len(tourPath)
	if n == 0 {
		return fmt.Errorf("empty tour")
	}

	xys := make(plotter.XYs, n+1)
	labels := make([]string, n+1)
	for i, idx := range tourPath {
		pt := inst.Point(idx)
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels[i] = inst.Label(idx)
	}
	// close the loop; the start label is already drawn
	xys[n] = xys[0]

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Best tour (%.2f)", distance)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("failed to build tour line: %w", err)
	}
	line.Color = bestColor
	points.Color = bestColor
	p.Add(line, points)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys[:n], Labels: labels[:n]})
	if err != nil {
		return fmt.Errorf("failed to build point labels: %w", err)
	}
	p.Add(names)

	if err := p.Save(plotSize, plotSize, path); err != nil {
		return fmt.Errorf("failed to save tour plot: %w", err)
	}
	return nil
}

// PlotConvergence draws best-ever and population mean distance per
// generation for one restart and saves it to path.
func PlotConvergence(entries []store.TraceEntry, restart int, path string) error {
	var best, mean plotter.XYs
	for _, e := range entries {
		if e.Restart != restart {
			continue
		}
		x := float64(e.Generation)
		best = append(best, plotter.XY{X: x, Y: e.Best})
		mean = append(mean, plotter.XY{X: x, Y: e.Mean})
	}
	if len(best) == 0 {
		return fmt.Errorf("no trace entries for restart %d", restart)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Convergence (restart %d)", restart)
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "distance"
	p.Add(plotter.NewGrid())

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return fmt.Errorf("failed to build best line: %w", err)
	}
	bestLine.Color = bestColor

	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return fmt.Errorf("failed to build mean line: %w", err)
	}
	meanLine.Color = meanColor
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(meanLine, bestLine)
	p.Legend.Add("best-ever", bestLine)
	p.Legend.Add("population mean", meanLine)
	p.Legend.Top = true

	if err := p.Save(2*plotSize, plotSize, path); err != nil {
		return fmt.Errorf("failed to save convergence plot: %w", err)
	}
	return nil
}
