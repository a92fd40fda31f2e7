package analysis

import (
	"fmt"
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ReturnsPlotter renders per-episode returns of each dataset as a
// line plot
func ReturnsPlotter(plotPath string) Comparator {
	if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
		fmt.Printf("Failed to create plot directory %s: %v\n", plotPath, err)
	}
	return func(names []string, datasets []DataSet) {
		p := plot.New()
		p.Title.Text = "Episode returns"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns, ok := datasets[i].([]float64)
			if !ok {
				continue
			}
			points := make(plotter.XYs, len(returns))
			for j, v := range returns {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		if err := p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "returns.png")); err != nil {
			fmt.Printf("Failed to save returns plot: %v\n", err)
		}
	}
}

// CoveragePlotter renders the number of unique states covered over
// episodes
func CoveragePlotter(plotPath string) Comparator {
	if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
		fmt.Printf("Failed to create plot directory %s: %v\n", plotPath, err)
	}
	return func(names []string, datasets []DataSet) {
		p := plot.New()
		p.Title.Text = "State coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(names); i++ {
			counts, ok := datasets[i].([]int)
			if !ok {
				continue
			}
			points := make(plotter.XYs, len(counts))
			for j, v := range counts {
				points[j] = plotter.XY{X: float64(j), Y: float64(v)}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(counts) > 0 {
				fmt.Printf("Number of unique states: %d for run: %s\n", counts[len(counts)-1], names[i])
			}
		}
		if err := p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "coverage.png")); err != nil {
			fmt.Printf("Failed to save coverage plot: %v\n", err)
		}
	}
}
