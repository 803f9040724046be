package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

// PlotFront creates a scatter plot of the Pareto front found by the
// algorithm and writes it as an HTML file to path. When the evaluator knows
// its true Pareto front, the reference points are drawn alongside for
// comparison.
func PlotFront(results []framework.ObjectiveSpacePoint, eval framework.Evaluator, algorithmName, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %s", eval.Name())
	}

	if len(results[0]) != 2 {
		return fmt.Errorf("can only plot 2D fronts for %s", eval.Name())
	}

	objectives := eval.Objectives()

	// Create scatter chart
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s", algorithmName, eval.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: objectives[0],
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: objectives[1],
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if ref, ok := eval.(framework.ReferenceFronter); ok {
		trueParetoFront := ref.TrueParetoFront(100)
		trueX := make([]opts.ScatterData, len(trueParetoFront))
		for i, p := range trueParetoFront {
			trueX[i] = opts.ScatterData{
				Value:      p,
				Symbol:     "circle",
				SymbolSize: 10,
			}
		}
		scatter.AddSeries("True Pareto Front", trueX)
	}

	foundX := make([]opts.ScatterData, len(results))
	for i, res := range results {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	// Add data series
	scatter.AddSeries(fmt.Sprintf("%s Solutions", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	// Create HTML file
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
