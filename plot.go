package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// half the width of one level in x units
const levelWidth = 0.3

// PlotLevels draws an orbital energy level diagram with one column of
// levels per entry in names and saves it to filename. The image format
// is taken from the extension of filename
func PlotLevels(filename string, names []string, levels ...[]Energy) error {
	if len(names) != len(levels) {
		return fmt.Errorf("%d column names for %d sets of levels",
			len(names), len(levels))
	}
	p := plot.New()
	p.Title.Text = "Orbital energies"
	p.Y.Label.Text = "E (eV)"
	p.Add(plotter.NewGrid())
	for i, energies := range levels {
		x := float64(i)
		for _, e := range energies {
			l, err := plotter.NewLine(plotter.XYs{
				{X: x - levelWidth, Y: e.Value},
				{X: x + levelWidth, Y: e.Value},
			})
			if err != nil {
				return err
			}
			l.LineStyle.Width = vg.Points(1)
			l.LineStyle.Color = plotutil.Color(i)
			p.Add(l)
		}
	}
	p.NominalX(names...)
	p.X.Min = -0.5
	p.X.Max = float64(len(levels)) - 0.5
	return p.Save(4*vg.Inch, 6*vg.Inch, filename)
}
