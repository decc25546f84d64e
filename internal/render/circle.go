// Package render draws shape diagrams as PNG images.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Natnat0905/GeoChat/internal/geometry"
)

const (
	defaultSize = 600
	// canvas bounds are ±(1+margin)·r
	margin      = 0.3
	circleSteps = 240
	labelAngle  = -math.Pi / 4
)

var (
	circleColor   = drawing.ColorFromHex("1f77b4")
	radiusColor   = drawing.ColorFromHex("2ca02c")
	gridColor     = drawing.ColorFromHex("d0d0d0")
	captionFill   = drawing.ColorFromHex("f0f8ff")
	captionStroke = drawing.ColorFromHex("4682b4")
	axisColor     = drawing.ColorFromHex("000000")
)

// Diagram is a rendered image plus the text drawn on it.
type Diagram struct {
	PNG          []byte
	DataURI      string
	Caption      string
	Measurements map[string]float64
}

// Renderer draws circle diagrams. It is safe for concurrent use.
type Renderer struct {
	size int
	bufs sync.Pool
}

type Option func(*Renderer)

// WithSize sets the edge length of the square canvas in pixels.
func WithSize(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.size = px
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{size: defaultSize}
	r.bufs.New = func() any { return new(bytes.Buffer) }
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Circle draws a circle of the given radius (centimeters) centered on the
// origin, with grid, axes, a radius label and an area caption.
func (r *Renderer) Circle(radius float64) (*Diagram, error) {
	if err := geometry.CheckRadius(radius); err != nil {
		return nil, err
	}

	caption := Caption(radius)
	ch := r.circleChart(radius, caption)

	buf := r.bufs.Get().(*bytes.Buffer)
	buf.Reset()
	defer r.bufs.Put(buf)

	if err := squarePlot(&ch); err != nil {
		return nil, fmt.Errorf("render: circle r=%s: measure: %w", formatNumber(radius), err)
	}
	if err := ch.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render: circle r=%s: %w", formatNumber(radius), err)
	}
	img := make([]byte, buf.Len())
	copy(img, buf.Bytes())

	return &Diagram{
		PNG:          img,
		DataURI:      DataURI(img),
		Caption:      caption,
		Measurements: geometry.Measurements(radius),
	}, nil
}

func (r *Renderer) circleChart(radius float64, caption string) chart.Chart {
	lim := radius * (1 + margin)
	ticks := axisTicks(lim)
	grid := make([]chart.GridLine, 0, len(ticks))
	for _, t := range ticks {
		grid = append(grid, chart.GridLine{Value: t.Value})
	}
	gridStyle := chart.Style{StrokeColor: gridColor, StrokeWidth: 1, StrokeDashArray: []float64{4, 3}}

	xs, ys := circlePoints(radius, circleSteps)
	ex, ey := radius*math.Cos(labelAngle), radius*math.Sin(labelAngle)
	label := fmt.Sprintf("r = %s cm", formatNumber(radius))

	return chart.Chart{
		Title:      fmt.Sprintf("Circle Visualization (Radius: %s cm)", formatNumber(radius)),
		Width:      r.size,
		Height:     r.size,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Centimeters (cm)",
			Range:          &chart.ContinuousRange{Min: -lim, Max: lim},
			Ticks:          ticks,
			GridLines:      grid,
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           "Centimeters (cm)",
			Range:          &chart.ContinuousRange{Min: -lim, Max: lim},
			Ticks:          ticks,
			GridLines:      grid,
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			axisLine("x-axis", []float64{-lim, lim}, []float64{0, 0}),
			axisLine("y-axis", []float64{0, 0}, []float64{-lim, lim}),
			chart.ContinuousSeries{
				Name:    "circle",
				Style:   chart.Style{StrokeColor: circleColor, StrokeWidth: 2.5},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    "radius",
				Style:   chart.Style{StrokeColor: radiusColor, StrokeWidth: 2, DotColor: radiusColor, DotWidth: 3},
				XValues: []float64{0, ex},
				YValues: []float64{0, ey},
			},
			chart.AnnotationSeries{
				Name:  "radius-label",
				Style: chart.Style{FontColor: radiusColor, StrokeColor: radiusColor},
				Annotations: []chart.Value2{
					{XValue: ex * 0.55, YValue: ey * 0.55, Label: label},
				},
			},
		},
		Elements: []chart.Renderable{captionBox(strings.Split(caption, "\n"))},
	}
}

// squarePlot widens the background padding so the plot area, which is what
// remains after title, ticks and axis names, has equal width and height.
// Both axes share one range, so a square plot keeps the circle round.
func squarePlot(ch *chart.Chart) error {
	var plot chart.Box
	measure := *ch
	measure.Elements = []chart.Renderable{
		func(_ chart.Renderer, canvasBox chart.Box, _ chart.Style) { plot = canvasBox },
	}
	if err := measure.Render(chart.PNG, io.Discard); err != nil {
		return err
	}

	pad := ch.Background.Padding
	switch d := plot.Width() - plot.Height(); {
	case d > 0:
		pad.Left += d / 2
		pad.Right += d - d/2
	case d < 0:
		d = -d
		pad.Top += d / 2
		pad.Bottom += d - d/2
	}
	ch.Background.Padding = pad
	return nil
}

func axisLine(name string, xs, ys []float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		Style:   chart.Style{StrokeColor: axisColor, StrokeWidth: 0.8},
		XValues: xs,
		YValues: ys,
	}
}

// circlePoints samples a closed outline; the last point repeats the first.
func circlePoints(radius float64, steps int) ([]float64, []float64) {
	xs := make([]float64, steps+1)
	ys := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		xs[i] = radius * math.Cos(a)
		ys[i] = radius * math.Sin(a)
	}
	return xs, ys
}

// axisTicks returns symmetric ticks on a 1-2-5 step covering [-lim, lim].
func axisTicks(lim float64) []chart.Tick {
	step := niceStep(lim / 3)
	n := int(math.Floor(lim/step + 1e-9))
	ticks := make([]chart.Tick, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		v := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: formatNumber(roundTo(v, step))})
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	f := raw / exp
	switch {
	case f < 1.5:
		return exp
	case f < 3.5:
		return 2 * exp
	case f < 7.5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

// roundTo strips float noise such as 0.30000000000000004 from tick labels.
func roundTo(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step)))
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}

// Caption is the area text drawn in the diagram's caption box.
func Caption(radius float64) string {
	return fmt.Sprintf("Area = π × %s²\n= %.2f cm²", formatNumber(radius), geometry.Area(radius))
}

// DataURI wraps PNG bytes for direct embedding in HTML or JSON.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
