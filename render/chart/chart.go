// Package chart draws simple business charts (bar, line) as SVG and
// rasterises them to PNG for embedding into PDF reports.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Series is one named sequence of values.
type Series struct {
	Label  string
	Values []float64
	Color  string
}

// Options control chart geometry and styling.
type Options struct {
	Width      int
	Height     int
	Title      string
	Labels     []string // x axis labels
	Background string
	Axis       string
	TitleColor string
}

// DefaultOptions returns the report styling used by the data-report template.
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     360,
		Background: "#ffffff",
		Axis:       "#94a3b8",
		TitleColor: "#1e3a5f",
	}
}

const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 48
	marginBottom = 40
)

func maxValue(series []Series) float64 {
	max := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

func frame(canvas *svg.SVG, opts Options) (plotW, plotH int) {
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+opts.Background)
	if opts.Title != "" {
		canvas.Text(opts.Width/2, 28, opts.Title,
			fmt.Sprintf("text-anchor:middle;font-size:18px;font-weight:bold;font-family:sans-serif;fill:%s", opts.TitleColor))
	}
	plotW = opts.Width - marginLeft - marginRight
	plotH = opts.Height - marginTop - marginBottom
	// axes
	canvas.Line(marginLeft, marginTop, marginLeft, marginTop+plotH, "stroke:"+opts.Axis+";stroke-width:1")
	canvas.Line(marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH, "stroke:"+opts.Axis+";stroke-width:1")
	return plotW, plotH
}

func xLabels(canvas *svg.SVG, opts Options, plotW, plotH, n int) {
	for i, label := range opts.Labels {
		if i >= n {
			break
		}
		x := marginLeft + (i*plotW)/n + plotW/(2*n)
		canvas.Text(x, marginTop+plotH+24, label,
			"text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#475569")
	}
}

// BarSVG renders grouped vertical bars.
func BarSVG(series []Series, opts Options) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	plotW, plotH := frame(canvas, opts)

	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	if n == 0 {
		canvas.End()
		return buf.Bytes()
	}

	max := maxValue(series)
	groupW := plotW / n
	barW := groupW / (len(series) + 1)

	for si, s := range series {
		for i, v := range s.Values {
			h := int(float64(plotH) * v / max)
			x := marginLeft + i*groupW + barW/2 + si*barW
			y := marginTop + plotH - h
			canvas.Rect(x, y, barW, h, "fill:"+s.Color)
		}
	}
	xLabels(canvas, opts, plotW, plotH, n)
	canvas.End()
	return buf.Bytes()
}

// LineSVG renders one polyline per series with data point markers.
func LineSVG(series []Series, opts Options) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	plotW, plotH := frame(canvas, opts)

	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	if n == 0 {
		canvas.End()
		return buf.Bytes()
	}

	max := maxValue(series)
	for _, s := range series {
		xs := make([]int, 0, len(s.Values))
		ys := make([]int, 0, len(s.Values))
		for i, v := range s.Values {
			x := marginLeft + (i*plotW)/n + plotW/(2*n)
			y := marginTop + plotH - int(float64(plotH)*v/max)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2.5", s.Color))
		for i := range xs {
			canvas.Circle(xs[i], ys[i], 4, "fill:"+s.Color)
		}
	}
	xLabels(canvas, opts, plotW, plotH, n)
	canvas.End()
	return buf.Bytes()
}

// PNG rasterises an SVG document at its declared size.
func PNG(svgData []byte, width, height int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
