package render

import (
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	captionFontSize = 12
	captionPad      = 8
	captionLineGap  = 4
)

// captionBox draws lines of text in a filled box anchored to the top-left of
// the plot area. It runs after the series so it stays on top.
func captionBox(lines []string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if len(lines) == 0 {
			return
		}
		r.SetFont(defaults.GetFont())
		r.SetFontSize(captionFontSize)

		textWidth, lineHeight := 0, 0
		for _, l := range lines {
			tb := r.MeasureText(l)
			if tb.Width() > textWidth {
				textWidth = tb.Width()
			}
			if tb.Height() > lineHeight {
				lineHeight = tb.Height()
			}
		}
		lineHeight += captionLineGap

		left := canvasBox.Left + captionPad
		top := canvasBox.Top + captionPad
		right := left + textWidth + 2*captionPad
		bottom := top + len(lines)*lineHeight + captionPad

		r.SetFillColor(captionFill)
		r.SetStrokeColor(captionStroke)
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		r.SetFontColor(axisColor)
		for i, l := range lines {
			r.Text(l, left+captionPad, top+captionPad+(i+1)*lineHeight-captionLineGap)
		}
	}
}
