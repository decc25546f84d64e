package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Natnat0905/GeoChat/internal/geometry"
)

func TestCaption(t *testing.T) {
	require.Equal(t, "Area = π × 5²\n= 78.54 cm²", Caption(5))
	require.Equal(t, "Area = π × 2.5²\n= 19.63 cm²", Caption(2.5))
}

func TestCaption_AreaRoundedToTwoPlaces(t *testing.T) {
	for _, r := range []float64{0.1, 1, 3.3, 7, 12.25} {
		want := fmt.Sprintf("= %.2f cm²", math.Round(math.Pi*r*r*100)/100)
		require.True(t, strings.HasSuffix(Caption(r), want), "r=%v caption=%q", r, Caption(r))
	}
}

func TestCircle_ProducesPNGDataURI(t *testing.T) {
	rd := New(WithSize(320))
	d, err := rd.Circle(5)
	require.NoError(t, err)
	require.Equal(t, "Area = π × 5²\n= 78.54 cm²", d.Caption)

	cfg, err := png.DecodeConfig(bytes.NewReader(d.PNG))
	require.NoError(t, err)
	require.Equal(t, 320, cfg.Width)
	require.Equal(t, 320, cfg.Height)

	require.True(t, strings.HasPrefix(d.DataURI, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(d.DataURI, "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, d.PNG, raw)

	require.Equal(t, 10.0, d.Measurements[geometry.KeyDiameter])
}

// outlineBounds returns the bounding box of pixels close to the circle colour.
func outlineBounds(t *testing.T, pngBytes []byte) image.Rectangle {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	near := func(a uint32, b uint8) bool {
		d := int(a>>8) - int(b)
		return d >= -10 && d <= 10
	}
	box := image.Rectangle{}
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if !near(r, circleColor.R) || !near(g, circleColor.G) || !near(bl, circleColor.B) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				box, found = px, true
				continue
			}
			box = box.Union(px)
		}
	}
	require.True(t, found, "no outline pixels found")
	return box
}

func TestCircle_OutlineIsRound(t *testing.T) {
	for _, size := range []int{600, 320} {
		for _, radius := range []float64{5, 0.75, 1234} {
			d, err := New(WithSize(size)).Circle(radius)
			require.NoError(t, err)

			box := outlineBounds(t, d.PNG)
			require.InDelta(t, box.Dx(), box.Dy(), 3, "size=%d r=%v bounds=%v", size, radius, box)
			require.Greater(t, box.Dx(), size/3)
		}
	}
}

func TestCircle_Idempotent(t *testing.T) {
	rd := New(WithSize(200))
	a, err := rd.Circle(3.5)
	require.NoError(t, err)
	b, err := rd.Circle(3.5)
	require.NoError(t, err)
	require.Equal(t, a.Caption, b.Caption)
	require.Equal(t, a.Measurements, b.Measurements)
}

func TestCircle_ScalesAcrossMagnitudes(t *testing.T) {
	rd := New(WithSize(200))
	for _, r := range []float64{0.01, 1, 250, 1e5} {
		d, err := rd.Circle(r)
		require.NoError(t, err, "r=%v", r)
		require.NotEmpty(t, d.PNG)
	}
}

func TestCircle_RejectsNonPositiveRadius(t *testing.T) {
	rd := New()
	for _, r := range []float64{0, -2, math.NaN(), 1e200, 1.5e308} {
		d, err := rd.Circle(r)
		require.Nil(t, d)
		var verr *geometry.ValidationError
		require.True(t, errors.As(err, &verr), "r=%v", r)
		require.Equal(t, geometry.ErrorInvalidParameter, verr.Code)
	}
}

func TestAxisTicks_SymmetricAndInBounds(t *testing.T) {
	for _, lim := range []float64{0.013, 1.3, 6.5, 130} {
		ticks := axisTicks(lim)
		require.NotEmpty(t, ticks)
		require.Equal(t, -ticks[len(ticks)-1].Value, ticks[0].Value)
		for _, tk := range ticks {
			require.LessOrEqual(t, math.Abs(tk.Value), lim+1e-9)
		}
	}
	labels := []string{}
	for _, tk := range axisTicks(6.5) {
		labels = append(labels, tk.Label)
	}
	require.Equal(t, []string{"-6", "-4", "-2", "0", "2", "4", "6"}, labels)
}

func TestCirclePoints_Closed(t *testing.T) {
	xs, ys := circlePoints(2, 8)
	require.Len(t, xs, 9)
	require.InDelta(t, xs[0], xs[8], 1e-12)
	require.InDelta(t, ys[0], ys[8], 1e-12)
	for i := range xs {
		require.InDelta(t, 2.0, math.Hypot(xs[i], ys[i]), 1e-12)
	}
}
