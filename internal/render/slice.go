package render

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/KiranEiden/amrplot/internal/dataset"
)

// Errors surfaced by the rendering backend.
var (
	// ErrInvalidField indicates the field could not be read for plotting,
	// even if the dataset lists it.
	ErrInvalidField = errors.New("render: invalid field")

	// ErrUnsupported indicates a plot feature unavailable for the current
	// plot kind.
	ErrUnsupported = errors.New("render: feature not supported for this plot")
)

// Normal is the slice orientation: a coordinate axis label, the fixed
// axisymmetric label "theta", or an explicit vector (Axis empty).
type Normal struct {
	Axis   string
	Vector [3]float64
}

func (n Normal) String() string {
	if n.Axis != "" {
		return n.Axis
	}
	return fmt.Sprintf("(%g, %g, %g)", n.Vector[0], n.Vector[1], n.Vector[2])
}

// Options control raster size and display behavior.
type Options struct {
	Width       int
	Height      int
	ProfileRows int
	Theme       string
	Viewer      bool
}

// Image axes for each normal axis, in right-handed order. "theta" slices
// cylindrical data in its r-z plane.
var axisPairs = map[string][2]int{
	"x":     {1, 2},
	"y":     {2, 0},
	"z":     {0, 1},
	"theta": {0, 1},
}

var axisLabels = map[string][2]string{
	"x":     {"y", "z"},
	"y":     {"z", "x"},
	"z":     {"x", "y"},
	"theta": {"r", "z"},
}

// SlicePlot is a rendered 2D slice through a dataset.
type SlicePlot struct {
	ds     *dataset.Dataset
	field  string
	normal Normal
	center [3]float64
	width  [3]float64
	native bool

	raster   *Raster
	logScale bool
	opts     Options

	uLabel, vLabel         string
	uMin, uMax, vMin, vMax float64
	overlay                []overlayBox
}

// overlayBox is one AMR grid patch projected onto the slice plane.
type overlayBox struct {
	level          int
	u0, v0, u1, v1 float64
}

// MakeSlice samples the plane defined by normal through center onto a raster.
// nativeOrigin selects domain-coordinate framing for axis-aligned slices; it
// is ignored for off-axis normals.
func MakeSlice(ds *dataset.Dataset, normal Normal, field string, center, width [3]float64, nativeOrigin bool, opts Options) (*SlicePlot, error) {
	vals, err := ds.FieldData(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}

	if opts.Width < 2 {
		opts.Width = 2
	}
	if opts.Height < 2 {
		opts.Height = 2
	}

	// An explicit vector along a single axis is an axis slice.
	if normal.Axis == "" {
		if axis, ok := singleAxis(normal.Vector); ok {
			normal = Normal{Axis: axis}
		}
	}

	p := &SlicePlot{
		ds:     ds,
		field:  field,
		normal: normal,
		center: center,
		width:  width,
		native: nativeOrigin && normal.Axis != "",
		opts:   opts,
	}

	var eu, ev [3]float64
	var wu, wv float64

	if normal.Axis != "" {
		pair, ok := axisPairs[normal.Axis]
		if !ok {
			return nil, fmt.Errorf("%w: unknown normal %q", ErrUnsupported, normal.Axis)
		}
		eu[pair[0]] = 1
		ev[pair[1]] = 1
		wu = width[pair[0]]
		wv = width[pair[1]]
		labels := axisLabels[normal.Axis]
		p.uLabel, p.vLabel = labels[0], labels[1]
	} else {
		w := normalize(normal.Vector)
		if w == ([3]float64{}) {
			return nil, fmt.Errorf("%w: zero normal vector", ErrUnsupported)
		}
		ref := [3]float64{0, 0, 1}
		if math.Abs(w[2]) > 0.999 {
			ref = [3]float64{1, 0, 0}
		}
		eu = normalize(cross(ref, w))
		ev = cross(w, eu)
		wu, wv = width[0], width[1]
		p.uLabel, p.vLabel = "u", "v"
	}

	if wu <= 0 {
		wu = maxComponent(width)
	}
	if wv <= 0 {
		wv = maxComponent(width)
	}

	cu := dot(center, eu)
	cv := dot(center, ev)
	p.uMin, p.uMax = cu-wu/2, cu+wu/2
	p.vMin, p.vMax = cv-wv/2, cv+wv/2

	ras := NewRaster(opts.Width, opts.Height)
	for j := 0; j < opts.Height; j++ {
		dv := (0.5 - (float64(j)+0.5)/float64(opts.Height)) * wv
		for i := 0; i < opts.Width; i++ {
			du := ((float64(i)+0.5)/float64(opts.Width) - 0.5) * wu
			pt := [3]float64{
				center[0] + du*eu[0] + dv*ev[0],
				center[1] + du*eu[1] + dv*ev[1],
				center[2] + du*eu[2] + dv*ev[2],
			}
			ras.Set(i, j, ds.ValueAt(vals, pt[0], pt[1], pt[2]))
		}
	}
	ras.Finalize()
	p.raster = ras

	return p, nil
}

// SetLogScale toggles log10 display scaling for the plotted field.
func (p *SlicePlot) SetLogScale(field string, on bool) {
	if field == p.field {
		p.logScale = on
	}
}

// AnnotateGrid overlays the AMR grid patches crossing the slice plane. Not
// supported for off-axis slices.
func (p *SlicePlot) AnnotateGrid() error {
	if p.normal.Axis == "" {
		return fmt.Errorf("%w: grid annotation on off-axis slices", ErrUnsupported)
	}

	pair := axisPairs[p.normal.Axis]
	nAxis := 3 - pair[0] - pair[1]
	coord := p.center[nAxis]
	// theta slices and 2D data include every patch; there is no slice
	// coordinate to test against.
	checkCoord := p.normal.Axis != "theta" && p.ds.Dim() == 3

	p.overlay = p.overlay[:0]
	for _, box := range p.ds.Grids {
		if checkCoord && (coord < box.Lo[nAxis] || coord > box.Hi[nAxis]) {
			continue
		}
		p.overlay = append(p.overlay, overlayBox{
			level: box.Level,
			u0:    box.Lo[pair[0]],
			v0:    box.Lo[pair[1]],
			u1:    box.Hi[pair[0]],
			v1:    box.Hi[pair[1]],
		})
	}
	return nil
}

// Display renders the plot to the terminal, either inline or in the
// fullscreen viewer when enabled.
func (p *SlicePlot) Display() {
	frame := p.renderFrame()
	if p.opts.Viewer {
		if err := runViewer(frame); err == nil {
			return
		}
	}
	fmt.Fprintln(os.Stdout, frame)
}

// display transform applied per sample.
func (p *SlicePlot) displayValue(v float64) float64 {
	if !p.logScale {
		return v
	}
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}

// displayRaster applies the log transform and recomputes the range.
func (p *SlicePlot) displayRaster() *Raster {
	out := NewRaster(p.raster.Width, p.raster.Height)
	for i, v := range p.raster.Values {
		out.Values[i] = p.displayValue(v)
	}
	out.Finalize()
	return out
}

func (p *SlicePlot) renderFrame() string {
	ras := p.displayRaster()
	stops := ramp(p.opts.Theme)

	chars := make([][]string, ras.Height)
	for j := 0; j < ras.Height; j++ {
		row := make([]string, ras.Width)
		for i := 0; i < ras.Width; i++ {
			v := ras.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[i] = blankStyle.Render("·")
				continue
			}
			row[i] = rampCell(stops, ras.Norm(v))
		}
		chars[j] = row
	}

	p.strokeOverlay(chars)

	lines := make([]string, 0, ras.Height+8)
	for _, row := range chars {
		lines = append(lines, strings.Join(row, ""))
	}
	heatmap := frameStyle.Render(strings.Join(lines, "\n"))

	header := strings.Join([]string{
		titleStyle.Render(p.field) + labelStyle.Render("  ("+p.ds.Name+")"),
		labelStyle.Render("normal ") + valueStyle.Render(p.normal.String()) +
			labelStyle.Render("   center ") + valueStyle.Render(fmtTriple(p.center)) +
			labelStyle.Render("   width ") + valueStyle.Render(fmtTriple(p.width)),
		p.windowLine(),
		p.scaleLine(ras),
	}, "\n")

	parts := []string{header, heatmap}
	if profile := p.profileGraph(ras); profile != "" {
		parts = append(parts, graphStyle.Render(profile))
	}
	return strings.Join(parts, "\n")
}

// windowLine reports the plot extents: domain coordinates under
// native-origin framing, center-relative otherwise.
func (p *SlicePlot) windowLine() string {
	if p.native {
		return labelStyle.Render("window ") + valueStyle.Render(fmt.Sprintf(
			"%s [%.4g, %.4g]  %s [%.4g, %.4g]",
			p.uLabel, p.uMin, p.uMax, p.vLabel, p.vMin, p.vMax))
	}
	return labelStyle.Render("window ") + valueStyle.Render(fmt.Sprintf(
		"%s ±%.4g  %s ±%.4g about center",
		p.uLabel, (p.uMax-p.uMin)/2, p.vLabel, (p.vMax-p.vMin)/2))
}

// scaleLine names the display range and axes under the title.
func (p *SlicePlot) scaleLine(ras *Raster) string {
	scale := "linear"
	if p.logScale {
		scale = "log10"
	}
	return labelStyle.Render(scale+" range ") +
		valueStyle.Render(fmt.Sprintf("[%.4g, %.4g]", ras.Min, ras.Max)) +
		labelStyle.Render(fmt.Sprintf("   axes %s-%s", p.uLabel, p.vLabel))
}

// strokeOverlay draws the grid patch outlines over the heatmap cells.
func (p *SlicePlot) strokeOverlay(chars [][]string) {
	if len(p.overlay) == 0 {
		return
	}
	h := len(chars)
	w := len(chars[0])

	col := func(u float64) int {
		return int(float64(w) * (u - p.uMin) / (p.uMax - p.uMin))
	}
	row := func(v float64) int {
		return h - 1 - int(float64(h)*(v-p.vMin)/(p.vMax-p.vMin))
	}

	for _, box := range p.overlay {
		c0, c1 := col(box.u0), col(box.u1)
		r1, r0 := row(box.v0), row(box.v1)
		for c := c0; c <= c1; c++ {
			if c < 0 || c >= w {
				continue
			}
			if r0 >= 0 && r0 < h {
				chars[r0][c] = gridStyle.Render("─")
			}
			if r1 >= 0 && r1 < h {
				chars[r1][c] = gridStyle.Render("─")
			}
		}
		for r := r0; r <= r1; r++ {
			if r < 0 || r >= h {
				continue
			}
			if c0 >= 0 && c0 < w {
				chars[r][c0] = gridStyle.Render("│")
			}
			if c1 >= 0 && c1 < w {
				chars[r][c1] = gridStyle.Render("│")
			}
		}
	}
}

// profileGraph plots the field values along the horizontal midline.
func (p *SlicePlot) profileGraph(ras *Raster) string {
	if p.opts.ProfileRows <= 0 {
		return ""
	}
	mid := ras.Row(ras.Height / 2)
	data := make([]float64, 0, len(mid))
	for _, v := range mid {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		data = append(data, v)
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(p.opts.ProfileRows),
		asciigraph.Width(ras.Width),
		asciigraph.Caption(fmt.Sprintf("%s along %s midline", p.field, p.uLabel)),
	)
}

func singleAxis(v [3]float64) (string, bool) {
	names := [3]string{"x", "y", "z"}
	axis := ""
	for i, c := range v {
		if c == 0 {
			continue
		}
		if axis != "" {
			return "", false
		}
		axis = names[i]
	}
	return axis, axis != ""
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(dot(v, v))
	if n == 0 {
		return [3]float64{}
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func maxComponent(v [3]float64) float64 {
	m := v[0]
	if v[1] > m {
		m = v[1]
	}
	if v[2] > m {
		m = v[2]
	}
	if m <= 0 {
		m = 1
	}
	return m
}

func fmtTriple(v [3]float64) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v[0], v[1], v[2])
}
