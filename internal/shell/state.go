package shell

import (
	"fmt"

	"github.com/KiranEiden/amrplot/internal/render"
)

// Bounds is an explicit axis range; a nil *Bounds means "use the full domain
// extent". Invariant: Min < Max.
type Bounds struct {
	Min, Max float64
}

// Normal is a tagged slice orientation: a coordinate axis label, or an
// explicit non-zero vector when Axis is empty.
type Normal struct {
	Axis string
	Vec  [3]float64
}

func AxisNormal(axis string) Normal {
	return Normal{Axis: axis}
}

func VectorNormal(x, y, z float64) Normal {
	return Normal{Vec: [3]float64{x, y, z}}
}

func (n Normal) isDefault() bool {
	return n.Axis == "z"
}

func (n Normal) nonZeroComponents() int {
	count := 0
	for _, c := range n.Vec {
		if c != 0 {
			count++
		}
	}
	return count
}

// ViewState tracks the current plot configuration for one session. It shares
// the session's FileContext and reads domain metadata from it.
type ViewState struct {
	File *FileContext

	XBounds *Bounds
	YBounds *Bounds
	ZBounds *Bounds

	VarName  string
	Log      bool
	ShowGrid bool
	Center   *[3]float64
	Normal   Normal

	CurrentPlot *render.SlicePlot
}

func NewViewState(file *FileContext) *ViewState {
	return &ViewState{File: file, Normal: AxisNormal("z")}
}

// Reset returns every setting to its default, keeping the file binding.
func (s *ViewState) Reset() {
	*s = *NewViewState(s.File)
}

func (s *ViewState) bounds() [3]*Bounds {
	return [3]*Bounds{s.XBounds, s.YBounds, s.ZBounds}
}

// ComputeCenter derives the slice center: the explicit center when set,
// otherwise per-axis midpoints of the bounds or the domain edges. The z
// component is fixed at 0 for 2D data.
func (s *ViewState) ComputeCenter() [3]float64 {
	if s.Center != nil {
		return *s.Center
	}

	ds := s.File.DS
	bounds := s.bounds()
	var ctr [3]float64
	for a := 0; a < 3; a++ {
		if a == 2 && s.File.Dim == 2 {
			break
		}
		if b := bounds[a]; b != nil {
			ctr[a] = 0.5 * (b.Min + b.Max)
		} else {
			ctr[a] = 0.5 * (ds.DomainLeftEdge[a] + ds.DomainRightEdge[a])
		}
	}
	return ctr
}

// ComputeWidth derives the per-axis plot width in CGS units: bound extent
// where set, domain extent otherwise. The z width is 0 for 2D data.
func (s *ViewState) ComputeWidth() [3]float64 {
	ds := s.File.DS
	bounds := s.bounds()
	var w [3]float64
	for a := 0; a < 3; a++ {
		if a == 2 && s.File.Dim == 2 {
			break
		}
		if b := bounds[a]; b != nil {
			w[a] = b.Max - b.Min
		} else {
			w[a] = ds.DomainRightEdge[a] - ds.DomainLeftEdge[a]
		}
	}
	return w
}

// RenderNormal is the orientation handed to the renderer. Axisymmetric data
// always slices along the fixed "theta" normal, overriding any setting.
func (s *ViewState) RenderNormal() render.Normal {
	if s.File.Axisymmetric {
		return render.Normal{Axis: "theta"}
	}
	if s.Normal.Axis != "" {
		return render.Normal{Axis: s.Normal.Axis}
	}
	return render.Normal{Vector: s.Normal.Vec}
}

// IsOffAxis reports whether the slice needs the off-axis render path: an
// explicit normal vector not aligned with a coordinate axis. Axisymmetric
// data is never off-axis; a non-default normal is warned about there since
// the theta normal overrides it.
func (s *ViewState) IsOffAxis() bool {
	if s.File.Axisymmetric {
		if !s.Normal.isDefault() {
			fmt.Println("alternate normal setting cannot be applied to axisymmetric plots")
		}
		return false
	}
	if s.Normal.Axis != "" {
		return false
	}
	return s.Normal.nonZeroComponents() != 1
}
