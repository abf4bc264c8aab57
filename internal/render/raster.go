package render

import "math"

// Raster holds slice samples in row-major order, first row at the top of the
// plot. NaN marks points outside the domain (or non-positive values under a
// log transform); those cells render blank.
type Raster struct {
	Width, Height int
	Values        []float64
	Min, Max      float64
}

func NewRaster(w, h int) *Raster {
	return &Raster{
		Width:  w,
		Height: h,
		Values: make([]float64, w*h),
	}
}

func (r *Raster) Set(i, j int, v float64) {
	if i < 0 || j < 0 || i >= r.Width || j >= r.Height {
		return
	}
	r.Values[j*r.Width+i] = v
}

func (r *Raster) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= r.Width || j >= r.Height {
		return math.NaN()
	}
	return r.Values[j*r.Width+i]
}

// Row returns the samples of row j.
func (r *Raster) Row(j int) []float64 {
	return r.Values[j*r.Width : (j+1)*r.Width]
}

// Finalize scans the finite samples and records the value range.
func (r *Raster) Finalize() {
	first := true
	for _, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if first {
			r.Min, r.Max = v, v
			first = false
			continue
		}
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	if first {
		r.Min, r.Max = 0, 0
	}
}

// Norm maps a sample into [0,1] over the recorded range. A flat raster maps
// everything to the middle of the ramp.
func (r *Raster) Norm(v float64) float64 {
	if r.Max == r.Min {
		return 0.5
	}
	return (v - r.Min) / (r.Max - r.Min)
}
