package dataset

import "math"

// Derived fields computed from raw component blocks. A magnitude field is
// available when at least the x and y components are present; a missing z
// component is treated as zero (2D data).
var magnitudeFields = map[string][3]string{
	"velocity_magnitude": {"velx", "vely", "velz"},
	"momentum_magnitude": {"momx", "momy", "momz"},
	"magnetic_magnitude": {"magx", "magy", "magz"},
}

func (d *Dataset) hasDerived(field string) bool {
	comps, ok := magnitudeFields[field]
	if !ok {
		return false
	}
	return d.hasRaw(comps[0]) && d.hasRaw(comps[1])
}

func (d *Dataset) hasRaw(field string) bool {
	for _, f := range d.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func (d *Dataset) computeDerived(field string) ([]float64, error) {
	comps := magnitudeFields[field]

	parts := make([][]float64, 0, 3)
	for _, c := range comps[:] {
		if !d.hasRaw(c) {
			continue
		}
		vals, err := d.FieldData(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, vals)
	}

	out := make([]float64, d.cellCount())
	for i := range out {
		sum := 0.0
		for _, p := range parts {
			sum += p[i] * p[i]
		}
		out[i] = math.Sqrt(sum)
	}
	return out, nil
}
