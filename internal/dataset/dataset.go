package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Errors surfaced by the loading backend.
var (
	// ErrUnknownFormat indicates the path does not point at a recognizable
	// plotfile directory.
	ErrUnknownFormat = errors.New("dataset: file format not recognized")

	// ErrUnknownField indicates the requested field is not in the dataset.
	ErrUnknownField = errors.New("dataset: unknown field")

	// ErrFieldData indicates a field is listed in the header but its data
	// block is missing, unparsable, or the wrong size.
	ErrFieldData = errors.New("dataset: field data unreadable")

	// ErrClosed indicates the dataset handle was already released.
	ErrClosed = errors.New("dataset: handle closed")
)

type Geometry string

const (
	Cartesian   Geometry = "cartesian"
	Cylindrical Geometry = "cylindrical"
	Spherical   Geometry = "spherical"
)

// GridBox is the physical extent of one AMR grid patch, used for overlay
// annotation.
type GridBox struct {
	Level int        `json:"level"`
	Lo    [3]float64 `json:"lo"`
	Hi    [3]float64 `json:"hi"`
}

type header struct {
	Name             string     `json:"name"`
	Geometry         Geometry   `json:"geometry"`
	DomainDimensions [3]int     `json:"domain_dimensions"`
	DomainLeftEdge   [3]float64 `json:"domain_left_edge"`
	DomainRightEdge  [3]float64 `json:"domain_right_edge"`
	Fields           []string   `json:"fields"`
	Grids            []GridBox  `json:"grids"`
}

// Dataset is a loaded plotfile: a directory holding header.json plus one CSV
// block of cell values per field. Field data is read lazily and cached until
// Close. Domain edges are in CGS units.
type Dataset struct {
	Path             string
	Name             string
	Geometry         Geometry
	DomainDimensions [3]int
	DomainLeftEdge   [3]float64
	DomainRightEdge  [3]float64
	Fields           []string
	Grids            []GridBox

	data map[string][]float64
}

// Load opens a plotfile directory. Anything without a parsable header.json
// is reported as an unrecognized format.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	raw, err := os.ReadFile(filepath.Join(path, "header.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if len(h.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s (no fields)", ErrUnknownFormat, path)
	}
	for a := 0; a < 3; a++ {
		if h.DomainDimensions[a] < 1 || h.DomainRightEdge[a] < h.DomainLeftEdge[a] {
			return nil, fmt.Errorf("%w: %s (bad domain)", ErrUnknownFormat, path)
		}
	}

	name := h.Name
	if name == "" {
		name = filepath.Base(path)
	}
	grids := h.Grids
	if len(grids) == 0 {
		grids = []GridBox{{Level: 0, Lo: h.DomainLeftEdge, Hi: h.DomainRightEdge}}
	}

	return &Dataset{
		Path:             path,
		Name:             name,
		Geometry:         h.Geometry,
		DomainDimensions: h.DomainDimensions,
		DomainLeftEdge:   h.DomainLeftEdge,
		DomainRightEdge:  h.DomainRightEdge,
		Fields:           h.Fields,
		Grids:            grids,
		data:             make(map[string][]float64),
	}, nil
}

// Close releases cached field data. The handle must not be used afterwards.
func (d *Dataset) Close() {
	d.data = nil
}

// Dim is 2 when the third domain dimension collapses to a single cell.
func (d *Dataset) Dim() int {
	if d.DomainDimensions[2] == 1 {
		return 2
	}
	return 3
}

// Axisymmetric reports whether slices are taken in the fixed r-z plane.
func (d *Dataset) Axisymmetric() bool {
	return d.Geometry == Cylindrical
}

func (d *Dataset) cellCount() int {
	n := d.DomainDimensions
	return n[0] * n[1] * n[2]
}

// Contains reports whether field is available, either as a raw block or as a
// computable derived field.
func (d *Dataset) Contains(field string) bool {
	for _, f := range d.Fields {
		if f == field {
			return true
		}
	}
	return d.hasDerived(field)
}

// FieldData returns the flattened cell values for field, reading and caching
// the block on first use. Values are ordered x-fastest.
func (d *Dataset) FieldData(field string) ([]float64, error) {
	if d.data == nil {
		return nil, ErrClosed
	}
	if vals, ok := d.data[field]; ok {
		return vals, nil
	}
	if d.hasDerived(field) {
		vals, err := d.computeDerived(field)
		if err != nil {
			return nil, err
		}
		d.data[field] = vals
		return vals, nil
	}

	listed := false
	for _, f := range d.Fields {
		if f == field {
			listed = true
			break
		}
	}
	if !listed {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	vals, err := d.readBlock(field)
	if err != nil {
		return nil, err
	}
	d.data[field] = vals
	return vals, nil
}

// readBlock reads <field>.csv and flattens every record into one value list.
func (d *Dataset) readBlock(field string) ([]float64, error) {
	file, err := os.Open(filepath.Join(d.Path, field+".csv"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldData, field)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldData, field)
	}

	vals := make([]float64, 0, d.cellCount())
	for _, record := range records {
		for _, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrFieldData, field)
			}
			vals = append(vals, v)
		}
	}

	if len(vals) != d.cellCount() {
		return nil, fmt.Errorf("%w: %s has %d values, expected %d",
			ErrFieldData, field, len(vals), d.cellCount())
	}
	return vals, nil
}

// ValueAt samples vals with nearest-cell lookup at a physical point. Points
// outside the domain yield NaN. Collapsed axes ignore their coordinate.
func (d *Dataset) ValueAt(vals []float64, x, y, z float64) float64 {
	n := d.DomainDimensions
	p := [3]float64{x, y, z}
	var idx [3]int

	for a := 0; a < 3; a++ {
		if n[a] == 1 {
			continue
		}
		extent := d.DomainRightEdge[a] - d.DomainLeftEdge[a]
		t := (p[a] - d.DomainLeftEdge[a]) / extent
		if t < 0 || t > 1 {
			return math.NaN()
		}
		i := int(t * float64(n[a]))
		if i == n[a] {
			i = n[a] - 1
		}
		idx[a] = i
	}

	flat := idx[0] + n[0]*(idx[1]+n[1]*idx[2])
	if flat < 0 || flat >= len(vals) {
		return math.NaN()
	}
	return vals[flat]
}
