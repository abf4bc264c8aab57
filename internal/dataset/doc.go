// Package dataset implements the plotfile loading backend.
//
// A plotfile is a directory holding a header.json descriptor plus one CSV
// block of flattened cell values per field:
//
//   - [Load]: open a plotfile, validating the header
//   - [Dataset.FieldData]: lazily read and cache a field block
//   - [Dataset.ValueAt]: nearest-cell point sampling, NaN outside the domain
//
// Domain edges are in CGS units. Cylindrical geometry marks the data as
// axisymmetric, which fixes the slice orientation upstream. Magnitude fields
// (velocity_magnitude and friends) are derived on demand from their raw
// component blocks.
package dataset
