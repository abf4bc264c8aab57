// Package render implements the slice rendering backend.
//
//   - [MakeSlice]: sample a slice plane onto a raster, axis-aligned or
//     off-axis
//   - [SlicePlot.Display]: terminal heatmap with a midline profile, or the
//     fullscreen Bubble Tea viewer
//   - [SlicePlot.AnnotateGrid]: AMR patch overlay (axis-aligned slices only)
//   - [SlicePlot.Save]: SVG export
//
// Heatmaps are colored with a built-in ramp (viridis, inferno, gray).
package render
