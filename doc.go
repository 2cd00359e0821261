// Package meshpaint implements the core of a real-time texture painting
// system for 3D garment models: multi-layer raster painting synchronized
// with a mesh surface, with derived relief maps for puff-print shading.
//
// The root package holds the shared raster value types (Pixmap, Graymap,
// RGBA, Point, brushes and gradients) plus stamp-shape distance functions.
// Functional areas live in subpackages:
//
//   - mesh: immutable mesh snapshots and a vertex spatial index
//   - pick: screen-ray construction and ray/mesh intersection
//   - symmetry: mirrored stroke target resolution with a bounded cache
//   - layer: the ordered layer store and structured elements
//   - stroke: brush, eraser, flood fill, embroidery and puff tools
//   - relief: displacement and normal map synthesis from puff alpha
//   - composite: z-ordered layer merging into the visible color buffer
//   - update: throttled texture update scheduling
//   - render: render-surface bindings (raylib implementation included)
//   - preview: websocket streaming of composited frames
//
// All raster mutation is single-threaded and frame-driven; see the update
// package for the scheduling contract.
package meshpaint
