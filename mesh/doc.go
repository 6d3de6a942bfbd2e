// Package mesh builds the fixed layer geometries that smooth (Occam
// style) inversion estimates resistivities on.
//
// A mesh is a stack of cells whose thicknesses grow geometrically with
// depth, mirroring the loss of resolution of surface arrays: thin cells
// where the data can see detail, thick cells at depth where they cannot.
// The deepest cell is the basement half-space.
//
// ForSounding sizes a mesh from the survey itself: the first cell is a
// quarter of the smallest electrode spacing and the stack reaches down
// to the largest spacing, with the growth factor solved by bisection.
package mesh
