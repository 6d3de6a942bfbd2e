// Package curves compares sounding curves by shape, independent of
// resistivity scale and electrode layout, and classifies observed data
// into the canonical three-layer classes H, K, A and Q.
//
// Two soundings over similar sections rarely share spacings: surveys
// differ in array, range and sampling density, and the same geology at
// a different depth slides the whole curve along the spacing axis.
// Pointwise distances are useless across such offsets. Warp aligns two
// curves elastically (dynamic time warping over the log-resistivity
// samples) and charges only for shape disagreement, so a stretched or
// shifted copy of a curve stays close to the original.
//
// Classify puts this to work as a teaching aid: the observed curve is
// reduced to a standardized log shape and warped against the forward
// responses of the four canonical type-curve sections. The ranking
// answers the interpreter's first question — "what kind of section am I
// looking at?" — and Suggest turns the winner into a starting model for
// parametric inversion, scaled to the data's resistivity level and
// spacing range.
package curves
