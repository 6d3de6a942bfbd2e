// Package sounding holds vertical-electrical-sounding field data: a set
// of apparent resistivities measured at increasing electrode spacings
// with one of the classic four-electrode arrays.
//
// The spacing column means different things for different arrays:
//
//	Wenner       — a, the common spacing between adjacent electrodes
//	Schlumberger — AB/2, half the current-electrode separation, with the
//	               potential dipole treated as ideal (MN → 0)
//	PolePole     — r, the separation of the two active electrodes
//
// Apparent resistivity ρa is the resistivity a homogeneous half-space
// would need to reproduce the measured voltage at that geometry. Plotted
// against spacing on log-log axes it forms the sounding curve that all
// fitting and inversion in this repository works on.
//
// Data round-trips through a small CSV dialect: optional "# name:" and
// "# array:" comment lines, an optional header row, then
// spacing,rhoa[,stddev] records. StdDev values are relative (fractional)
// standard deviations of the measurements.
package sounding
