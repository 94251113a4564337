// Package config defines the immutable option model shared by every stage of
// a SPARK analysis: the global pipeline options and the per-dataset
// descriptors derived from BIDS-named inputs.
//
// An Options value is constructed once by a loader (see internal/optfile) and
// then passed by value into each builder call. Per-stage adjustments are
// explicit copy-then-modify; nothing in this package mutates shared state.
package config
