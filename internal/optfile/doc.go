// Package optfile loads pipeline option files written in HCL into the
// immutable config model. A file holds one `pipeline` block with the global
// options and any number of `dataset` blocks naming independent input
// recordings.
//
// Only the two required attributes are bound structurally; every optional
// attribute is decoded by hand through cty value conversion so that absent
// attributes fall back to the documented defaults instead of zero values.
package optfile
