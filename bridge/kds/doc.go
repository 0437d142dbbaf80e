// Package kds encodes aggregation-engine Arrow batches into the
// accelerator's binary columnar layout ("kernel data store") and decodes
// its result buffers back into plain Go values.
//
// The layout is an external ABI the accelerator runtime owns, not this
// package: header + column-offset table + per-column validity bitmap,
// followed by either fixed-width raw values or an offset-plus-payload
// region for variable-width geometry columns. Every offset and size in
// this package is load-bearing; see layout.go for the field-by-field
// byte accounting.
package kds
