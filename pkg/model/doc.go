// Package model defines the structural document renderers consume. A Document
// holds one Level per type of the inspected value's type chain, most-derived
// first; each Level owns the fields its type declares directly, sorted by
// name. Builders reside in internal/model but return the types defined here.
//
// The chain of a struct type continues through its first embedded struct (or
// pointer to struct) field. Fields tagged `structfmt:"-"` or
// `structfmt:"skip"` are left out, as are blank fields and fields tagged
// `structfmt:"static"`. Unexported fields are read.
package model
