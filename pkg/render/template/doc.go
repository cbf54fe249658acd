// Package template defines the renderer-agnostic template interface used by
// the html renderer. Data passed to templates is converted through its JSON
// form, so templates address document fields by their json names.
package template
