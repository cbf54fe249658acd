package render

// RenderOptions describe per-request settings renderers can use to customise
// their output without touching the document.
type RenderOptions struct {
	// Color enables ANSI styling in terminal renderers. Other renderers ignore
	// it.
	Color bool
	// Title overrides the heading used by document-style renderers. When empty
	// the document type name is used.
	Title string
	// Subset narrows the document before it reaches the renderer. The
	// orchestrator applies it; renderers never see filtered-out fields.
	Subset FieldSubset
}
