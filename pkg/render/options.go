package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry the live state of a form into the renderer: what the
// controller wrote into the field set, error slots, cue and notice.
type RenderOptions struct {
	// Action overrides the form's endpoint.
	Action string
	// Values pre-populates controls by field name.
	Values map[string]string
	// Errors holds the text of each visible error slot.
	Errors map[string]string
	// Cued marks inputs carrying the transient error highlight.
	Cued map[string]bool
	// Notice is the success text; empty hides the notice.
	Notice string
	// SubmitLabel and SubmitDisabled reflect the submit control.
	SubmitLabel    string
	SubmitDisabled bool
	// Theme supplies colour tokens as CSS variables.
	Theme *theme.RendererConfig
}
