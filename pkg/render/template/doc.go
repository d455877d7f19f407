// Package template wraps a pongo2 template set behind a small rendering
// contract used by the HTML form renderer.
package template
