// Package render turns form models and the state produced by the controller
// into HTML, and resolves go-theme manifests into CSS variables.
package render
