// Package openapi exposes the contracts for describing landing page forms in
// an OpenAPI document. A loader reads the document from a file, an fs.FS or a
// URL; a parser turns each operation's request body into a model.FormModel.
// Implementations live under internal/openapi so kin-openapi stays out of the
// public API; the root formflow package wires them together.
//
// Recognised hints:
//
//	format: email | tel | textarea      field kind
//	x-formflow-kind (property)          field kind override
//	x-formflow-kind (operation)         "contact" or "newsletter"
//	x-formflow-order (request schema)   field order
//	x-formflow-submit-label             submit button label
//	x-formflow-placeholder              input placeholder
package openapi
