// Package model defines the field and form types shared by the validation
// rules, the submission controller and every surface that drives them (HTML,
// terminal, HTTP). Fields are plain values: callers read them fresh from the
// live form on every validation pass and the controller never caches them.
// The built-in ContactForm and NewsletterForm mirror the two forms on the
// landing page; OpenAPI documents can describe additional ones (see
// pkg/openapi).
package model
