// Package validation holds the field rules for the landing page forms.
//
// Rules are evaluated in a fixed order and the first match wins:
//
//	required and empty          -> required
//	email kind, bad address     -> invalid_email
//	tel kind, bad phone number  -> invalid_phone
//	"name" field, < 2 chars     -> name_too_short
//	"message"/longtext, < 10    -> message_too_short
//
// Values are trimmed before checking and empty optional fields are always
// valid. Lengths are counted in runes so Hebrew input is measured the same
// way the browser counts it.
package validation
