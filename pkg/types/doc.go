// Package types defines the entity model for the notenew data layer:
// databases, their typed property columns, pages, cell values, and saved
// views, together with the closed property-type registry that fixes the
// config and value shape for each property type.
//
// Validation lives here; persistence lives in internal/sqlite. Everything
// in this package is pure data logic with no storage dependencies.
package types
