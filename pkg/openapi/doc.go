// Package openapi defines the public contracts for loading and parsing
// OpenAPI documents into operation wrappers the form-model builder consumes.
// Implementations live under internal/openapi.
package openapi
