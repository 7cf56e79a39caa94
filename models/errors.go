package models

import "errors"

// Failure kinds surfaced by the prompt pipeline. Route handlers map these to
// HTTP status codes; the raw error detail never leaves the server.
var (
	// ErrInvalidInput means a required request field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaViolation means a schema-mode invocation produced output that
	// does not conform to the requested field specification.
	ErrSchemaViolation = errors.New("model output does not match requested schema")

	// ErrResponseParse means a free-text response contained no extractable,
	// parsable JSON object.
	ErrResponseParse = errors.New("no parsable JSON object in model response")

	// ErrUpstreamUnavailable means the generative model API could not be
	// reached or returned a non-success status.
	ErrUpstreamUnavailable = errors.New("generative model unavailable")

	// ErrUpstreamTimeout means the generative model call exceeded its deadline.
	ErrUpstreamTimeout = errors.New("generative model call timed out")
)
