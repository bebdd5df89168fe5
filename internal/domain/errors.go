package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrModelResponseDecode is returned when the model reply does not match the intent schema
	ErrModelResponseDecode = errors.New("failed to decode model response")

	// ErrEmptyModelResponse is returned when the model returns no choices
	ErrEmptyModelResponse = errors.New("model returned no choices")

	// ErrProviderNotConfigured is returned when a product provider has no credentials
	ErrProviderNotConfigured = errors.New("product provider credentials not configured")

	// ErrProviderAPIFailure is returned when a product provider request fails
	ErrProviderAPIFailure = errors.New("product provider request failed")

	// ErrProviderRejected is returned when a provider answers 2xx with an error code
	ErrProviderRejected = errors.New("product provider rejected request")

	// ErrMalformedProduct is returned when a provider payload has no usable product
	ErrMalformedProduct = errors.New("product payload missing required fields")

	// ErrUnsupportedPlatform is returned when a source is asked for a platform it does not serve
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
