package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrUnknownAlgorithm is returned when a requested algorithm name is not registered in its family.
	ErrUnknownAlgorithm = zerr.New("unknown algorithm")

	// ErrUnknownFamily is returned when an algorithm family is not known to the registry.
	ErrUnknownFamily = zerr.New("unknown algorithm family")

	// ErrInvalidParameter is returned when a parameter value cannot be coerced or is out of bounds.
	ErrInvalidParameter = zerr.New("invalid parameter")

	// ErrUnknownParameter is returned when a request names a parameter the algorithm does not declare.
	ErrUnknownParameter = zerr.New("unknown parameter")

	// ErrInvalidRequest is returned when a processing request fails validation.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrUnknownGeometry is returned when a tip geometry is not one of sphere, cylinder, cone or pyramid.
	ErrUnknownGeometry = zerr.New("unknown tip geometry")

	// ErrInvalidCurve is returned when a curve's position and force arrays are inconsistent.
	ErrInvalidCurve = zerr.New("invalid curve")

	// ErrCurveNotFound is returned when a requested curve id does not exist in the curve store.
	ErrCurveNotFound = zerr.New("curve not found")

	// ErrStoreUnavailable is returned when the curve store cannot be read.
	ErrStoreUnavailable = zerr.New("curve store unavailable")

	// ErrCurveFileReadFailed is returned when a curve fixture file cannot be read.
	ErrCurveFileReadFailed = zerr.New("failed to read curve file")

	// ErrCurveFileParseFailed is returned when a curve fixture file cannot be decoded.
	ErrCurveFileParseFailed = zerr.New("failed to parse curve file")

	// ErrCacheOpenFailed is returned when the cache backend cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open cache")

	// ErrCacheReadFailed is returned when a cache lookup fails.
	ErrCacheReadFailed = zerr.New("failed to read cache")

	// ErrCacheWriteFailed is returned when a cache insert fails.
	ErrCacheWriteFailed = zerr.New("failed to write cache")

	// ErrCacheDecodeFailed is returned when a cached entry cannot be decoded.
	ErrCacheDecodeFailed = zerr.New("failed to decode cache entry")

	// ErrUnknownCacheBackend is returned when the configured cache backend is not supported.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend")

	// ErrHashFailed is returned when a value cannot be canonicalized for hashing.
	ErrHashFailed = zerr.New("failed to hash value")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the loaded configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrServerFailed is returned when the transport server stops unexpectedly.
	ErrServerFailed = zerr.New("server failed")
)

// configurationErrors are the sentinels reported back to the requester instead of aborting a batch.
var configurationErrors = []error{
	ErrUnknownAlgorithm,
	ErrUnknownFamily,
	ErrInvalidParameter,
	ErrUnknownParameter,
	ErrInvalidRequest,
	ErrUnknownGeometry,
	ErrInvalidCurve,
	ErrCurveNotFound,
}

// IsConfigurationError reports whether err stems from an invalid request or algorithm configuration.
func IsConfigurationError(err error) bool {
	for _, target := range configurationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
