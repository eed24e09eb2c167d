package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetNotFound is returned when a requested target is not registered.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrDuplicateTarget is returned when two targets share the same name.
	ErrDuplicateTarget = zerr.New("duplicate target name")

	// ErrInvalidTargetConfig is returned when a target declaration is malformed.
	ErrInvalidTargetConfig = zerr.New("invalid target configuration")

	// ErrBuildFailed is returned when the bundling engine reports a failed build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrWatchTargetRequired is returned when watch is invoked without a target name.
	ErrWatchTargetRequired = zerr.New("watch requires a target name")

	// ErrConfigNotFound is returned when no balefile can be found.
	ErrConfigNotFound = zerr.New("could not find balefile")

	// ErrConfigReadFailed is returned when the balefile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the balefile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownFormat is returned when an output module format is not supported.
	ErrUnknownFormat = zerr.New("unknown output format, expected 'esm', 'cjs' or 'iife'")

	// ErrUnknownLevel is returned when a language level is not supported.
	ErrUnknownLevel = zerr.New("unknown language level")

	// ErrWatchStartFailed is returned when a watch session cannot be opened.
	ErrWatchStartFailed = zerr.New("failed to open watch session")
)

// Tag attaches a key/value pair to a sentinel. The sentinel becomes the
// cause of the returned error, so errors.Is still classifies it; attaching
// metadata directly to the sentinel would sever that chain.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
