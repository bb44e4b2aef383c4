package sysbuild

import "context"

// Builder compiles and installs the native codec.
//
// CmakeBuilder is the only implementation shipped with this package.
// Tests substitute their own to exercise the configurator without CMake.
type Builder interface {
	// Name returns a human-readable name for this builder (e.g., "CMake").
	Name() string

	// Build compiles the codec described by config and installs it into
	// config.Prefix. The result carries the captured tool output even when
	// an error is returned.
	Build(ctx context.Context, config *BuildConfig) (*BuildResult, error)

	// Clean removes the build tree and the install prefix.
	Clean(ctx context.Context, config *BuildConfig) error
}
