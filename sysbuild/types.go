package sysbuild

import "context"

// Linkage is the way the native codec is linked into the consuming binary.
type Linkage int

const (
	// Dynamic links against the shared libraries produced by CMake.
	Dynamic Linkage = iota
	// Static links the archives produced with BUILD_SHARED_LIBS=OFF.
	Static
)

// String returns "static" or "dynamic".
func (l Linkage) String() string {
	if l == Static {
		return "static"
	}
	return "dynamic"
}

// DirectiveKind returns the tag used on link-lib directives ("static" or "dylib").
func (l Linkage) DirectiveKind() string {
	if l == Static {
		return "static"
	}
	return "dylib"
}

// BuildTag returns the Go build tag that selects the matching cgo directives
// in package lzham.
func (l Linkage) BuildTag() string {
	return "lzham_" + l.String()
}

// InstallDir returns the directory name used for this linkage under the
// install root ("static" or "shared").
func (l Linkage) InstallDir() string {
	if l == Static {
		return "static"
	}
	return "shared"
}

// BuildResult contains the output and status of a native build.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from CMake (stdout/stderr)
//   - Prefix and LibDir where the artifacts were installed
//   - Artifacts list of installed library files
type BuildResult struct {
	Success   bool     // True if build completed successfully
	Output    []string // Lines of output from the build process
	Prefix    string   // CMake install prefix
	LibDir    string   // Directory holding the installed libraries
	Artifacts []string // Library files relative to LibDir
	Error     error    // Error if build failed, nil otherwise
}

// BuildConfig contains configuration for one native build.
//
// Source paths:
//   - SourceDir: vendored codec tree containing CMakeLists.txt
//   - BuildDir: CMake binary directory
//   - Prefix: CMake install prefix
//
// Build behavior:
//   - Linkage: static builds pass BUILD_SHARED_LIBS=OFF
//   - Target: selects cross-compilation variables when it differs from the host
//   - Parallel: number of parallel jobs (0 = CMake default)
type BuildConfig struct {
	// Source paths
	SourceDir string
	BuildDir  string
	Prefix    string

	// Build arguments
	Target    Triple
	Linkage   Linkage
	Generator string            // CMake generator, empty for the platform default
	BuildArgs []string          // Additional -D arguments
	Env       map[string]string // Environment variables for build

	// Build options
	Verbose    bool
	CleanFirst bool
	Parallel   int
}

// CommonBuildSteps defines the configure/build/find pattern shared by native builders.
//
//  1. Configure: generate the build tree
//  2. Build: compile and install the libraries
//  3. Find: locate the installed library directory and artifacts
type CommonBuildSteps struct {
	// ConfigureFunc prepares the build tree (e.g. cmake -S -B)
	ConfigureFunc func(ctx context.Context, config *BuildConfig, result *BuildResult) error

	// BuildFunc compiles and installs the libraries
	BuildFunc func(ctx context.Context, config *BuildConfig, result *BuildResult) error

	// FindFunc locates the library directory and the artifacts in it
	FindFunc func(config *BuildConfig) (libDir string, artifacts []string, err error)
}
