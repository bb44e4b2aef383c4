// Package sysbuild builds the vendored LZHAM codec and wires it into the Go
// binding in package lzham.
//
// It is the Go counterpart of a native "-sys" build step and does two jobs,
// always in this order:
//
//  1. BindingGenerator (optional) - scans the public C header and writes the
//     per-platform Go declarations ({os}.go or {os}_{env}.go) through
//     cgo -godefs.
//  2. LinkConfigurator - resolves static vs dynamic linkage, drives CMake to
//     compile the codec, and emits the linker directives for the result.
//
// # Basic Usage
//
//	opts, err := sysbuild.LoadOptions("", sysbuild.Flags{Static: true})
//	if err != nil {
//	    return err
//	}
//
//	configurator := sysbuild.NewLinkConfigurator(opts, logrus.StandardLogger())
//	result, err := configurator.Run(ctx)
//	if err != nil {
//	    return err // native build failures are fatal
//	}
//
//	for _, line := range result.Directives.Lines() {
//	    fmt.Println(line)
//	}
//
// # Linkage Resolution
//
// The decision is made once per run by ResolveLinkage, in this order:
//
//	both static and dynamic requested  -> platform default
//	static requested, or LIBLZHAM_STATIC / LZHAM_STATIC set -> static
//	dynamic requested                  -> dynamic
//	nothing requested                  -> platform default
//
// The platform default is static on Windows, macOS and musl targets, and
// dynamic everywhere else.
//
// # Configuration Sources
//
// Options are populated once by LoadOptions from explicit flags, then the
// environment, then lzham.toml, then defaults. The linkage switches, target
// and paths are not re-read from the environment after that.
package sysbuild
