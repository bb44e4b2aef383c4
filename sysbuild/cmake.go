package sysbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Build tool constants
const (
	unixMakefiles  = "Unix Makefiles"
	mingwMakefiles = "MinGW Makefiles"
	cmakeProgram   = "cmake"
	buildType      = "Release"
)

// CmakeBuilder compiles the vendored codec with CMake and installs it
// into a per-linkage, per-platform prefix.
type CmakeBuilder struct{}

// Name returns the builder name
func (b *CmakeBuilder) Name() string {
	return "CMake"
}

// RequiredTools returns the tools needed for CMake builds
func (b *CmakeBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    cmakeProgram,
			Purpose: "CMake build system",
		},
		{
			Name:         "c++",
			Alternatives: []string{"g++", "clang++", "cl"},
			Purpose:      "C++ compiler for the codec sources",
		},
	}
}

// CheckTools verifies that CMake and a C++ compiler are available
func (b *CmakeBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Build configures, compiles and installs the codec.
func (b *CmakeBuilder) Build(ctx context.Context, config *BuildConfig) (*BuildResult, error) {
	if _, err := os.Stat(filepath.Join(config.SourceDir, "CMakeLists.txt")); err != nil {
		err = fmt.Errorf("codec sources not found in %s (run \"git submodule update --init\"): %w", config.SourceDir, err)
		return &BuildResult{Output: []string{}, Prefix: config.Prefix, Error: err}, err
	}

	return runCommonBuild(ctx, config, CommonBuildSteps{
		ConfigureFunc: b.runCmake,
		BuildFunc:     b.runBuild,
		FindFunc:      b.findInstalledLibraries,
	})
}

// Clean removes the CMake build tree and the install prefix.
func (b *CmakeBuilder) Clean(_ context.Context, config *BuildConfig) error {
	for _, dir := range []string{config.BuildDir, config.Prefix} {
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}
	return nil
}

// configureArgs returns the arguments for the configure step.
func (b *CmakeBuilder) configureArgs(config *BuildConfig) []string {
	args := []string{
		"-S", config.SourceDir,
		"-B", config.BuildDir,
		"-DCMAKE_BUILD_TYPE=" + buildType,
		"-DCMAKE_INSTALL_PREFIX=" + config.Prefix,
		"-DCMAKE_INSTALL_LIBDIR=lib",
		"-DCMAKE_POSITION_INDEPENDENT_CODE=ON",
	}

	// Shared output is only switched off; dynamic builds keep the project default.
	if config.Linkage == Static {
		args = append(args, "-DBUILD_SHARED_LIBS=OFF")
	}

	if generator := b.getGenerator(config); generator != "" {
		args = append(args, "-G", generator)
	}

	host := HostTriple()
	if !config.Target.IsZero() && (config.Target.OS != host.OS || config.Target.GOARCH() != host.GOARCH()) {
		args = append(args,
			"-DCMAKE_SYSTEM_NAME="+config.Target.cmakeSystemName(),
			"-DCMAKE_SYSTEM_PROCESSOR="+config.Target.Arch)
	}

	return append(args, config.BuildArgs...)
}

// runCmake executes cmake to configure the build tree
func (b *CmakeBuilder) runCmake(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	args := b.configureArgs(config)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: cmake %s", strings.Join(args, " ")))
	}

	output, err := runCombined(ctx, command{Env: buildEnv(config), Name: cmakeProgram, Args: args})
	appendOutput(result, output)

	if err != nil {
		return BuildError("cmake configure", result.Output, err)
	}

	return nil
}

// runBuild compiles the configured tree and installs it into the prefix
func (b *CmakeBuilder) runBuild(ctx context.Context, config *BuildConfig, result *BuildResult) error {
	env := buildEnv(config)

	// Clean first if requested
	if config.CleanFirst {
		cleanOutput, _ := runCombined(ctx, command{Env: env, Name: cmakeProgram,
			Args: []string{"--build", config.BuildDir, "--target", "clean"}})
		appendOutput(result, cleanOutput)
	}

	args := []string{"--build", config.BuildDir, "--config", buildType}
	if config.Parallel > 0 {
		args = append(args, "--parallel", fmt.Sprintf("%d", config.Parallel))
	}

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: cmake %s", strings.Join(args, " ")))
	}

	output, err := runCombined(ctx, command{Env: env, Name: cmakeProgram, Args: args})
	appendOutput(result, output)

	if err != nil {
		return BuildError("cmake build", result.Output, err)
	}

	installArgs := []string{"--install", config.BuildDir, "--config", buildType}
	installOutput, err := runCombined(ctx, command{Env: env, Name: cmakeProgram, Args: installArgs})
	appendOutput(result, installOutput)

	if err != nil {
		return BuildError("cmake install", result.Output, err)
	}

	return nil
}

// findInstalledLibraries locates the library directory under the prefix and
// the archives or shared libraries installed into it.
func (b *CmakeBuilder) findInstalledLibraries(config *BuildConfig) (string, []string, error) {
	libDir := filepath.Join(config.Prefix, "lib")
	if _, err := os.Stat(libDir); os.IsNotExist(err) {
		alt := filepath.Join(config.Prefix, "lib64")
		if _, altErr := os.Stat(alt); altErr != nil {
			return "", nil, fmt.Errorf("install lib dir not found: %s (or lib64)", libDir)
		}
		libDir = alt
	}

	searchDirs := []string{libDir}
	// Windows DLLs are installed next to executables.
	if config.Target.OS == platformWindows && config.Linkage == Dynamic {
		searchDirs = append(searchDirs, filepath.Join(config.Prefix, "bin"))
	}

	var artifacts []string
	for _, dir := range searchDirs {
		for _, pattern := range libraryPatterns(config.Target, config.Linkage) {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return "", nil, fmt.Errorf("failed to glob pattern %s in %s: %v", pattern, dir, err)
			}
			for _, match := range matches {
				if rel, err := filepath.Rel(libDir, match); err == nil {
					artifacts = append(artifacts, filepath.ToSlash(rel))
				}
			}
		}
	}

	if len(artifacts) == 0 {
		return "", nil, fmt.Errorf("no %s libraries found in %s", config.Linkage, libDir)
	}

	sort.Strings(artifacts)
	return libDir, artifacts, nil
}

// libraryPatterns returns the file patterns of the libraries a build produces.
func libraryPatterns(t Triple, l Linkage) []string {
	switch {
	case l == Static && t.IsMSVC():
		return []string{"lzham*.lib"}
	case l == Static:
		return []string{"liblzham*.a"}
	case t.OS == platformWindows:
		return []string{"*lzham*.dll", "liblzham*.dll.a", "lzham*.lib"}
	case t.OS == platformDarwin:
		return []string{"liblzham*.dylib"}
	default:
		return []string{"liblzham*.so", "liblzham*.so.*"}
	}
}

// getGenerator returns the CMake generator for the build.
//
// cgo links with a GNU toolchain on Windows, so MinGW is preferred there
// unless the target is MSVC, in which case CMake picks Visual Studio.
func (b *CmakeBuilder) getGenerator(config *BuildConfig) string {
	if config.Generator != "" {
		return config.Generator
	}

	switch runtime.GOOS {
	case platformWindows:
		if config.Target.IsMSVC() {
			return ""
		}
		return mingwMakefiles
	default:
		return unixMakefiles
	}
}
