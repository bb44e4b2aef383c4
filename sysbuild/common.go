package sysbuild

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// runCommonBuild executes the standard 3-step build process.
//
// # Process Flow
//
//  1. Create empty BuildResult
//  2. Call ConfigureFunc to prepare the build tree
//  3. Call BuildFunc to compile and install the libraries
//  4. Call FindFunc to locate the installed libraries
//  5. Return BuildResult with Success=true
//
// If any step fails, processing stops and the error is returned
// with Success=false. There is no retry: a native build failure is final.
func runCommonBuild(ctx context.Context, config *BuildConfig, steps CommonBuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
		Prefix:  config.Prefix,
	}

	// Step 1: Configure
	if err := steps.ConfigureFunc(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 2: Build and install
	if err := steps.BuildFunc(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 3: Find the installed libraries
	libDir, artifacts, err := steps.FindFunc(config)
	if err != nil {
		result.Error = err
		return result, err
	}

	result.LibDir = libDir
	result.Artifacts = artifacts
	result.Success = true
	return result, nil
}

// buildEnv returns the process environment extended with config.Env.
func buildEnv(config *BuildConfig) []string {
	env := os.Environ()
	for key, value := range config.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	return env
}

// appendOutput splits tool output into lines and appends them to the result.
func appendOutput(result *BuildResult, output []byte) {
	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return
	}
	result.Output = append(result.Output, strings.Split(text, "\n")...)
}
