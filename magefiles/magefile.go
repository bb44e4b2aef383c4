//go:build mage

// Build tasks for lzham-go. Run with `mage -l` to list targets.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/contriboss/lzham-go/sysbuild"
)

const buildTool = "./cmd/lzham-build"

// Default target when mage is run without arguments.
var Default = Build

// linkageFlags passes LZHAM_LINKAGE=static|dynamic through to lzham-build.
func linkageFlags() []string {
	switch os.Getenv("LZHAM_LINKAGE") {
	case "static":
		return []string{"--static"}
	case "dynamic":
		return []string{"--dynamic"}
	default:
		return nil
	}
}

// Native builds and installs the codec for the host and writes the cgo
// directive environment to native/link.env.
func Native() error {
	if err := os.MkdirAll("native", 0o755); err != nil {
		return err
	}
	args := append([]string{"run", buildTool, "link", "--emit", "env"}, linkageFlags()...)
	out, err := sh.Output("go", args...)
	if err != nil {
		return err
	}
	return os.WriteFile(linkEnv, []byte(out+"\n"), 0o644)
}

// Generate regenerates the Go declarations for every supported target.
func Generate() error {
	return sh.RunV("go", "generate", ".")
}

// Build compiles the codec, then the Go packages against it.
func Build() error {
	mg.Deps(Native)
	env, err := buildEnv()
	if err != nil {
		return err
	}
	return sh.RunWithV(env, "go", "build", "./...")
}

// Test runs the unit tests. Codec tests need the native libraries.
func Test() error {
	mg.Deps(Native)
	env, err := buildEnv()
	if err != nil {
		return err
	}
	return sh.RunWithV(env, "go", "test", "./...")
}

// Clean removes the native build tree and install prefix.
func Clean() error {
	args := append([]string{"run", buildTool, "clean"}, linkageFlags()...)
	return sh.RunV("go", args...)
}

// linkEnv is written by Native and read by Build and Test.
var linkEnv = filepath.Join("native", "link.env")

// buildEnv returns CGO_LDFLAGS and GOFLAGS from the directives Native wrote,
// so go build links exactly the libraries that were installed.
func buildEnv() (map[string]string, error) {
	f, err := os.Open(linkEnv)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	env, err := sysbuild.ReadEnv(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", linkEnv, err)
	}
	for _, key := range []string{"CGO_LDFLAGS", "GOFLAGS"} {
		if _, ok := env[key]; !ok {
			return nil, fmt.Errorf("%s: %s not set", linkEnv, key)
		}
	}
	env["CGO_ENABLED"] = "1"
	return env, nil
}
