package sysbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const fakeGodefsOutput = `// Code generated by cmd/cgo -godefs; DO NOT EDIT.
// cgo -godefs -objdir /tmp/x -- input.go

package lzham

const (
	LZHAM_Z_OK		= 0x0
	LZHAM_Z_PARAM_ERROR	= -0x2710
)

type lzham_z_ulong uint64

type lzham_z_alloc_func *[0]byte
`

func bindingOptions(t *testing.T) *Options {
	t.Helper()
	requireCParser(t)
	return &Options{
		Header:      filepath.Join("testdata", "wrapper", "wrapper.h"),
		IncludeDirs: testIncludeDirs,
		BindingDir:  t.TempDir(),
		Package:     DefaultPackage,
		Allow:       DefaultAllow,
	}
}

func TestExtraCompilerArgs(t *testing.T) {
	testCases := []struct {
		triple   string
		sysroot  string
		expected []string
	}{
		{"x86_64-pc-windows-gnu", "", []string{"--target=x86_64-pc-windows-gnu", "--sysroot=/usr/x86_64-w64-mingw32"}},
		{"aarch64-pc-windows-gnu", "/opt/mingw", []string{"--target=aarch64-pc-windows-gnu", "--sysroot=/opt/mingw"}},
		{"x86_64-pc-windows-msvc", "", nil},
		{"x86_64-unknown-linux-gnu", "/opt/mingw", nil},
		{"aarch64-apple-darwin", "", nil},
	}

	for _, tc := range testCases {
		got := extraCompilerArgs(mustTriple(t, tc.triple), tc.sysroot)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("extraCompilerArgs(%s) = %v, expected %v", tc.triple, got, tc.expected)
		}
	}
}

func TestRenderGodefsInput(t *testing.T) {
	h := &Header{
		Constants: []string{"LZHAM_Z_OK"},
		Types:     []string{"lzham_z_ulong", "lzham_z_stream"},
	}

	src := string(renderGodefsInput(h, "lzham", "wrapper.h"))
	for _, want := range []string{
		"//go:build ignore\n",
		"package lzham\n",
		"#include \"wrapper.h\"\n*/\nimport \"C\"\n",
		"\tLZHAM_Z_OK = C.LZHAM_Z_OK\n",
		"\tlzham_z_ulong C.lzham_z_ulong\n",
		"\tlzham_z_stream C.lzham_z_stream\n",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Expected %q in:\n%s", want, src)
		}
	}
}

func TestPostprocess(t *testing.T) {
	testCases := []struct {
		triple     string
		constraint string
	}{
		{"x86_64-unknown-linux-gnu", "//go:build linux && !musl && (amd64 || arm64)"},
		{"aarch64-unknown-linux-musl", "//go:build linux && musl && (amd64 || arm64)"},
		{"aarch64-apple-darwin", "//go:build darwin && (amd64 || arm64)"},
		{"x86_64-pc-windows-gnu", "//go:build windows && (amd64 || arm64)"},
		{"i686-pc-windows-gnu", "//go:build windows && (386 || arm)"},
	}

	for _, tc := range testCases {
		t.Run(tc.triple, func(t *testing.T) {
			out, err := postprocess([]byte(fakeGodefsOutput), mustTriple(t, tc.triple), "lzham", "include/wrapper.h",
				[]string{"lzham_get_version", "lzham_z_compress"})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			src := string(out)

			if !strings.HasPrefix(src, "// Code generated by lzham-build generate from include/wrapper.h; DO NOT EDIT.\n") {
				t.Errorf("Missing generated header:\n%s", src)
			}
			if strings.Contains(src, "cmd/cgo") {
				t.Errorf("godefs preamble left in output:\n%s", src)
			}
			for _, want := range []string{
				tc.constraint + "\n",
				"//nolint:revive,stylecheck,unused,govet",
				"\npackage lzham\n",
				"LZHAM_Z_PARAM_ERROR = -0x2710",
				"type lzham_z_ulong uint64",
				"var nativeSymbols = []string{\n\t\"lzham_get_version\",\n\t\"lzham_z_compress\",\n}",
			} {
				if !strings.Contains(src, want) {
					t.Errorf("Expected %q in:\n%s", want, src)
				}
			}
			if strings.Count(src, "package lzham") != 1 {
				t.Errorf("Expected one package clause:\n%s", src)
			}
		})
	}
}

func TestPostprocessRejectsGarbage(t *testing.T) {
	if _, err := postprocess([]byte("not go source"), mustTriple(t, "x86_64-apple-darwin"), "lzham", "h", nil); err == nil {
		t.Error("Expected error for output without a package clause")
	}
}

func TestGenerateWindowsGNU(t *testing.T) {
	withEnv(t, nil)
	opts := bindingOptions(t)

	var captured command
	stubRunCommand(t, func(_ context.Context, c command) ([]byte, []byte, error) {
		captured = c

		input, err := os.ReadFile(filepath.Join(c.Dir, "input.go"))
		if err != nil {
			t.Fatalf("godefs input not written: %v", err)
		}
		for _, want := range []string{"#include \"wrapper.h\"", "LZHAM_Z_BUF_ERROR = C.LZHAM_Z_BUF_ERROR", "lzham_z_streamp C.lzham_z_streamp"} {
			if !strings.Contains(string(input), want) {
				t.Errorf("Expected %q in godefs input", want)
			}
		}
		if strings.Contains(string(input), "LZHAM_COMP_LEVEL_UBER") {
			t.Error("Allowlist not applied to godefs input")
		}
		return []byte(fakeGodefsOutput), nil, nil
	})

	gen := NewBindingGenerator(opts, nil)
	path, err := gen.Generate(context.Background(), mustTriple(t, "x86_64-pc-windows-gnu"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if path != filepath.Join(opts.BindingDir, "windows_gnu.go") {
		t.Errorf("Unexpected output path %s", path)
	}

	if captured.Name != "go" {
		t.Errorf("Expected go tool invocation, got %s", captured.Name)
	}
	if !reflect.DeepEqual(captured.Args[:5], []string{"tool", "cgo", "-godefs", "-objdir", captured.Dir}) {
		t.Errorf("Unexpected godefs args: %v", captured.Args)
	}
	args := strings.Join(captured.Args, " ")
	if !strings.Contains(args, "--target=x86_64-pc-windows-gnu --sysroot=/usr/x86_64-w64-mingw32") {
		t.Errorf("Expected target and sysroot in %s", args)
	}
	if captured.Args[len(captured.Args)-1] != "input.go" {
		t.Errorf("Expected input file last, got %v", captured.Args)
	}

	env := strings.Join(captured.Env, "\n") + "\n"
	for _, want := range []string{"GOOS=windows\n", "GOARCH=amd64\n", "CGO_ENABLED=1\n", "CC=clang\n",
		"CGO_CFLAGS=--target=x86_64-pc-windows-gnu --sysroot=/usr/x86_64-w64-mingw32\n"} {
		if !strings.Contains(env, want) {
			t.Errorf("Expected %q in godefs environment", strings.TrimSpace(want))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Generated file missing: %v", err)
	}
	if !strings.Contains(string(data), `"lzham_z_compressBound",`) {
		t.Errorf("Expected native symbols in generated file:\n%s", data)
	}
}

func TestGenerateLinuxHasNoWindowsFlags(t *testing.T) {
	withEnv(t, nil)
	opts := bindingOptions(t)

	var captured command
	stubRunCommand(t, func(_ context.Context, c command) ([]byte, []byte, error) {
		captured = c
		return []byte(fakeGodefsOutput), nil, nil
	})

	path, err := NewBindingGenerator(opts, nil).Generate(context.Background(), mustTriple(t, "x86_64-unknown-linux-gnu"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if filepath.Base(path) != "linux_gnu.go" {
		t.Errorf("Unexpected output file %s", path)
	}

	for _, arg := range captured.Args {
		if strings.HasPrefix(arg, "--target=") || strings.HasPrefix(arg, "--sysroot=") {
			t.Errorf("Unexpected cross flag %s", arg)
		}
	}
	for _, kv := range captured.Env {
		if kv == "CC=clang" || strings.HasPrefix(kv, "CGO_CFLAGS=--target") {
			t.Errorf("Unexpected environment entry %s", kv)
		}
	}
}

func TestGenerateKeepsExplicitCC(t *testing.T) {
	withEnv(t, map[string]string{"CC": "x86_64-w64-mingw32-gcc"})
	opts := bindingOptions(t)

	var captured command
	stubRunCommand(t, func(_ context.Context, c command) ([]byte, []byte, error) {
		captured = c
		return []byte(fakeGodefsOutput), nil, nil
	})

	if _, err := NewBindingGenerator(opts, nil).Generate(context.Background(), mustTriple(t, "x86_64-pc-windows-gnu")); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, kv := range captured.Env {
		if kv == "CC=clang" {
			t.Error("CC should not be overridden when already set")
		}
	}
}

func TestGenerateFailureWritesNothing(t *testing.T) {
	withEnv(t, nil)
	opts := bindingOptions(t)

	stubRunCommand(t, func(context.Context, command) ([]byte, []byte, error) {
		return nil, []byte("input.go:5:2: could not determine kind of name for C.lzham_z_stream"), errors.New("exit status 2")
	})

	_, err := NewBindingGenerator(opts, nil).Generate(context.Background(), mustTriple(t, "x86_64-unknown-linux-gnu"))
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "cgo -godefs failed") || !strings.Contains(err.Error(), "could not determine kind") {
		t.Errorf("Expected godefs output in error, got %v", err)
	}

	entries, readErr := os.ReadDir(opts.BindingDir)
	if readErr != nil {
		t.Fatalf("Failed to read binding dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files after failure, found %d", len(entries))
	}
}

func TestGenerateMissingHeader(t *testing.T) {
	opts := bindingOptions(t)
	opts.Header = filepath.Join("testdata", "wrapper", "broken.h")

	stubRunCommand(t, func(context.Context, command) ([]byte, []byte, error) {
		t.Fatal("godefs should not run when the header scan fails")
		return nil, nil, nil
	})

	if _, err := NewBindingGenerator(opts, nil).Generate(context.Background(), mustTriple(t, "x86_64-unknown-linux-gnu")); err == nil {
		t.Fatal("Expected error for missing include")
	}
}

func TestGenerateEmptyAllowlistMatch(t *testing.T) {
	opts := bindingOptions(t)
	opts.Allow = []string{`^does_not_exist$`}

	if _, err := NewBindingGenerator(opts, nil).Generate(context.Background(), mustTriple(t, "x86_64-unknown-linux-gnu")); err == nil {
		t.Fatal("Expected error when nothing matches the allowlist")
	}
}
