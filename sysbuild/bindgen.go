package sysbuild

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// lintSuppressions is placed before the package clause of generated files.
// C identifiers are kept verbatim, which the naming linters reject.
const lintSuppressions = "//nolint:revive,stylecheck,unused,govet // ST1003, revive:var-naming: C names are kept verbatim"

// BindingGenerator turns the public header into Go declarations with
// cgo -godefs, one file per target (OS, environment) pair.
type BindingGenerator struct {
	Options *Options
	Log     logrus.FieldLogger
}

// NewBindingGenerator returns a generator. A nil logger falls back to the
// logrus standard logger.
func NewBindingGenerator(opts *Options, log logrus.FieldLogger) *BindingGenerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BindingGenerator{Options: opts, Log: log}
}

// OutputPath returns the file Generate writes for target.
func (g *BindingGenerator) OutputPath(target Triple) string {
	return filepath.Join(g.Options.BindingDir, target.BindingFileName("go"))
}

// Generate scans the header, runs cgo -godefs for target and writes the
// post-processed declarations. It returns the path of the written file.
// Nothing is written unless every step succeeds.
func (g *BindingGenerator) Generate(ctx context.Context, target Triple) (string, error) {
	opts := g.Options
	log := g.logger().WithField("target", target.String())

	header, err := ScanHeader(opts.Header, opts.IncludeDirs)
	if err != nil {
		return "", fmt.Errorf("failed to scan header: %w", err)
	}

	decls, err := header.Filter(opts.Allow)
	if err != nil {
		return "", err
	}
	if decls.Empty() {
		return "", fmt.Errorf("no declarations in %s match the allowlist", opts.Header)
	}
	log.WithFields(logrus.Fields{
		"constants": len(decls.Constants),
		"types":     len(decls.Types),
		"functions": len(decls.Functions),
	}).Debug("scanned header")

	workDir, err := os.MkdirTemp("", "lzham-godefs-")
	if err != nil {
		return "", fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.go")
	input := renderGodefsInput(decls, opts.Package, filepath.Base(opts.Header))
	if err := os.WriteFile(inputPath, input, 0o644); err != nil {
		return "", fmt.Errorf("failed to write godefs input: %w", err)
	}

	raw, err := g.runGodefs(ctx, target, workDir, inputPath)
	if err != nil {
		return "", err
	}

	out, err := postprocess(raw, target, opts.Package, filepath.ToSlash(opts.Header), decls.Symbols())
	if err != nil {
		return "", err
	}

	path := g.OutputPath(target)
	if err := writeFileAtomic(path, out); err != nil {
		return "", err
	}

	log.WithField("file", path).Info("generated bindings")
	return path, nil
}

func (g *BindingGenerator) runGodefs(ctx context.Context, target Triple, workDir, inputPath string) ([]byte, error) {
	opts := g.Options

	compilerArgs := []string{"-I" + absPath(filepath.Dir(opts.Header))}
	for _, dir := range opts.IncludeDirs {
		compilerArgs = append(compilerArgs, "-I"+absPath(dir))
	}
	extra := extraCompilerArgs(target, opts.MingwSysroot)
	compilerArgs = append(compilerArgs, extra...)

	args := []string{"tool", "cgo", "-godefs", "-objdir", workDir, "--"}
	args = append(args, compilerArgs...)
	args = append(args, filepath.Base(inputPath))

	env := append(os.Environ(),
		"GOOS="+target.GOOS(),
		"GOARCH="+target.GOARCH(),
		"CGO_ENABLED=1",
	)
	if len(extra) > 0 {
		env = append(env, "CGO_CFLAGS="+strings.Join(extra, " "))
		if _, ok := lookupEnv("CC"); !ok {
			env = append(env, "CC=clang")
		}
	}

	g.logger().Debugf("Running: go %s", strings.Join(args, " "))

	stdout, stderr, err := runCommand(ctx, command{Dir: workDir, Env: env, Name: "go", Args: args})
	if err != nil {
		var output []string
		if text := strings.TrimSpace(string(stderr)); text != "" {
			output = strings.Split(text, "\n")
		}
		return nil, BuildError("cgo -godefs", output, err)
	}
	return stdout, nil
}

func (g *BindingGenerator) logger() logrus.FieldLogger {
	if g.Log == nil {
		return logrus.StandardLogger()
	}
	return g.Log
}

// extraCompilerArgs returns the flags a Windows GNU target needs so the
// compiler driver finds the MinGW headers. Other targets need none.
func extraCompilerArgs(target Triple, sysroot string) []string {
	if !target.IsWindowsGNU() {
		return nil
	}
	if sysroot == "" {
		sysroot = fmt.Sprintf("/usr/%s-w64-mingw32", target.Arch)
	}
	return []string{"--target=" + target.String(), "--sysroot=" + sysroot}
}

// renderGodefsInput builds the cgo -godefs source for the declarations.
func renderGodefsInput(h *Header, pkg, include string) []byte {
	var b bytes.Buffer
	b.WriteString("//go:build ignore\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "/*\n#include %q\n*/\nimport \"C\"\n", include)

	if len(h.Constants) > 0 {
		b.WriteString("\nconst (\n")
		for _, c := range h.Constants {
			fmt.Fprintf(&b, "\t%s = C.%s\n", c, c)
		}
		b.WriteString(")\n")
	}

	if len(h.Types) > 0 {
		b.WriteString("\ntype (\n")
		for _, t := range h.Types {
			fmt.Fprintf(&b, "\t%s C.%s\n", t, t)
		}
		b.WriteString(")\n")
	}

	return b.Bytes()
}

// postprocess replaces the godefs preamble with our own header, build
// constraint and lint suppressions, appends the native symbol list and
// formats the result.
func postprocess(raw []byte, target Triple, pkg, headerPath string, symbols []string) ([]byte, error) {
	text := string(raw)
	idx := strings.Index(text, "\npackage ")
	if !strings.HasPrefix(text, "package ") {
		if idx < 0 {
			return nil, fmt.Errorf("cgo -godefs output has no package clause")
		}
		text = text[idx+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = ""
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by lzham-build generate from %s; DO NOT EDIT.\n\n", headerPath)
	fmt.Fprintf(&b, "//go:build %s\n\n", bindingConstraint(target))
	b.WriteString(lintSuppressions + "\n")
	fmt.Fprintf(&b, "package %s\n", pkg)
	b.WriteString(text)

	b.WriteString("\n// nativeSymbols lists the functions exported by the native library.\n")
	b.WriteString("var nativeSymbols = []string{\n")
	for _, sym := range symbols {
		fmt.Fprintf(&b, "\t%q,\n", sym)
	}
	b.WriteString("}\n")

	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated bindings: %w", err)
	}
	return out, nil
}

// bindingConstraint returns the build constraint of a generated file:
// the OS, the musl tag on Linux, and the architectures sharing the
// target's pointer and long widths.
func bindingConstraint(t Triple) string {
	terms := []string{t.GOOS()}
	if t.OS == platformLinux {
		if t.IsMusl() {
			terms = append(terms, envMusl)
		} else {
			terms = append(terms, "!"+envMusl)
		}
	}
	terms = append(terms, archGroup(t.GOARCH()))
	return strings.Join(terms, " && ")
}

func archGroup(goarch string) string {
	switch goarch {
	case "amd64", "arm64":
		return "(amd64 || arm64)"
	case "386", "arm":
		return "(386 || arm)"
	default:
		return goarch
	}
}

// writeFileAtomic writes data to a temporary file next to path and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}
