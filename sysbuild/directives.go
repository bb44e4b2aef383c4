package sysbuild

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Library names in the order they are announced to the linker.
var codecLibraries = []string{"lzhamdecomp", "lzhamcomp", "lzhamdll"}

// Format selects how Directives are rendered.
type Format string

const (
	// FormatLines renders one link-search / link-lib directive per line.
	FormatLines Format = "lines"
	// FormatEnv renders CGO_LDFLAGS and GOFLAGS assignments.
	FormatEnv Format = "env"
	// FormatCgo renders a Go source file carrying #cgo LDFLAGS.
	FormatCgo Format = "cgo"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLines, FormatEnv, FormatCgo:
		return f, nil
	case "":
		return FormatLines, nil
	default:
		return "", fmt.Errorf("unknown directive format %q (want lines, env or cgo)", s)
	}
}

// Directives is the set of linker instructions produced by one run.
// Every library carries the same linkage kind.
type Directives struct {
	SearchDir string
	Runtime   string
	Libraries []string
	Linkage   Linkage
	Target    Triple
}

// NewDirectives returns the directives for libraries installed in libDir.
func NewDirectives(libDir string, linkage Linkage, target Triple) Directives {
	return Directives{
		SearchDir: libDir,
		Runtime:   CxxRuntime(target),
		Libraries: append([]string(nil), codecLibraries...),
		Linkage:   linkage,
		Target:    target,
	}
}

// CxxRuntime returns the C++ runtime library the codec needs on a target.
func CxxRuntime(t Triple) string {
	switch {
	case t.OS == platformDarwin:
		return "c++"
	case t.IsMSVC():
		return "msvcrt"
	default:
		return "stdc++"
	}
}

// Lines returns the directives in link-search / link-lib form.
// The runtime is left untagged so the linker chooses its own kind.
func (d Directives) Lines() []string {
	lines := []string{
		"link-search=native=" + d.SearchDir,
		"link-lib=" + d.Runtime,
	}
	for _, lib := range d.Libraries {
		lines = append(lines, fmt.Sprintf("link-lib=%s=%s", d.Linkage.DirectiveKind(), lib))
	}
	return lines
}

// LDFlags returns the flags for CGO_LDFLAGS. Libraries are listed with
// their dependents first so static archives resolve in a single pass.
func (d Directives) LDFlags() []string {
	flags := []string{"-L" + d.SearchDir}
	for i := len(d.Libraries) - 1; i >= 0; i-- {
		flags = append(flags, "-l"+d.Libraries[i])
	}
	flags = append(flags, "-l"+d.Runtime)

	switch {
	case d.Linkage == Static && d.Target.OS == platformLinux:
		flags = append(flags, "-lm", "-lpthread")
	case d.Linkage == Dynamic && d.Target.OS != platformWindows:
		flags = append(flags, "-Wl,-rpath,"+d.SearchDir)
	}
	return flags
}

// Env returns the environment assignments a go build needs to link
// against these libraries.
func (d Directives) Env() []string {
	return []string{
		"CGO_LDFLAGS=" + shellquote.Join(strings.Join(d.LDFlags(), " ")),
		"GOFLAGS=-tags=" + d.Linkage.BuildTag(),
	}
}

// CgoFile returns a Go source file for package pkg whose #cgo directive
// links the libraries. The file is constrained to the target platform and
// the linkage build tag.
func (d Directives) CgoFile(pkg string) string {
	var b strings.Builder
	b.WriteString("// Code generated by lzham-build link; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "//go:build %s\n\n", d.buildConstraint())
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "// #cgo LDFLAGS: %s\n", strings.Join(d.LDFlags(), " "))
	b.WriteString("import \"C\"\n")
	return b.String()
}

// CgoFileName returns the conventional name for the CgoFile output.
func (d Directives) CgoFileName() string {
	return fmt.Sprintf("cgo_%s_%s.go", d.Target.PlatformDir(), d.Linkage)
}

func (d Directives) buildConstraint() string {
	terms := []string{d.Target.GOOS(), d.Target.GOARCH()}
	if d.Target.OS == platformLinux {
		if d.Target.IsMusl() {
			terms = append(terms, envMusl)
		} else {
			terms = append(terms, "!"+envMusl)
		}
	}
	terms = append(terms, d.Linkage.BuildTag())
	return strings.Join(terms, " && ")
}

// Write renders the directives to w in the given format. pkg names the
// package of a cgo file and is ignored by the other formats.
func (d Directives) Write(w io.Writer, format Format, pkg string) error {
	var out string
	switch format {
	case FormatLines, "":
		out = strings.Join(d.Lines(), "\n") + "\n"
	case FormatEnv:
		out = strings.Join(d.Env(), "\n") + "\n"
	case FormatCgo:
		if pkg == "" {
			pkg = DefaultPackage
		}
		out = d.CgoFile(pkg)
	default:
		return fmt.Errorf("unknown directive format %q", format)
	}

	_, err := io.WriteString(w, out)
	return err
}

// ReadEnv parses assignments in the env format, one KEY=VALUE per line.
// Values are unquoted with shell rules, so the output of Env reads back
// unchanged. Blank lines and lines starting with # are skipped.
func ReadEnv(r io.Reader) (map[string]string, error) {
	env := map[string]string{}
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: expected KEY=VALUE, got %q", n, line)
		}
		words, err := shellquote.Split(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		env[key] = strings.Join(words, " ")
	}
	return env, scanner.Err()
}
