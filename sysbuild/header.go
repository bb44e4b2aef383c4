package sysbuild

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"modernc.org/cc/v4"
)

// Header is the set of declarations found in a header and the local
// headers it includes.
type Header struct {
	Path      string
	Files     []string
	Constants []string
	Types     []string
	Functions []string
}

// hostCConfig describes the host C compiler. It is resolved once because
// probing the compiler runs it.
var hostCConfig = sync.OnceValues(func() (*cc.Config, error) {
	return cc.NewConfig(runtime.GOOS, runtime.GOARCH)
})

// ScanHeader preprocesses and parses path with the host C compiler's
// predefined macros and system include paths. Quoted includes are resolved
// against the including file's directory and then includeDirs; one that
// cannot be found is an error.
//
// Only declarations made in path or a file under its directory or one of
// includeDirs are reported. Constants are object-like macros with an
// integer value and enum members.
func ScanHeader(path string, includeDirs []string) (*Header, error) {
	base, err := hostCConfig()
	if err != nil {
		return nil, fmt.Errorf("configure C parser: %w", err)
	}
	cfg := *base
	cfg.IncludePaths = append(append([]string{""}, includeDirs...), base.IncludePaths...)
	cfg.EvalAllMacros = true

	ast, err := cc.Translate(&cfg, []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
		{Name: path},
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	roots, err := localRoots(path, includeDirs)
	if err != nil {
		return nil, err
	}
	c := &declCollector{roots: roots, seen: map[string]bool{}}

	for name, m := range ast.Macros {
		if m.IsFnLike {
			continue
		}
		switch m.Value().(type) {
		case cc.Int64Value, cc.UInt64Value:
			pos := m.Name.Position()
			c.add(&c.constants, name, pos.Filename, pos.Offset)
		}
	}
	for name, nodes := range ast.Scope.Nodes {
		for _, n := range nodes {
			switch x := n.(type) {
			case *cc.Enumerator:
				pos := x.Token.Position()
				c.add(&c.constants, name, pos.Filename, pos.Offset)
			case *cc.Declarator:
				pos := x.NameTok().Position()
				switch {
				case x.IsTypename():
					c.add(&c.types, name, pos.Filename, pos.Offset)
				case x.Type().Kind() == cc.Function:
					c.add(&c.functions, name, pos.Filename, pos.Offset)
				}
			}
		}
	}

	return c.header(path), nil
}

func localRoots(path string, includeDirs []string) ([]string, error) {
	roots := make([]string, 0, len(includeDirs)+1)
	for _, dir := range append([]string{filepath.Dir(path)}, includeDirs...) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

type decl struct {
	name   string
	file   string
	offset int
}

type declCollector struct {
	roots     []string
	seen      map[string]bool
	constants []decl
	types     []decl
	functions []decl
}

// local reports whether file lies under one of the roots. Sources such as
// <predefined> and <builtin> are never local.
func (c *declCollector) local(file string) bool {
	if file == "" || strings.HasPrefix(file, "<") {
		return false
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	for _, root := range c.roots {
		if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

func (c *declCollector) add(list *[]decl, name, file string, offset int) {
	if c.seen[name] || !c.local(file) {
		return
	}
	c.seen[name] = true
	*list = append(*list, decl{name: name, file: file, offset: offset})
}

// header orders declarations by file and then by position in the file.
// The scanned header comes first and the remaining files sort by path.
func (c *declCollector) header(path string) *Header {
	files := []string{path}
	for _, list := range [][]decl{c.constants, c.types, c.functions} {
		for _, d := range list {
			if !slices.Contains(files, d.file) {
				files = append(files, d.file)
			}
		}
	}
	sort.Strings(files[1:])

	index := map[string]int{}
	for i, f := range files {
		index[f] = i
	}
	names := func(list []decl) []string {
		sort.Slice(list, func(i, j int) bool {
			if a, b := index[list[i].file], index[list[j].file]; a != b {
				return a < b
			}
			return list[i].offset < list[j].offset
		})
		out := make([]string, 0, len(list))
		for _, d := range list {
			out = append(out, d.name)
		}
		return out
	}

	return &Header{
		Path:      path,
		Files:     files,
		Constants: names(c.constants),
		Types:     names(c.types),
		Functions: names(c.functions),
	}
}

// Filter returns the declarations whose names match one of the allowlist
// patterns. An invalid pattern is an error.
func (h *Header) Filter(patterns []string) (*Header, error) {
	allow, err := compileAllowlist(patterns)
	if err != nil {
		return nil, err
	}

	return &Header{
		Path:      h.Path,
		Files:     h.Files,
		Constants: allow.keep(h.Constants),
		Types:     allow.keep(h.Types),
		Functions: allow.keep(h.Functions),
	}, nil
}

type allowlist []*regexp.Regexp

func compileAllowlist(patterns []string) (allowlist, error) {
	allow := make(allowlist, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid allowlist pattern %q: %w", p, err)
		}
		allow = append(allow, re)
	}
	return allow, nil
}

func (a allowlist) match(name string) bool {
	for _, re := range a {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (a allowlist) keep(names []string) []string {
	var out []string
	for _, name := range names {
		if a.match(name) {
			out = append(out, name)
		}
	}
	return out
}

// Empty reports whether the header has no declarations.
func (h *Header) Empty() bool {
	return len(h.Constants) == 0 && len(h.Types) == 0 && len(h.Functions) == 0
}

// Symbols returns the sorted function names.
func (h *Header) Symbols() []string {
	names := slices.Clone(h.Functions)
	sort.Strings(names)
	return names
}
