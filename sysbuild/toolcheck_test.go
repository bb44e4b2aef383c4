package sysbuild

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCheckRequiredTools(t *testing.T) {
	origLookPath := lookPath
	defer func() { lookPath = origLookPath }()

	available := map[string]bool{"cmake": true, "g++": true}
	lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	testCases := []struct {
		name         string
		requirements []ToolRequirement
		errContains  string
	}{
		{
			name:         "primary found",
			requirements: []ToolRequirement{{Name: "cmake"}},
		},
		{
			name:         "alternative found",
			requirements: []ToolRequirement{{Name: "c++", Alternatives: []string{"clang++", "g++"}}},
		},
		{
			name:         "optional missing",
			requirements: []ToolRequirement{{Name: "ninja", Optional: true}},
		},
		{
			name:         "single missing",
			requirements: []ToolRequirement{{Name: "clang", Purpose: "cross compiler"}},
			errContains:  "clang (cross compiler) not found in PATH",
		},
		{
			name:         "multiple missing",
			requirements: []ToolRequirement{{Name: "clang"}, {Name: "ninja", Purpose: "generator"}},
			errContains:  "missing required tools: clang, ninja (generator)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckRequiredTools(tc.requirements)
			if tc.errContains == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errContains) {
				t.Errorf("Expected error containing %q, got %v", tc.errContains, err)
			}
		})
	}
}

func TestToolRequirementFind(t *testing.T) {
	origLookPath := lookPath
	defer func() { lookPath = origLookPath }()

	lookPath = func(name string) (string, error) {
		if name == "clang++" {
			return "/opt/llvm/bin/clang++", nil
		}
		return "", errors.New("not found")
	}

	path, ok := ToolRequirement{Name: "c++", Alternatives: []string{"g++", "clang++"}}.Find()
	if !ok || path != "/opt/llvm/bin/clang++" {
		t.Errorf("Find() = %q, %v", path, ok)
	}
	if _, ok := (ToolRequirement{Name: "cl"}).Find(); ok {
		t.Error("Expected cl to be missing")
	}
}

func TestAllowlist(t *testing.T) {
	allow, err := compileAllowlist(DefaultAllow)
	if err != nil {
		t.Fatalf("DefaultAllow does not compile: %v", err)
	}

	testCases := []struct {
		name     string
		expected bool
	}{
		{"lzham_z_compress", true},
		{"LZHAM_Z_OK", true},
		{"lzham_get_version", true},
		{"lzham_get_version_func", false},
		{"lzham_uint32", true},
		{"lzham_compress_init", false},
	}

	for _, tc := range testCases {
		if got := allow.match(tc.name); got != tc.expected {
			t.Errorf("match(%s) = %v, expected %v", tc.name, got, tc.expected)
		}
	}

	if _, err := compileAllowlist([]string{`([`}); err == nil {
		t.Error("Expected error for an invalid pattern")
	}
}

func TestBuildError(t *testing.T) {
	cause := errors.New("exit status 2")
	err := BuildError("cmake build", []string{"line one", "line two"}, cause)
	expected := "cmake build failed: exit status 2\n\nOutput:\nline one\nline two"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be unwrapped")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Step != "cmake build" {
		t.Errorf("Expected *ToolError, got %T", err)
	}

	if got := BuildError("cmake build", nil, cause).Error(); got != "cmake build failed: exit status 2" {
		t.Errorf("Unexpected error without output: %q", got)
	}
	if got := BuildError("cmake build", nil, nil).Error(); got != "cmake build failed" {
		t.Errorf("Unexpected error without cause: %q", got)
	}
}

func TestBuildErrorKeepsOutputTail(t *testing.T) {
	output := make([]string, maxErrorOutput+10)
	for i := range output {
		output[i] = fmt.Sprintf("line %d", i)
	}

	msg := BuildError("cmake build", output, nil).Error()
	if strings.Contains(msg, "line 9\n") {
		t.Error("Expected the head of the output to be dropped")
	}
	if !strings.HasSuffix(msg, fmt.Sprintf("line %d", len(output)-1)) {
		t.Errorf("Expected the last line at the end, got %q", msg)
	}
	if !strings.Contains(msg, fmt.Sprintf("Last %d lines", maxErrorOutput)) {
		t.Errorf("Expected a truncation note, got %q", msg)
	}
}
