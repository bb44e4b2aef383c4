package sysbuild

import (
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

var testIncludeDirs = []string{filepath.Join("testdata", "include")}

// requireCParser skips tests that parse headers when no host C compiler
// is available to configure the parser.
func requireCParser(t *testing.T) {
	t.Helper()
	if _, err := hostCConfig(); err != nil {
		t.Skipf("no host C compiler: %v", err)
	}
}

func scanTestHeader(t *testing.T) *Header {
	t.Helper()
	requireCParser(t)
	h, err := ScanHeader(filepath.Join("testdata", "wrapper", "wrapper.h"), testIncludeDirs)
	if err != nil {
		t.Fatalf("ScanHeader failed: %v", err)
	}
	return h
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}

func TestScanHeaderFollowsIncludes(t *testing.T) {
	h := scanTestHeader(t)

	expected := []string{
		filepath.Join("testdata", "wrapper", "wrapper.h"),
		filepath.Join("testdata", "include", "lzham.h"),
	}
	if !reflect.DeepEqual(h.Files, expected) {
		t.Errorf("Expected files %v, got %v", expected, h.Files)
	}
}

func TestScanHeaderDeclarations(t *testing.T) {
	h := scanTestHeader(t)

	for _, name := range []string{
		"LZHAM_DLL_VERSION",
		"LZHAM_Z_ADLER32_INIT",
		"LZHAM_Z_VERNUM",
		"LZHAM_Z_OK",
		"LZHAM_Z_PARAM_ERROR",
		"LZHAM_Z_TABLE_FLUSH",
		"LZHAM_COMP_LEVEL_FASTER",
		"LZHAM_FORCE_DWORD",
		"LZHAM_MAX_DICT_SIZE_LOG2_X64",
	} {
		if !contains(h.Constants, name) {
			t.Errorf("Expected constant %s", name)
		}
	}

	// String and empty macros are not constants.
	for _, name := range []string{"LZHAM_Z_VERSION", "LZHAM_CDECL", "LZHAM_DLL_EXPORT"} {
		if contains(h.Constants, name) {
			t.Errorf("Did not expect constant %s", name)
		}
	}

	for _, name := range []string{
		"lzham_uint32",
		"lzham_realloc_func",
		"lzham_compress_level",
		"lzham_z_ulong",
		"lzham_z_alloc_func",
		"lzham_z_stream",
		"lzham_z_streamp",
	} {
		if !contains(h.Types, name) {
			t.Errorf("Expected type %s in %v", name, h.Types)
		}
	}
	if contains(h.Types, "lzham_z_stream_s") || contains(h.Types, "next_in") {
		t.Errorf("Struct tags and fields leaked into types: %v", h.Types)
	}

	for _, name := range []string{"lzham_get_version", "lzham_z_version", "lzham_z_compress", "lzham_z_compress2", "lzham_z_uncompress", "lzham_z_compressBound"} {
		if !contains(h.Functions, name) {
			t.Errorf("Expected function %s in %v", name, h.Functions)
		}
	}
}

func TestScanHeaderEnumOrder(t *testing.T) {
	h := scanTestHeader(t)

	index := map[string]int{}
	for i, name := range h.Constants {
		index[name] = i
	}
	ordered := []string{"LZHAM_DLL_VERSION", "LZHAM_MIN_DICT_SIZE_LOG2", "LZHAM_COMP_LEVEL_FASTEST", "LZHAM_COMP_LEVEL_FASTER", "LZHAM_Z_OK", "LZHAM_Z_PARAM_ERROR"}
	for i := 1; i < len(ordered); i++ {
		if index[ordered[i-1]] >= index[ordered[i]] {
			t.Errorf("Expected %s before %s in %v", ordered[i-1], ordered[i], h.Constants)
		}
	}
}

func TestScanHeaderIgnoresSystemHeaders(t *testing.T) {
	h := scanTestHeader(t)

	for _, name := range []string{"size_t", "malloc", "free", "EXIT_FAILURE", "__STDC__"} {
		if contains(h.Constants, name) || contains(h.Types, name) || contains(h.Functions, name) {
			t.Errorf("Declaration %s from outside the include dirs was reported", name)
		}
	}
}

func TestScanHeaderSlashesInStringsAndPaths(t *testing.T) {
	requireCParser(t)
	h, err := ScanHeader(filepath.Join("testdata", "wrapper", "urls.h"), testIncludeDirs)
	if err != nil {
		t.Fatalf("ScanHeader failed: %v", err)
	}

	for _, name := range []string{"LZHAM_AFTER_URL", "LZHAM_SHIFTED"} {
		if !contains(h.Constants, name) {
			t.Errorf("Expected constant %s in %v", name, h.Constants)
		}
	}
	for _, name := range []string{"LZHAM_HOME_URL", "LZHAM_ADD"} {
		if contains(h.Constants, name) {
			t.Errorf("Did not expect constant %s", name)
		}
	}
	if !contains(h.Types, "lzham_url_len") {
		t.Errorf("Expected type from nested include, got %v", h.Types)
	}
	if !contains(h.Functions, "lzham_url_count") {
		t.Errorf("Expected lzham_url_count in %v", h.Functions)
	}

	expected := []string{
		filepath.Join("testdata", "wrapper", "urls.h"),
		filepath.Join("testdata", "include", "nested", "urls_inner.h"),
	}
	if !reflect.DeepEqual(h.Files, expected) {
		t.Errorf("Expected files %v, got %v", expected, h.Files)
	}
}

func TestScanHeaderDeduplicates(t *testing.T) {
	h := scanTestHeader(t)

	seen := map[string]bool{}
	for _, name := range append(append(slices.Clone(h.Constants), h.Types...), h.Functions...) {
		if seen[name] {
			t.Errorf("Duplicate declaration %s", name)
		}
		seen[name] = true
	}
}

func TestScanHeaderMissingInclude(t *testing.T) {
	requireCParser(t)
	_, err := ScanHeader(filepath.Join("testdata", "wrapper", "broken.h"), testIncludeDirs)
	if err == nil {
		t.Fatal("Expected error for missing include")
	}
	if !strings.Contains(err.Error(), "lzham_missing.h") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestScanHeaderMissingFile(t *testing.T) {
	requireCParser(t)
	if _, err := ScanHeader(filepath.Join("testdata", "nope.h"), nil); err == nil {
		t.Fatal("Expected error for missing header")
	}
}

func TestScanHeaderIncludeCycle(t *testing.T) {
	requireCParser(t)
	h, err := ScanHeader(filepath.Join("testdata", "wrapper", "cycle.h"), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(h.Files) != 1 || !contains(h.Constants, "CYCLE_DEPTH") {
		t.Errorf("Unexpected scan result: files=%v constants=%v", h.Files, h.Constants)
	}
}

func TestHeaderFilter(t *testing.T) {
	h, err := scanTestHeader(t).Filter(DefaultAllow)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	for _, name := range h.Constants {
		if !strings.HasPrefix(name, "LZHAM_Z_") {
			t.Errorf("Constant %s should have been filtered", name)
		}
	}
	for _, name := range []string{"lzham_uint8", "lzham_realloc_func", "lzham_compress_level"} {
		if contains(h.Types, name) {
			t.Errorf("Type %s should have been filtered", name)
		}
	}
	if !contains(h.Types, "lzham_uint32") {
		t.Error("Expected lzham_uint32 to pass the allowlist")
	}

	symbols := h.Symbols()
	if symbols[0] != "lzham_get_version" {
		t.Errorf("Expected sorted symbols to start with lzham_get_version, got %v", symbols)
	}
	if h.Empty() {
		t.Error("Filtered header should not be empty")
	}
	none, err := scanTestHeader(t).Filter([]string{`^nothing$`})
	if err != nil || !none.Empty() {
		t.Errorf("Expected empty header for unmatched allowlist, got %v, %v", none, err)
	}

	if _, err := scanTestHeader(t).Filter([]string{`([`}); err == nil {
		t.Error("Expected error for an invalid pattern")
	}
}
