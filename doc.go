// Package lzham exposes the zlib-compatible API of the LZHAM codec to Go.
//
// The codec itself is C++ and is built from the vendored lzham_codec tree by
// cmd/lzham-build (package sysbuild). This package only links against the
// result and converts between Go slices and the C buffer/length pairs.
//
// # Building
//
// The codec sources are the lzham_codec git submodule. Fetch them once
// after cloning, then build:
//
//	git submodule update --init
//	mage build
//
// "mage native" builds the codec and records its linker settings in
// native/link.env; "mage build" and "mage test" link with those settings.
//
// # Basic Usage
//
//	src := []byte("Hello, LZHAM!")
//
//	dst := make([]byte, max(2*len(src), lzham.CompressBound(len(src))))
//	n, err := lzham.Compress(dst, src)
//	if err != nil {
//	    return err
//	}
//
//	out := make([]byte, len(src))
//	m, err := lzham.Uncompress(out, dst[:n])
//
// Encode and Decode wrap the same calls with allocated buffers.
//
// The caller owns every buffer. A destination that is too small is reported
// as StatusBufError; output is never silently truncated.
//
// # Providers
//
// Three implementations sit behind the Provider interface, selected at
// build time:
//   - cgo: links the native libraries statically or dynamically, chosen by
//     the lzham_static and lzham_dynamic build tags and the platform default
//   - purego: loads liblzhamdll at run time when cgo is disabled on Linux
//     and macOS (override the path with LZHAM_LIBRARY_PATH)
//   - unavailable: every call returns ErrUnavailable
//
// # Linkage
//
// Without tags, Windows, macOS and musl builds link statically and other
// platforms link dynamically. Pass -tags=lzham_static or -tags=lzham_dynamic
// to override; giving both falls back to the platform default. The tags
// printed by "lzham-build link --emit env" always match the libraries that
// were built.
//
// # Generated Declarations
//
// linux_gnu.go, linux_musl.go, darwin.go and windows_gnu.go are produced by
// "lzham-build generate" from include/wrapper.h and are checked in.
package lzham
