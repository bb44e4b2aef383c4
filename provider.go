package lzham

// Provider is one way of reaching the native codec.
type Provider interface {
	// Name identifies the provider, e.g. "cgo-static" or "purego".
	Name() string

	// Compress compresses src into dst at the default level and returns
	// the number of bytes written.
	Compress(dst, src []byte) (int, error)

	// CompressLevel is Compress with an explicit level.
	CompressLevel(dst, src []byte, level Level) (int, error)

	// Uncompress decompresses src into dst and returns the number of bytes
	// written.
	Uncompress(dst, src []byte) (int, error)

	// CompressBound returns the worst-case compressed size of n bytes.
	CompressBound(n int) int

	// Version returns the native library version (LZHAM_DLL_VERSION).
	Version() uint32

	// ZVersion returns the zlib-compatible API version string.
	ZVersion() string
}

var provider = newProvider()

// DefaultProvider returns the provider selected for this build.
func DefaultProvider() Provider {
	return provider
}
