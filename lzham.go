package lzham

import "fmt"

// Compress compresses src into dst at the default level and returns the
// number of bytes written. A nonzero native status is returned as a Status.
func Compress(dst, src []byte) (int, error) {
	return provider.Compress(dst, src)
}

// CompressLevel compresses src into dst at the given level.
func CompressLevel(dst, src []byte, level Level) (int, error) {
	return provider.CompressLevel(dst, src, level)
}

// Uncompress decompresses src into dst and returns the number of bytes
// written. dst must be large enough for the whole output.
func Uncompress(dst, src []byte) (int, error) {
	return provider.Uncompress(dst, src)
}

// CompressBound returns an upper bound on the compressed size of n bytes.
func CompressBound(n int) int {
	return provider.CompressBound(n)
}

// Version returns the native library version.
func Version() uint32 {
	return provider.Version()
}

// ZVersion returns the version string of the zlib-compatible API.
func ZVersion() string {
	return provider.ZVersion()
}

// Encode compresses src into a newly allocated slice.
func Encode(src []byte, level Level) ([]byte, error) {
	dst := make([]byte, boundFor(len(src)))
	n, err := CompressLevel(dst, src, level)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Decode decompresses src, whose uncompressed length is size, into a newly
// allocated slice.
func Decode(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("lzham: negative size %d", size)
	}
	dst := make([]byte, size)
	n, err := Uncompress(dst, src)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("lzham: decoded %d bytes, expected %d", n, size)
	}
	return dst, nil
}

// boundFor returns a destination size that always fits compressed output,
// including the small-input case where the stream header dominates.
func boundFor(n int) int {
	return max(2*n, CompressBound(n))
}

// deflateBound mirrors lzham_z_deflateBound for providers that cannot ask
// the library.
func deflateBound(n int) int {
	return max(128+(n*110)/100, 128+n+((n/(31*1024))+1)*5)
}
