//go:build !cgo && !((linux || darwin) && (amd64 || arm64))

package lzham

// unavailableProvider is used where neither cgo nor purego can reach the codec.
type unavailableProvider struct{}

func newProvider() Provider {
	return unavailableProvider{}
}

func (unavailableProvider) Name() string { return "unavailable" }

func (unavailableProvider) Compress([]byte, []byte) (int, error) { return 0, ErrUnavailable }

func (unavailableProvider) CompressLevel([]byte, []byte, Level) (int, error) {
	return 0, ErrUnavailable
}

func (unavailableProvider) Uncompress([]byte, []byte) (int, error) { return 0, ErrUnavailable }

func (unavailableProvider) CompressBound(n int) int { return deflateBound(n) }

func (unavailableProvider) Version() uint32 { return 0 }

func (unavailableProvider) ZVersion() string { return "" }
