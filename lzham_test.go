package lzham

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

// requireCodec skips the test when the build has no reachable native codec.
func requireCodec(t *testing.T) {
	t.Helper()
	if _, err := Compress(make([]byte, 256), []byte("ping")); errors.Is(err, ErrUnavailable) {
		t.Skipf("native codec unavailable through the %s provider: %v", DefaultProvider().Name(), err)
	}
}

func TestHelloRoundTrip(t *testing.T) {
	requireCodec(t)

	src := []byte("Hello, LZHAM!")
	if len(src) != 13 {
		t.Fatalf("Unexpected fixture length %d", len(src))
	}

	compressed := make([]byte, 26)
	n, err := Compress(compressed, src)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if n == 0 || n > len(compressed) {
		t.Fatalf("Compress wrote %d bytes into %d", n, len(compressed))
	}

	out := make([]byte, len(src))
	m, err := Uncompress(out, compressed[:n])
	if err != nil {
		t.Fatalf("Uncompress failed: %v", err)
	}
	if m != len(src) || !bytes.Equal(out, src) {
		t.Errorf("Expected %q, got %q", src, out[:m])
	}
}

func TestRandomRoundTrip(t *testing.T) {
	requireCodec(t)

	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 2, 17, 255, 1024, 4096, 65536, 200000} {
		src := make([]byte, size)
		rng.Read(src)

		// Half the inputs are compressible text-like data.
		if size%2 == 0 {
			for i := range src {
				src[i] = 'a' + src[i]%4
			}
		}

		dst := make([]byte, max(2*size, CompressBound(size)))
		n, err := Compress(dst, src)
		if err != nil {
			t.Fatalf("size %d: Compress failed: %v", size, err)
		}

		out := make([]byte, size)
		m, err := Uncompress(out, dst[:n])
		if err != nil {
			t.Fatalf("size %d: Uncompress failed: %v", size, err)
		}
		if m != size || !bytes.Equal(out, src) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
	}
}

func TestCompressLevels(t *testing.T) {
	requireCodec(t)

	src := bytes.Repeat([]byte("lzham level test "), 512)
	for _, level := range []Level{NoCompression, BestSpeed, 5, BestCompression, UberCompression, DefaultCompression} {
		compressed, err := Encode(src, level)
		if err != nil {
			t.Fatalf("level %d: Encode failed: %v", level, err)
		}

		out, err := Decode(compressed, len(src))
		if err != nil {
			t.Fatalf("level %d: Decode failed: %v", level, err)
		}
		if !bytes.Equal(out, src) {
			t.Fatalf("level %d: round trip mismatch", level)
		}
	}
}

func TestUndersizedDestination(t *testing.T) {
	requireCodec(t)

	rng := rand.New(rand.NewSource(2))
	src := make([]byte, 4096)
	rng.Read(src)

	dst := make([]byte, 16)
	_, err := Compress(dst, src)

	var status Status
	if !errors.As(err, &status) {
		t.Fatalf("Expected a Status error, got %v", err)
	}
	if status != StatusBufError {
		t.Errorf("Expected %s, got %s", StatusBufError, status)
	}

	compressed, err := Encode(src, DefaultCompression)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := make([]byte, len(src)/2)
	if _, err := Uncompress(out, compressed); !errors.As(err, &status) {
		t.Errorf("Expected a Status error for a short output buffer, got %v", err)
	}
}

func TestUncompressCorruptInput(t *testing.T) {
	requireCodec(t)

	out := make([]byte, 1024)
	_, err := Uncompress(out, []byte("this is not an lzham stream"))

	var status Status
	if !errors.As(err, &status) {
		t.Fatalf("Expected a Status error, got %v", err)
	}
	if status == StatusOK {
		t.Error("Expected a nonzero status")
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	requireCodec(t)

	compressed, err := Encode([]byte("short payload"), BestSpeed)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := Decode(compressed, 64); err == nil {
		t.Error("Expected error when the decoded length differs")
	}
}

func TestVersions(t *testing.T) {
	requireCodec(t)

	if Version() == 0 {
		t.Error("Expected a nonzero library version")
	}
	if ZVersion() == "" {
		t.Error("Expected a zlib API version string")
	}
	if CompressBound(1000) < 1000 {
		t.Errorf("CompressBound(1000) = %d", CompressBound(1000))
	}
}

func TestProviderName(t *testing.T) {
	name := DefaultProvider().Name()
	switch name {
	case "cgo-static", "cgo-dynamic", "purego", "unavailable":
	default:
		t.Errorf("Unexpected provider name %q", name)
	}
}
