//go:build !cgo && (linux || darwin) && (amd64 || arm64)

package lzham

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libraryPathEnv overrides the shared library loaded by the purego provider.
const libraryPathEnv = "LZHAM_LIBRARY_PATH"

// requiredSymbols are the entry points the provider binds.
var requiredSymbols = []string{
	"lzham_get_version",
	"lzham_z_compress",
	"lzham_z_compress2",
	"lzham_z_compressBound",
	"lzham_z_uncompress",
	"lzham_z_version",
}

// puregoProvider loads liblzhamdll on first use without cgo.
type puregoProvider struct {
	once sync.Once
	err  error

	compress      func(dst unsafe.Pointer, dstLen *lzham_z_ulong, src unsafe.Pointer, srcLen lzham_z_ulong) int32
	compress2     func(dst unsafe.Pointer, dstLen *lzham_z_ulong, src unsafe.Pointer, srcLen lzham_z_ulong, level int32) int32
	uncompress    func(dst unsafe.Pointer, dstLen *lzham_z_ulong, src unsafe.Pointer, srcLen lzham_z_ulong) int32
	compressBound func(srcLen lzham_z_ulong) lzham_z_ulong
	getVersion    func() lzham_uint32
	zVersion      func() string
}

func newProvider() Provider {
	return &puregoProvider{}
}

func (p *puregoProvider) Name() string {
	return "purego"
}

// libraryPath returns the library to open.
func libraryPath() string {
	if path := os.Getenv(libraryPathEnv); path != "" {
		return path
	}
	if runtime.GOOS == "darwin" {
		return "liblzhamdll.dylib"
	}
	return "liblzhamdll.so"
}

func (p *puregoProvider) load() error {
	p.once.Do(func() {
		path := libraryPath()
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			p.err = fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
			return
		}

		for _, sym := range requiredSymbols {
			if !slices.Contains(nativeSymbols, sym) {
				p.err = fmt.Errorf("%w: %s is not declared in the generated bindings", ErrUnavailable, sym)
				return
			}
			if _, err := purego.Dlsym(handle, sym); err != nil {
				p.err = fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
				return
			}
		}

		purego.RegisterLibFunc(&p.compress, handle, "lzham_z_compress")
		purego.RegisterLibFunc(&p.compress2, handle, "lzham_z_compress2")
		purego.RegisterLibFunc(&p.uncompress, handle, "lzham_z_uncompress")
		purego.RegisterLibFunc(&p.compressBound, handle, "lzham_z_compressBound")
		purego.RegisterLibFunc(&p.getVersion, handle, "lzham_get_version")
		purego.RegisterLibFunc(&p.zVersion, handle, "lzham_z_version")
	})
	return p.err
}

func (p *puregoProvider) Compress(dst, src []byte) (int, error) {
	if err := p.load(); err != nil {
		return 0, err
	}
	destLen := lzham_z_ulong(len(dst))
	rc := p.compress(slicePtr(dst), &destLen, slicePtr(src), lzham_z_ulong(len(src)))
	return finish(rc, destLen, dst, src)
}

func (p *puregoProvider) CompressLevel(dst, src []byte, level Level) (int, error) {
	if err := p.load(); err != nil {
		return 0, err
	}
	destLen := lzham_z_ulong(len(dst))
	rc := p.compress2(slicePtr(dst), &destLen, slicePtr(src), lzham_z_ulong(len(src)), int32(level))
	return finish(rc, destLen, dst, src)
}

func (p *puregoProvider) Uncompress(dst, src []byte) (int, error) {
	if err := p.load(); err != nil {
		return 0, err
	}
	destLen := lzham_z_ulong(len(dst))
	rc := p.uncompress(slicePtr(dst), &destLen, slicePtr(src), lzham_z_ulong(len(src)))
	return finish(rc, destLen, dst, src)
}

func (p *puregoProvider) CompressBound(n int) int {
	if p.load() != nil {
		return deflateBound(n)
	}
	return int(p.compressBound(lzham_z_ulong(n)))
}

func (p *puregoProvider) Version() uint32 {
	if p.load() != nil {
		return 0
	}
	return uint32(p.getVersion())
}

func (p *puregoProvider) ZVersion() string {
	if p.load() != nil {
		return ""
	}
	return p.zVersion()
}

// finish keeps the buffers alive across the foreign call and converts the
// return code.
func finish(rc int32, destLen lzham_z_ulong, dst, src []byte) (int, error) {
	runtime.KeepAlive(dst)
	runtime.KeepAlive(src)
	if err := statusError(int(rc)); err != nil {
		return 0, err
	}
	return int(destLen), nil
}

func slicePtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
