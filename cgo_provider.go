//go:build cgo

package lzham

/*
#cgo CFLAGS: -I${SRCDIR}/include -I${SRCDIR}/lzham_codec/include
#include "wrapper.h"
*/
import "C"

import "unsafe"

type cgoProvider struct{}

func newProvider() Provider {
	return cgoProvider{}
}

func (cgoProvider) Name() string {
	return "cgo-" + linkage
}

func (cgoProvider) Compress(dst, src []byte) (int, error) {
	destLen := C.lzham_z_ulong(len(dst))
	rc := C.lzham_z_compress(bytePtr(dst), &destLen, bytePtr(src), C.lzham_z_ulong(len(src)))
	if err := statusError(int(rc)); err != nil {
		return 0, err
	}
	return int(destLen), nil
}

func (cgoProvider) CompressLevel(dst, src []byte, level Level) (int, error) {
	destLen := C.lzham_z_ulong(len(dst))
	rc := C.lzham_z_compress2(bytePtr(dst), &destLen, bytePtr(src), C.lzham_z_ulong(len(src)), C.int(level))
	if err := statusError(int(rc)); err != nil {
		return 0, err
	}
	return int(destLen), nil
}

func (cgoProvider) Uncompress(dst, src []byte) (int, error) {
	destLen := C.lzham_z_ulong(len(dst))
	rc := C.lzham_z_uncompress(bytePtr(dst), &destLen, bytePtr(src), C.lzham_z_ulong(len(src)))
	if err := statusError(int(rc)); err != nil {
		return 0, err
	}
	return int(destLen), nil
}

func (cgoProvider) CompressBound(n int) int {
	return int(C.lzham_z_compressBound(C.lzham_z_ulong(n)))
}

func (cgoProvider) Version() uint32 {
	return uint32(C.lzham_get_version())
}

func (cgoProvider) ZVersion() string {
	return C.GoString(C.lzham_z_version())
}

// bytePtr returns the address of the first byte, or nil for an empty slice.
func bytePtr(b []byte) *C.uchar {
	if len(b) == 0 {
		return nil
	}
	return (*C.uchar)(unsafe.Pointer(&b[0]))
}
