//go:build cgo && !((lzham_static && !lzham_dynamic) || ((windows || darwin || musl) && ((lzham_static && lzham_dynamic) || (!lzham_static && !lzham_dynamic))))

package lzham

// Shared libraries installed by "lzham-build build --dynamic". The install
// directory is recorded as an rpath so tests and tools run in place.

/*
#cgo linux,amd64,!musl LDFLAGS: -L${SRCDIR}/native/shared/linux-amd64/lib -Wl,-rpath,${SRCDIR}/native/shared/linux-amd64/lib
#cgo linux,arm64,!musl LDFLAGS: -L${SRCDIR}/native/shared/linux-arm64/lib -Wl,-rpath,${SRCDIR}/native/shared/linux-arm64/lib
#cgo linux,amd64,musl LDFLAGS: -L${SRCDIR}/native/shared/linux-amd64-musl/lib -Wl,-rpath,${SRCDIR}/native/shared/linux-amd64-musl/lib
#cgo linux,arm64,musl LDFLAGS: -L${SRCDIR}/native/shared/linux-arm64-musl/lib -Wl,-rpath,${SRCDIR}/native/shared/linux-arm64-musl/lib
#cgo darwin,amd64 LDFLAGS: -L${SRCDIR}/native/shared/darwin-amd64/lib -Wl,-rpath,${SRCDIR}/native/shared/darwin-amd64/lib
#cgo darwin,arm64 LDFLAGS: -L${SRCDIR}/native/shared/darwin-arm64/lib -Wl,-rpath,${SRCDIR}/native/shared/darwin-arm64/lib
#cgo windows,amd64 LDFLAGS: -L${SRCDIR}/native/shared/windows-amd64/lib
#cgo LDFLAGS: -llzhamdll -llzhamcomp -llzhamdecomp
#cgo darwin LDFLAGS: -lc++
#cgo linux windows LDFLAGS: -lstdc++
*/
import "C"

const linkage = "dynamic"
