//go:build cgo && ((lzham_static && !lzham_dynamic) || ((windows || darwin || musl) && ((lzham_static && lzham_dynamic) || (!lzham_static && !lzham_dynamic))))

package lzham

// Static archives installed by "lzham-build build --static". Dependents come
// first so each archive resolves against the ones after it.

/*
#cgo linux,amd64,!musl LDFLAGS: -L${SRCDIR}/native/static/linux-amd64/lib
#cgo linux,arm64,!musl LDFLAGS: -L${SRCDIR}/native/static/linux-arm64/lib
#cgo linux,amd64,musl LDFLAGS: -L${SRCDIR}/native/static/linux-amd64-musl/lib
#cgo linux,arm64,musl LDFLAGS: -L${SRCDIR}/native/static/linux-arm64-musl/lib
#cgo darwin,amd64 LDFLAGS: -L${SRCDIR}/native/static/darwin-amd64/lib
#cgo darwin,arm64 LDFLAGS: -L${SRCDIR}/native/static/darwin-arm64/lib
#cgo windows,amd64 LDFLAGS: -L${SRCDIR}/native/static/windows-amd64/lib
#cgo LDFLAGS: -llzhamdll -llzhamcomp -llzhamdecomp
#cgo darwin LDFLAGS: -lc++
#cgo linux windows LDFLAGS: -lstdc++
#cgo linux LDFLAGS: -lm -lpthread
*/
import "C"

const linkage = "static"
