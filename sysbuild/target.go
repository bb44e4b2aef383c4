package sysbuild

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform constants
const (
	platformWindows = "windows"
	platformDarwin  = "darwin"
	platformLinux   = "linux"
)

// Environment constants
const (
	envGNU  = "gnu"
	envMusl = "musl"
	envMSVC = "msvc"
)

// Triple identifies the platform the codec is built for, in
// arch-vendor-os-env form (e.g. x86_64-unknown-linux-gnu).
type Triple struct {
	Arch   string
	Vendor string
	OS     string
	Env    string
}

var knownOS = map[string]struct{}{
	platformLinux:   {},
	platformDarwin:  {},
	platformWindows: {},
	"freebsd":       {},
	"netbsd":        {},
	"openbsd":       {},
	"android":       {},
	"ios":           {},
}

var archToGo = map[string]string{
	"x86_64":      "amd64",
	"amd64":       "amd64",
	"aarch64":     "arm64",
	"arm64":       "arm64",
	"i386":        "386",
	"i586":        "386",
	"i686":        "386",
	"arm":         "arm",
	"armv6":       "arm",
	"armv7":       "arm",
	"riscv64":     "riscv64",
	"riscv64gc":   "riscv64",
	"powerpc64le": "ppc64le",
	"s390x":       "s390x",
}

var goToArch = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"386":     "i686",
	"arm":     "armv7",
	"riscv64": "riscv64gc",
	"ppc64le": "powerpc64le",
	"s390x":   "s390x",
}

// ParseTriple parses a target triple such as x86_64-unknown-linux-gnu,
// x86_64-apple-darwin, x86_64-pc-windows-msvc or aarch64-linux-musl.
//
// OS names are normalized: "macos", versioned "macosxNN.N" and "darwinNN"
// become "darwin", and "mingw32" becomes "windows" with the gnu environment
// (x86_64-w64-mingw32).
func ParseTriple(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	for _, p := range parts {
		if p == "" {
			return Triple{}, fmt.Errorf("invalid target triple %q", s)
		}
	}

	var t Triple
	switch len(parts) {
	case 2:
		t = Triple{Arch: parts[0], OS: parts[1]}
	case 3:
		if _, ok := knownOS[normalizeOS(parts[1])]; ok {
			t = Triple{Arch: parts[0], OS: parts[1], Env: parts[2]}
		} else {
			t = Triple{Arch: parts[0], Vendor: parts[1], OS: parts[2]}
		}
	case 4:
		t = Triple{Arch: parts[0], Vendor: parts[1], OS: parts[2], Env: parts[3]}
	default:
		return Triple{}, fmt.Errorf("invalid target triple %q: expected 2 to 4 components", s)
	}

	if strings.HasPrefix(t.OS, "mingw") && t.Env == "" {
		t.Env = envGNU
	}
	t.OS = normalizeOS(t.OS)
	if _, ok := knownOS[t.OS]; !ok {
		return Triple{}, fmt.Errorf("invalid target triple %q: unknown operating system %q", s, t.OS)
	}

	return t, nil
}

func normalizeOS(os string) string {
	switch {
	case strings.HasPrefix(os, "macos"), strings.HasPrefix(os, platformDarwin):
		return platformDarwin
	case strings.HasPrefix(os, "mingw"):
		return platformWindows
	case strings.HasPrefix(os, "ios"):
		return "ios"
	default:
		return os
	}
}

// detectMusl reports whether the host C library is musl.
// Tests replace it.
var detectMusl = func() bool {
	matches, _ := filepath.Glob("/lib/ld-musl-*.so.1")
	return len(matches) > 0
}

// HostTriple returns the triple of the machine running the build.
//
// Windows hosts report the gnu environment because cgo requires a
// MinGW toolchain there.
func HostTriple() Triple {
	return tripleFor(runtime.GOOS, runtime.GOARCH, runtime.GOOS == platformLinux && detectMusl())
}

func tripleFor(goos, goarch string, musl bool) Triple {
	arch := goToArch[goarch]
	if arch == "" {
		arch = goarch
	}

	switch goos {
	case platformDarwin:
		return Triple{Arch: arch, Vendor: "apple", OS: platformDarwin}
	case platformWindows:
		return Triple{Arch: arch, Vendor: "pc", OS: platformWindows, Env: envGNU}
	case platformLinux:
		env := envGNU
		if musl {
			env = envMusl
		}
		return Triple{Arch: arch, Vendor: "unknown", OS: platformLinux, Env: env}
	default:
		return Triple{Arch: arch, Vendor: "unknown", OS: goos}
	}
}

// String returns the triple in arch-vendor-os[-env] form.
func (t Triple) String() string {
	parts := []string{t.Arch}
	if t.Vendor != "" {
		parts = append(parts, t.Vendor)
	}
	parts = append(parts, t.OS)
	if t.Env != "" {
		parts = append(parts, t.Env)
	}
	return strings.Join(parts, "-")
}

// IsZero reports whether the triple is unset.
func (t Triple) IsZero() bool {
	return t == Triple{}
}

// GOOS returns the Go operating system name for the triple.
func (t Triple) GOOS() string {
	return t.OS
}

// GOARCH returns the Go architecture name for the triple, or the raw
// architecture when no mapping exists.
func (t Triple) GOARCH() string {
	if goarch, ok := archToGo[t.Arch]; ok {
		return goarch
	}
	if strings.HasPrefix(t.Arch, "armv") {
		return "arm"
	}
	return t.Arch
}

// IsMusl reports whether the triple targets the musl C library.
func (t Triple) IsMusl() bool {
	return strings.HasPrefix(t.Env, envMusl)
}

// IsMSVC reports whether the triple targets the MSVC toolchain.
func (t Triple) IsMSVC() bool {
	return t.OS == platformWindows && t.Env == envMSVC
}

// IsWindowsGNU reports whether the triple targets Windows with a GNU toolchain.
func (t Triple) IsWindowsGNU() bool {
	return t.OS == platformWindows && strings.HasPrefix(t.Env, envGNU)
}

// PlatformDir returns the directory name used for this triple's artifacts,
// e.g. linux-amd64, linux-arm64-musl or darwin-arm64.
func (t Triple) PlatformDir() string {
	dir := t.GOOS() + "-" + t.GOARCH()
	if t.IsMusl() {
		dir += "-" + envMusl
	}
	if t.IsMSVC() {
		dir += "-" + envMSVC
	}
	return dir
}

// BindingFileName returns the generated declaration file name for the
// triple: {os}.{ext}, or {os}_{env}.{ext} when the environment is set.
func (t Triple) BindingFileName(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if t.Env == "" {
		return t.OS + "." + ext
	}
	return t.OS + "_" + t.Env + "." + ext
}

// cmakeSystemName returns the CMAKE_SYSTEM_NAME value for the triple.
func (t Triple) cmakeSystemName() string {
	switch t.OS {
	case platformLinux:
		return "Linux"
	case platformDarwin:
		return "Darwin"
	case platformWindows:
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return t.OS
	}
}
