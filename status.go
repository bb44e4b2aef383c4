package lzham

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when no native codec can be reached: the
// package was built without cgo on a platform purego does not cover, or the
// shared library could not be loaded.
var ErrUnavailable = errors.New("lzham: native library unavailable")

// Status is a nonzero return code from the native codec.
//
// The value is passed through unchanged; use errors.As to recover it.
type Status int

// Status codes returned by the zlib-compatible API.
const (
	StatusOK           Status = 0
	StatusStreamEnd    Status = 1
	StatusNeedDict     Status = 2
	StatusErrno        Status = -1
	StatusStreamError  Status = -2
	StatusDataError    Status = -3
	StatusMemError     Status = -4
	StatusBufError     Status = -5
	StatusVersionError Status = -6
	StatusParamError   Status = -10000
)

var statusNames = map[Status]string{
	StatusOK:           "LZHAM_Z_OK",
	StatusStreamEnd:    "LZHAM_Z_STREAM_END",
	StatusNeedDict:     "LZHAM_Z_NEED_DICT",
	StatusErrno:        "LZHAM_Z_ERRNO",
	StatusStreamError:  "LZHAM_Z_STREAM_ERROR",
	StatusDataError:    "LZHAM_Z_DATA_ERROR",
	StatusMemError:     "LZHAM_Z_MEM_ERROR",
	StatusBufError:     "LZHAM_Z_BUF_ERROR",
	StatusVersionError: "LZHAM_Z_VERSION_ERROR",
	StatusParamError:   "LZHAM_Z_PARAM_ERROR",
}

// String returns the header constant name, or the number when unknown.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("%d", int(s))
}

func (s Status) Error() string {
	return fmt.Sprintf("lzham: %s (%d)", s.String(), int(s))
}

// statusError converts a native return code to an error.
func statusError(rc int) error {
	if rc == int(StatusOK) {
		return nil
	}
	return Status(rc)
}

// Level is a compression level for CompressLevel.
type Level int

// Compression levels.
const (
	NoCompression      Level = 0
	BestSpeed          Level = 1
	BestCompression    Level = 9
	UberCompression    Level = 10
	DefaultCompression Level = -1
)

// Valid reports whether the level is accepted by the codec.
func (l Level) Valid() bool {
	return l == DefaultCompression || (l >= NoCompression && l <= UberCompression)
}
