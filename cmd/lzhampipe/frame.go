package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errShortFrame = errors.New("truncated frame header")

func writeFrame(w io.Writer, size uint64, payload []byte) error {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], size)
	if _, err := w.Write(hdr[:n]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// readFrame reads the length prefix and the rest of r as the payload.
func readFrame(r *bufio.Reader, maxSize uint64) (uint64, []byte, error) {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil, errShortFrame
		}
		return 0, nil, err
	}
	if size > maxSize {
		return 0, nil, fmt.Errorf("frame of %d bytes exceeds limit of %d", size, maxSize)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return 0, nil, err
	}
	return size, payload, nil
}
