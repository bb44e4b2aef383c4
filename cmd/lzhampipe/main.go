// Command lzhampipe compresses stdin to stdout, or decompresses with -d.
//
// Usage example:
//
//	cat test.tar | lzhampipe > test.tar.lzham
//	cat test.tar.lzham | lzhampipe -d > test.tar
//
// A frame is the uvarint length of the original data followed by the
// LZHAM zlib-compatible stream.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	lzham "github.com/contriboss/lzham-go"
)

const defaultMaxSize = 1 << 30

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lzhampipe:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		decompress bool
		level      int
		maxSize    uint64
	)

	cmd := &cobra.Command{
		Use:           "lzhampipe",
		Short:         "Pipe-only LZHAM encoder and decoder",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if decompress {
				return decodeStream(out, in, maxSize)
			}
			if !lzham.Level(level).Valid() {
				return fmt.Errorf("invalid level %d", level)
			}
			return encodeStream(out, in, lzham.Level(level))
		},
	}

	cmd.Flags().BoolVarP(&decompress, "decompress", "d", false, "decompression mode")
	cmd.Flags().IntVarP(&level, "level", "l", int(lzham.DefaultCompression), "compression level, 0-10 or -1 for the default")
	cmd.Flags().Uint64Var(&maxSize, "max-size", defaultMaxSize, "largest decoded frame accepted")
	return cmd
}

func encodeStream(w io.Writer, r io.Reader, level lzham.Level) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	payload, err := lzham.Encode(src, level)
	if err != nil {
		return err
	}
	return writeFrame(w, uint64(len(src)), payload)
}

func decodeStream(w io.Writer, r *bufio.Reader, maxSize uint64) error {
	size, payload, err := readFrame(r, maxSize)
	if err != nil {
		return err
	}
	out, err := lzham.Decode(payload, int(size))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
