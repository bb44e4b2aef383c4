package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contriboss/lzham-go/sysbuild"
)

// emitFlags are shared by build and link. Both also take --clean-first,
// which loadOptions reads into the build flags.
type emitFlags struct {
	format   sysbuild.Format
	pkg      string
	cgoDir   string
	copyLibs []string
}

func addEmitFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("emit", string(sysbuild.FormatLines), "directive format: lines, env or cgo")
	f.String("package", sysbuild.DefaultPackage, "package name of the emitted cgo file")
	f.String("cgo-dir", ".", "directory the emitted cgo file is written to")
	f.StringSlice("copy-libs", nil, "copy the shared libraries of a dynamic build into these directories")
	f.Bool("clean-first", false, "run the clean target before building the codec")
}

func readEmitFlags(cmd *cobra.Command) (*emitFlags, error) {
	f := cmd.Flags()

	name, err := f.GetString("emit")
	if err != nil {
		return nil, err
	}
	format, err := sysbuild.ParseFormat(name)
	if err != nil {
		return nil, err
	}

	out := &emitFlags{format: format}
	if out.pkg, err = f.GetString("package"); err != nil {
		return nil, err
	}
	if out.cgoDir, err = f.GetString("cgo-dir"); err != nil {
		return nil, err
	}
	if out.copyLibs, err = f.GetStringSlice("copy-libs"); err != nil {
		return nil, err
	}
	return out, nil
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate bindings if requested, then build the codec and emit linker directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLink(cmd, true)
		},
	}
	cmd.Flags().Bool("generate-binding", false, "regenerate the Go declarations before building")
	addEmitFlags(cmd)
	return cmd
}

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build the codec and emit linker directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLink(cmd, false)
		},
	}
	addEmitFlags(cmd)
	return cmd
}

func runLink(cmd *cobra.Command, allowGenerate bool) error {
	emit, err := readEmitFlags(cmd)
	if err != nil {
		return err
	}

	opts, log, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if allowGenerate && opts.GenerateBinding {
		gen := sysbuild.NewBindingGenerator(opts, log)
		path, err := gen.Generate(ctx, opts.Target)
		if err != nil {
			return fmt.Errorf("binding generation failed: %w", err)
		}
		okColor.Fprintf(cmd.ErrOrStderr(), "generated %s\n", path)
	}

	configurator := sysbuild.NewLinkConfigurator(opts, log)
	result, err := configurator.Run(ctx)
	if err != nil {
		if result != nil && result.Build != nil && !opts.Verbose {
			dumpOutput(cmd.ErrOrStderr(), result.Build.Output)
		}
		return err
	}

	if len(emit.copyLibs) > 0 {
		copied, err := sysbuild.CopySharedLibraries(result.Build, emit.copyLibs...)
		if err != nil {
			return err
		}
		if len(copied) == 0 {
			log.WithField("linkage", result.Decision.Linkage).Info("no shared libraries to copy")
		}
		for _, path := range copied {
			log.WithField("file", path).Info("copied shared library")
		}
	}

	if err := writeDirectives(cmd, log, result.Directives, emit); err != nil {
		return err
	}

	okColor.Fprintf(cmd.ErrOrStderr(), "lzham %s build ready for %s\n", result.Decision.Linkage, result.Decision.Target)
	return nil
}

// writeDirectives prints lines and env output, and writes a cgo file into
// the cgo directory.
func writeDirectives(cmd *cobra.Command, log logrus.FieldLogger, d sysbuild.Directives, emit *emitFlags) error {
	if emit.format != sysbuild.FormatCgo {
		return d.Write(cmd.OutOrStdout(), emit.format, "")
	}

	if err := os.MkdirAll(emit.cgoDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", emit.cgoDir, err)
	}
	path := filepath.Join(emit.cgoDir, d.CgoFileName())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f, sysbuild.FormatCgo, emit.pkg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.WithField("file", path).Info("wrote cgo directives")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func dumpOutput(w io.Writer, lines []string) {
	if len(lines) == 0 {
		return
	}
	warnColor.Fprintln(w, "build output:")
	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}
}
