// Command lzham-build builds the vendored LZHAM codec, generates the Go
// declarations for its header and prints the linker directives a
// consuming build needs.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contriboss/lzham-go/sysbuild"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "error: ")
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lzham-build",
		Short:         "Build and link the native LZHAM codec",
		Long:          "lzham-build compiles the vendored LZHAM sources with CMake, generates Go declarations for lzham.h and emits linker directives.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./"+sysbuild.DefaultConfigFile+" when present)")
	flags.BoolP("verbose", "v", false, "log tool invocations and output")
	flags.Bool("static", false, "link the codec statically")
	flags.Bool("dynamic", false, "link the codec dynamically")
	flags.String("target", "", "target triple (default $"+sysbuild.EnvTarget+" or the host)")
	flags.String("source", "", "codec source tree (default "+sysbuild.DefaultSourceDir+")")
	flags.String("install-root", "", "root of the install prefixes (default "+sysbuild.DefaultInstallRoot+")")
	flags.String("build-dir", "", "CMake binary directory")
	flags.String("generator", "", "CMake generator (default $"+sysbuild.EnvCmakeGenerator+" or the platform default)")
	flags.IntP("jobs", "j", 0, "parallel build jobs (0 = CMake default)")
	flags.String("header", "", "header to generate bindings from (default "+sysbuild.DefaultHeader+")")
	flags.String("out-dir", "", "directory for generated binding files (default .)")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newLinkCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newCleanCmd())

	return root
}

// newLogger returns a text logger on the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadOptions reads the persistent flags and resolves the run options.
func loadOptions(cmd *cobra.Command) (*sysbuild.Options, *logrus.Logger, error) {
	f := cmd.Flags()

	configPath, err := f.GetString("config")
	if err != nil {
		return nil, nil, err
	}

	var flags sysbuild.Flags
	for name, dst := range map[string]*bool{
		"static":  &flags.Static,
		"dynamic": &flags.Dynamic,
		"verbose": &flags.Verbose,
	} {
		if *dst, err = f.GetBool(name); err != nil {
			return nil, nil, err
		}
	}
	for name, dst := range map[string]*string{
		"target":       &flags.Target,
		"source":       &flags.SourceDir,
		"install-root": &flags.InstallRoot,
		"build-dir":    &flags.BuildDir,
		"generator":    &flags.Generator,
		"header":       &flags.Header,
		"out-dir":      &flags.BindingDir,
	} {
		if *dst, err = f.GetString(name); err != nil {
			return nil, nil, err
		}
	}
	if flags.Parallel, err = f.GetInt("jobs"); err != nil {
		return nil, nil, err
	}
	if flags.Parallel < 0 {
		return nil, nil, fmt.Errorf("--jobs must not be negative, got %d", flags.Parallel)
	}
	if f.Lookup("generate-binding") != nil {
		if flags.GenerateBinding, err = f.GetBool("generate-binding"); err != nil {
			return nil, nil, err
		}
	}
	if f.Lookup("clean-first") != nil {
		if flags.CleanFirst, err = f.GetBool("clean-first"); err != nil {
			return nil, nil, err
		}
	}

	opts, err := sysbuild.LoadOptions(configPath, flags)
	if err != nil {
		return nil, nil, err
	}
	return opts, newLogger(cmd, opts.Verbose), nil
}
