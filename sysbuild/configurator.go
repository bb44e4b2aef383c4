package sysbuild

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LinkConfigurator resolves the linkage mode, builds the codec and
// produces the linker directives for one run.
//
// The decision is computed once and reused by every later step, so the
// CMake flags, the directive tags and the build tag always agree.
type LinkConfigurator struct {
	Options *Options
	Log     logrus.FieldLogger
	Builder Builder

	decision *Decision
}

// LinkResult is the outcome of a configurator run.
type LinkResult struct {
	Decision   Decision
	Build      *BuildResult
	Directives Directives
}

// NewLinkConfigurator returns a configurator that builds with CMake.
// A nil logger falls back to the logrus standard logger.
func NewLinkConfigurator(opts *Options, log logrus.FieldLogger) *LinkConfigurator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LinkConfigurator{Options: opts, Log: log, Builder: &CmakeBuilder{}}
}

// Resolve returns the linkage decision, computing and logging it on first use.
func (c *LinkConfigurator) Resolve() Decision {
	if c.decision == nil {
		d := ResolveLinkage(c.Options)
		c.decision = &d
		c.logger().WithFields(logrus.Fields{
			"linkage": d.Linkage,
			"target":  d.Target.String(),
		}).Info(d.Message())
	}
	return *c.decision
}

// BuildConfig returns the native build configuration for a decision.
func (c *LinkConfigurator) BuildConfig(d Decision) *BuildConfig {
	opts := c.Options

	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = DefaultBuildDir(opts.InstallRoot, d.Linkage, d.Target)
	}

	return &BuildConfig{
		SourceDir: absPath(opts.SourceDir),
		BuildDir:  absPath(buildDir),
		Prefix:    absPath(InstallPrefix(opts.InstallRoot, d.Linkage, d.Target)),
		Target:    d.Target,
		Linkage:   d.Linkage,
		Generator: opts.Generator,
		BuildArgs: opts.BuildArgs,
		Env:       opts.BuildEnv,
		Verbose:   opts.Verbose,
		Parallel:  opts.Parallel,

		CleanFirst: opts.CleanFirst,
	}
}

// Run checks the toolchain, builds and installs the codec, and returns
// the linker directives for the installed libraries. A build failure is
// returned as is; the partial result still carries the tool output.
func (c *LinkConfigurator) Run(ctx context.Context) (*LinkResult, error) {
	d := c.Resolve()
	log := c.logger()
	result := &LinkResult{Decision: d}

	if checker, ok := c.Builder.(ToolChecker); ok {
		if err := checker.CheckTools(); err != nil {
			return result, fmt.Errorf("build tools missing: %w", err)
		}
	}

	config := c.BuildConfig(d)
	log.WithFields(logrus.Fields{
		"builder": c.Builder.Name(),
		"source":  config.SourceDir,
		"build":   config.BuildDir,
		"prefix":  config.Prefix,
	}).Debug("building native codec")

	build, err := c.Builder.Build(ctx, config)
	result.Build = build
	if err != nil {
		return result, err
	}

	if config.Verbose {
		for _, line := range build.Output {
			log.Debug(line)
		}
	}

	result.Directives = NewDirectives(build.LibDir, d.Linkage, d.Target)
	for _, line := range result.Directives.Lines() {
		log.Info(line)
	}

	return result, nil
}

// Clean removes the build tree and install prefix for the resolved linkage.
func (c *LinkConfigurator) Clean(ctx context.Context) error {
	config := c.BuildConfig(c.Resolve())
	c.logger().WithField("prefix", config.Prefix).Info("removing native build")
	return c.Builder.Clean(ctx, config)
}

func (c *LinkConfigurator) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// InstallPrefix returns <root>/<static|shared>/<platform>.
func InstallPrefix(root string, l Linkage, t Triple) string {
	return filepath.Join(root, l.InstallDir(), t.PlatformDir())
}

// DefaultBuildDir returns <root>/build/<linkage>/<platform>.
func DefaultBuildDir(root string, l Linkage, t Triple) string {
	return filepath.Join(root, "build", l.String(), t.PlatformDir())
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
