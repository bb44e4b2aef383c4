package sysbuild

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is read from the working directory when no config path is given.
const DefaultConfigFile = "lzham.toml"

// Environment variables consulted by LoadOptions.
const (
	EnvLibStatic      = "LIBLZHAM_STATIC"
	EnvStatic         = "LZHAM_STATIC"
	EnvTarget         = "LZHAM_TARGET"
	EnvMingwSysroot   = "LZHAM_MINGW_SYSROOT"
	EnvCmakeGenerator = "CMAKE_GENERATOR"
)

// Defaults for paths relative to the module root.
const (
	DefaultSourceDir   = "lzham_codec"
	DefaultInstallRoot = "native"
	DefaultHeader      = "include/wrapper.h"
	DefaultPackage     = "lzham"
)

// DefaultAllow is the declaration allowlist used by the binding generator:
// the zlib-compatible API and the version entry point.
var DefaultAllow = []string{`^LZHAM_Z_`, `^lzham_z_`, `^lzham_get_version$`, `^lzham_uint32$`}

// staticEnvVars are checked in order. Both names are accepted for
// compatibility; presence alone forces static linkage.
var staticEnvVars = []string{EnvLibStatic, EnvStatic}

// lookupEnv reads the environment. Tests replace it.
var lookupEnv = os.LookupEnv

// Flags are the explicit options given on the command line or by a caller.
// They take precedence over every other source.
type Flags struct {
	Static          bool
	Dynamic         bool
	GenerateBinding bool

	Target      string
	SourceDir   string
	BuildDir    string
	InstallRoot string
	Generator   string
	Parallel    int
	Verbose     bool
	CleanFirst  bool

	Header     string
	BindingDir string
}

// Options is the resolved build configuration for one run. It is populated
// once by LoadOptions and never re-read from the environment.
type Options struct {
	// Feature switches
	Static          bool
	Dynamic         bool
	GenerateBinding bool

	// StaticEnvVar names the first static override variable found, or "".
	StaticEnvVar string

	Target       Triple
	MingwSysroot string

	// Native build
	SourceDir   string
	BuildDir    string
	InstallRoot string
	Generator   string
	Parallel    int
	BuildArgs   []string
	BuildEnv    map[string]string
	CleanFirst  bool
	Verbose     bool

	// Binding generation
	Header      string
	IncludeDirs []string
	BindingDir  string
	Package     string
	Allow       []string
}

// fileConfig mirrors lzham.toml.
type fileConfig struct {
	Features featuresConfig `toml:"features"`
	Native   nativeConfig   `toml:"native"`
	Bindgen  bindgenConfig  `toml:"bindgen"`
}

type featuresConfig struct {
	Static          bool `toml:"static"`
	Dynamic         bool `toml:"dynamic"`
	GenerateBinding bool `toml:"generate_binding"`
}

type nativeConfig struct {
	Source      string            `toml:"source"`
	BuildDir    string            `toml:"build_dir"`
	InstallRoot string            `toml:"install_root"`
	Generator   string            `toml:"generator"`
	Jobs        int               `toml:"jobs"`
	Args        []string          `toml:"args"`
	Target      string            `toml:"target"`
	CleanFirst  bool              `toml:"clean_first"`
	Env         map[string]string `toml:"env"`
}

type bindgenConfig struct {
	Header      string   `toml:"header"`
	IncludeDirs []string `toml:"include_dirs"`
	OutputDir   string   `toml:"output_dir"`
	Package     string   `toml:"package"`
	Allow       []string `toml:"allow"`
}

// LoadOptions resolves Options from, in priority order, the explicit flags,
// the environment, the config file and built-in defaults.
//
// An empty configPath reads DefaultConfigFile when it exists. An explicit
// configPath that cannot be read is an error.
func LoadOptions(configPath string, flags Flags) (*Options, error) {
	var cfg fileConfig
	var cfgDir string

	path, explicit := configPath, configPath != ""
	if !explicit {
		path = DefaultConfigFile
	}

	loaded, err := loadConfigFile(path, &cfg)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if loaded {
		cfgDir = filepath.Dir(path)
	}

	opts := &Options{
		// Switches behave like build features: any source may enable them.
		Static:          flags.Static || cfg.Features.Static,
		Dynamic:         flags.Dynamic || cfg.Features.Dynamic,
		GenerateBinding: flags.GenerateBinding || cfg.Features.GenerateBinding,
		Verbose:         flags.Verbose,
		Parallel:        firstPositive(flags.Parallel, cfg.Native.Jobs),
		BuildArgs:       cfg.Native.Args,
		BuildEnv:        cfg.Native.Env,
		CleanFirst:      flags.CleanFirst || cfg.Native.CleanFirst,
		Package:         firstNonEmpty(cfg.Bindgen.Package, DefaultPackage),
		Allow:           cfg.Bindgen.Allow,
	}
	if len(opts.Allow) == 0 {
		opts.Allow = DefaultAllow
	}

	for _, name := range staticEnvVars {
		if _, ok := lookupEnv(name); ok {
			opts.StaticEnvVar = name
			break
		}
	}

	targetSpec := firstNonEmpty(flags.Target, envValue(EnvTarget), cfg.Native.Target)
	if targetSpec != "" {
		target, err := ParseTriple(targetSpec)
		if err != nil {
			return nil, err
		}
		opts.Target = target
	} else {
		opts.Target = HostTriple()
	}

	opts.MingwSysroot = envValue(EnvMingwSysroot)
	if opts.MingwSysroot == "" && opts.Target.IsWindowsGNU() {
		opts.MingwSysroot = fmt.Sprintf("/usr/%s-w64-mingw32", opts.Target.Arch)
	}

	opts.SourceDir = firstNonEmpty(flags.SourceDir, relTo(cfgDir, cfg.Native.Source), DefaultSourceDir)
	opts.InstallRoot = firstNonEmpty(flags.InstallRoot, relTo(cfgDir, cfg.Native.InstallRoot), DefaultInstallRoot)
	opts.BuildDir = firstNonEmpty(flags.BuildDir, relTo(cfgDir, cfg.Native.BuildDir))
	opts.Generator = firstNonEmpty(flags.Generator, envValue(EnvCmakeGenerator), cfg.Native.Generator)

	opts.Header = firstNonEmpty(flags.Header, relTo(cfgDir, cfg.Bindgen.Header), DefaultHeader)
	opts.BindingDir = firstNonEmpty(flags.BindingDir, relTo(cfgDir, cfg.Bindgen.OutputDir), ".")
	for _, dir := range cfg.Bindgen.IncludeDirs {
		opts.IncludeDirs = append(opts.IncludeDirs, relTo(cfgDir, dir))
	}
	if len(opts.IncludeDirs) == 0 {
		opts.IncludeDirs = []string{filepath.Join(opts.SourceDir, "include")}
	}

	return opts, nil
}

// loadConfigFile decodes a TOML config file. It reports false with an
// os.ErrNotExist error when the file is absent.
func loadConfigFile(path string, cfg *fileConfig) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return false, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("native", "jobs") && cfg.Native.Jobs < 0 {
		return false, fmt.Errorf("%s: [native].jobs must not be negative", path)
	}

	return true, nil
}

func envValue(name string) string {
	value, _ := lookupEnv(name)
	return strings.TrimSpace(value)
}

func relTo(dir, path string) string {
	if path == "" || dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
