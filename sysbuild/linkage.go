package sysbuild

import "fmt"

// Reason records which branch of the linkage precedence produced a decision.
type Reason int

const (
	// ReasonConflict means both static and dynamic were requested and the
	// platform default was applied.
	ReasonConflict Reason = iota
	// ReasonStaticRequested means the static switch or an override variable was set.
	ReasonStaticRequested
	// ReasonDynamicRequested means the dynamic switch was set.
	ReasonDynamicRequested
	// ReasonPlatformDefault means nothing was requested.
	ReasonPlatformDefault
)

// Decision is the result of linkage resolution.
type Decision struct {
	Linkage Linkage
	Reason  Reason
	Target  Triple
	// EnvVar names the override variable that forced static linkage, if any.
	EnvVar string
}

// Message returns the informational build-log line for the decision.
func (d Decision) Message() string {
	switch d.Reason {
	case ReasonConflict:
		return fmt.Sprintf("Both static and dynamic requested, linking %s by default for %s.", d.Linkage, d.Target)
	case ReasonStaticRequested:
		if d.EnvVar != "" {
			return fmt.Sprintf("Static environment variable %s found.", d.EnvVar)
		}
		return "Static feature enabled."
	case ReasonDynamicRequested:
		return "Dynamic feature enabled."
	default:
		return fmt.Sprintf("No feature or environment variable found, linking %s by default for %s.", d.Linkage, d.Target)
	}
}

// DefaultLinkage returns the expected linkage for a target when nothing was
// requested: static for Windows, macOS and musl, dynamic for everything else.
func DefaultLinkage(t Triple) Linkage {
	switch {
	case t.OS == platformWindows, t.OS == platformDarwin, t.IsMusl():
		return Static
	default:
		return Dynamic
	}
}

// ResolveLinkage decides static vs dynamic linkage for a run.
//
// Precedence:
//  1. static and dynamic both set: platform default (not an error)
//  2. static set, or a static override variable present: static
//  3. dynamic set: dynamic
//  4. otherwise: platform default
func ResolveLinkage(opts *Options) Decision {
	target := opts.Target

	switch {
	case opts.Static && opts.Dynamic:
		return Decision{Linkage: DefaultLinkage(target), Reason: ReasonConflict, Target: target}
	case opts.Static || opts.StaticEnvVar != "":
		return Decision{Linkage: Static, Reason: ReasonStaticRequested, Target: target, EnvVar: staticEnvVarIfUnflagged(opts)}
	case opts.Dynamic:
		return Decision{Linkage: Dynamic, Reason: ReasonDynamicRequested, Target: target}
	default:
		return Decision{Linkage: DefaultLinkage(target), Reason: ReasonPlatformDefault, Target: target}
	}
}

func staticEnvVarIfUnflagged(opts *Options) string {
	if opts.Static {
		return ""
	}
	return opts.StaticEnvVar
}
