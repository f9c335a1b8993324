// Package envctx resolves ambient metadata about the requesting process and
// merges it with caller-supplied overrides.
package envctx

import (
	"os"
	"path/filepath"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// TerminalEnvVar names the environment variable that identifies the terminal program
const TerminalEnvVar = "TERM_PROGRAM"

// Detector senses the environment a confirmation is requested from.
// Injected into the request normalizer so tests can supply fixed fixtures.
type Detector interface {
	Detect() types.EnvContext
}

// DetectorFunc adapts a plain function to the Detector interface
type DetectorFunc func() types.EnvContext

// Detect calls f()
func (f DetectorFunc) Detect() types.EnvContext {
	return f()
}

// System detects the environment of the current process
type System struct {
	Getwd  func() (string, error)
	Getenv func(string) string
	Getpid func() int
}

// NewSystem returns a detector backed by the os package
func NewSystem() *System {
	return &System{
		Getwd:  os.Getwd,
		Getenv: os.Getenv,
		Getpid: os.Getpid,
	}
}

// Detect reads cwd, terminal program and pid. Anything that cannot be
// determined is left nil.
func (s *System) Detect() types.EnvContext {
	var ctx types.EnvContext

	if cwd, err := s.Getwd(); err == nil && cwd != "" {
		ctx.Cwd = &cwd
		if name := ProjectName(cwd); name != "" {
			ctx.ProjectName = &name
		}
	}

	if term := s.Getenv(TerminalEnvVar); term != "" {
		ctx.Terminal = &term
	}

	pid := s.Getpid()
	ctx.PID = &pid

	return ctx
}

// ProjectName returns the last path segment of dir, or "" for a root or empty path
func ProjectName(dir string) string {
	if dir == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return ""
	}
	return base
}

// Merge overlays override on detected field by field. A field present in
// override always wins; fields are never partially combined.
func Merge(detected types.EnvContext, override *types.EnvContext) types.EnvContext {
	if override == nil {
		return detected
	}

	merged := detected
	if override.Cwd != nil {
		merged.Cwd = override.Cwd
	}
	if override.ProjectName != nil {
		merged.ProjectName = override.ProjectName
	}
	if override.Terminal != nil {
		merged.Terminal = override.Terminal
	}
	if override.PID != nil {
		merged.PID = override.PID
	}
	return merged
}
