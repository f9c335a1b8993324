package bridge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// Adapter is a resolved presentation executable. Args are placed before the
// "--mcp-request <path>" pair on every launch.
type Adapter struct {
	Path string
	Args []string
}

// Resolver locates the presentation adapter for a round trip
type Resolver interface {
	Resolve(ctx context.Context) (Adapter, error)
}

// StaticResolver always returns the same adapter
type StaticResolver Adapter

// Resolve returns the fixed adapter
func (s StaticResolver) Resolve(context.Context) (Adapter, error) {
	return Adapter(s), nil
}

// ExecutableResolver implements the two-tier lookup: an adapter colocated with
// the running binary wins; otherwise a globally installed adapter is accepted
// only if it answers a version probe.
type ExecutableResolver struct {
	Name         string
	ProbeTimeout time.Duration

	// Executable returns the path of the running program (os.Executable)
	Executable func() (string, error)
	// Probe runs "<name> --version" and reports whether it succeeded
	Probe func(ctx context.Context, name string) error
}

// NewExecutableResolver creates a resolver for the named adapter
func NewExecutableResolver(name string, probeTimeout time.Duration) *ExecutableResolver {
	return &ExecutableResolver{
		Name:         name,
		ProbeTimeout: probeTimeout,
		Executable:   os.Executable,
		Probe:        VersionProbe,
	}
}

// Resolve finds the adapter or returns an error matching ErrAdapterNotFound
func (r *ExecutableResolver) Resolve(ctx context.Context) (Adapter, error) {
	if local := r.colocated(); local != "" {
		return Adapter{Path: local}, nil
	}

	probeCtx := ctx
	if r.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, r.ProbeTimeout)
		defer cancel()
	}

	probeErr := r.Probe(probeCtx, r.Name)
	if probeErr == nil {
		return Adapter{Path: r.Name}, nil
	}

	return Adapter{}, &Error{
		Kind: KindAdapterNotFound,
		Err: fmt.Errorf("%s is neither next to this program nor installed on PATH (probe: %v)",
			r.Name, probeErr),
	}
}

// colocated returns the adapter path next to the running binary, if it exists
func (r *ExecutableResolver) colocated() string {
	if r.Executable == nil {
		return ""
	}
	exe, err := r.Executable()
	if err != nil || exe == "" {
		return ""
	}

	candidate := filepath.Join(filepath.Dir(exe), r.Name+exeSuffix())
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return ""
	}
	return candidate
}

// VersionProbe accepts name only if "name --version" exits successfully
func VersionProbe(ctx context.Context, name string) error {
	cmd := exec.CommandContext(ctx, name, "--version")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s --version failed: %w (%s)", name, err, string(output))
	}
	return nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
