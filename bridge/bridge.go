// Package bridge runs one confirmation round trip with the presentation adapter:
// persist the request, launch the adapter, wait for it, and recover its answer.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// RequestFlag is the adapter argument that carries the artifact path
const RequestFlag = "--mcp-request"

// killGrace bounds how long Wait blocks on pipes after the adapter is killed
const killGrace = 2 * time.Second

// State is a step of the round trip
type State string

const (
	StateCreated   State = "created"
	StatePersisted State = "persisted"
	StateLaunched  State = "launched"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Bridge coordinates persistence, adapter launch and result capture.
// It holds no per-request state and is safe for concurrent use.
type Bridge struct {
	resolver Resolver
	tempDir  string
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Bridge
type Option func(*Bridge)

// WithTempDir sets where request artifacts are written
func WithTempDir(dir string) Option {
	return func(b *Bridge) {
		b.tempDir = dir
	}
}

// WithTimeout bounds how long to wait for the adapter; 0 waits indefinitely
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		b.timeout = d
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a bridge that launches the adapter found by resolver
func New(resolver Resolver, opts ...Option) *Bridge {
	b := &Bridge{
		resolver: resolver,
		tempDir:  os.TempDir(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ArtifactPath returns the request file location for a request id
func (b *Bridge) ArtifactPath(id string) string {
	return filepath.Join(b.tempDir, fmt.Sprintf("mcp_request_%s.json", id))
}

// roundTrip tracks the state of a single invocation
type roundTrip struct {
	req    *types.PopupRequest
	state  State
	logger *slog.Logger
}

func (rt *roundTrip) to(state State) {
	rt.logger.Debug("bridge transition", "from", rt.state, "to", state)
	rt.state = state
}

func (rt *roundTrip) fail(kind Kind, stderr string, err error) error {
	rt.logger.Warn("confirmation round trip failed", "state", rt.state, "kind", kind, "error", err)
	rt.to(StateFailed)
	return &Error{Kind: kind, RequestID: rt.req.ID, Stderr: stderr, Err: err}
}

// Run executes one round trip. A user dismissal is returned as
// types.Cancelled() with a nil error; every failure is a *Error.
func (b *Bridge) Run(ctx context.Context, req *types.PopupRequest) (types.UserResponse, error) {
	rt := &roundTrip{
		req:    req,
		state:  StateCreated,
		logger: b.logger.With("request_id", req.ID),
	}

	path, err := b.persist(req)
	if err != nil {
		return types.UserResponse{}, rt.fail(KindIO, "", err)
	}
	rt.to(StatePersisted)
	defer b.cleanup(path, rt.logger)

	adapter, err := b.resolver.Resolve(ctx)
	if err != nil {
		var berr *Error
		if errors.As(err, &berr) {
			err = berr.Err
		}
		return types.UserResponse{}, rt.fail(KindAdapterNotFound, "", err)
	}

	runCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := append(append([]string{}, adapter.Args...), RequestFlag, path)
	cmd := exec.CommandContext(runCtx, adapter.Path, args...)
	cmd.WaitDelay = killGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		if kind, ok := b.contextKind(ctx, runCtx); ok {
			return types.UserResponse{}, rt.fail(kind, "", err)
		}
		return types.UserResponse{}, rt.fail(KindAdapter, "", fmt.Errorf("failed to launch %s: %w", adapter.Path, err))
	}
	rt.to(StateLaunched)
	rt.logger.Info("presentation adapter launched", "adapter", adapter.Path, "pid", cmd.Process.Pid)

	waitErr := cmd.Wait()
	if waitErr != nil {
		if kind, ok := b.contextKind(ctx, runCtx); ok {
			return types.UserResponse{}, rt.fail(kind, stderr.String(), waitErr)
		}
		return types.UserResponse{}, rt.fail(KindAdapter, stderr.String(), waitErr)
	}

	resp, parseErr := ParseResponse(stdout.Bytes())
	if parseErr != nil {
		// A window closed without structured output counts as a cancellation,
		// but it may also hide an adapter bug.
		rt.logger.Warn("adapter exited cleanly without a usable response; treating as cancelled",
			"reason", parseErr, "stderr", strings.TrimSpace(stderr.String()))
	}

	rt.to(StateCompleted)
	rt.logger.Info("confirmation completed", "confirmed", resp.Confirmed, "selected", len(resp.SelectedSections))
	return resp, nil
}

// contextKind maps an expired or cancelled context to a failure kind
func (b *Bridge) contextKind(parent, run context.Context) (Kind, bool) {
	if parent.Err() != nil {
		return KindInterrupted, true
	}
	if errors.Is(run.Err(), context.DeadlineExceeded) {
		return KindTimeout, true
	}
	return "", false
}

// persist writes the request artifact. O_EXCL guarantees an invocation never
// reuses another invocation's file.
func (b *Bridge) persist(req *types.PopupRequest) (string, error) {
	if req.ID == "" {
		return "", fmt.Errorf("request has no id")
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	path := b.ArtifactPath(req.ID)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create request file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write request file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close request file: %w", err)
	}

	return path, nil
}

// cleanup removes the artifact; failures are logged and swallowed
func (b *Bridge) cleanup(path string, logger *slog.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove request file", "path", path, "error", err)
	}
}

// ParseResponse decodes adapter output. Empty or malformed output yields the
// cancelled sentinel together with the reason it was not usable.
func ParseResponse(output []byte) (types.UserResponse, error) {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) == 0 {
		return types.Cancelled(), errors.New("empty output")
	}

	var resp types.UserResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return types.Cancelled(), fmt.Errorf("unparseable output: %w", err)
	}
	return resp, nil
}
