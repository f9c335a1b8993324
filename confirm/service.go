// Package confirm orchestrates a confirm invocation from raw tool arguments
// to the text returned to the agent.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zoonderkins/claude-confirm/bridge"
	"github.com/zoonderkins/claude-confirm/core/audit"
	"github.com/zoonderkins/claude-confirm/core/format"
	"github.com/zoonderkins/claude-confirm/core/request"
	"github.com/zoonderkins/claude-confirm/core/types"
	"github.com/zoonderkins/claude-confirm/history"
)

// Runner performs one adapter round trip
type Runner interface {
	Run(ctx context.Context, req *types.PopupRequest) (types.UserResponse, error)
}

// Recorder persists completed round trips
type Recorder interface {
	Record(entry history.Entry) (*history.Entry, error)
}

// Service ties normalization, the bridge and formatting together
type Service struct {
	normalizer *request.Normalizer
	runner     Runner
	history    Recorder
	audit      func(audit.AuditLog) error
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithHistory records every completed round trip in h
func WithHistory(h Recorder) Option {
	return func(s *Service) {
		s.history = h
	}
}

// WithAudit replaces the audit sink (default: audit.LogExecution)
func WithAudit(fn func(audit.AuditLog) error) Option {
	return func(s *Service) {
		s.audit = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a confirmation service
func NewService(normalizer *request.Normalizer, runner Runner, opts ...Option) *Service {
	s := &Service{
		normalizer: normalizer,
		runner:     runner,
		audit:      audit.LogExecution,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Confirm shows raw to the user and returns the formatted outcome.
// Errors are either *request.ValidationError or *bridge.Error.
func (s *Service) Confirm(ctx context.Context, raw types.ConfirmRequest) (string, error) {
	start := s.now()

	req, err := s.normalizer.Normalize(raw)
	if err != nil {
		s.logger.Info("rejected confirm request", "error", err)
		s.writeAudit(audit.AuditLog{
			Timestamp: start,
			Message:   raw.Message,
			ErrorKind: "validation",
			Error:     err.Error(),
		})
		return "", err
	}

	logger := s.logger.With("request_id", req.ID)
	logger.Info("confirmation requested", "sections", len(req.Sections), "project", projectName(req))

	resp, err := s.runner.Run(ctx, req)
	elapsed := s.now().Sub(start)

	entry := audit.AuditLog{
		Timestamp:    start,
		RequestID:    req.ID,
		ProjectName:  projectName(req),
		Message:      req.Message,
		SectionCount: len(req.Sections),
		DurationMS:   elapsed.Milliseconds(),
	}

	if err != nil {
		entry.ErrorKind = string(bridge.KindOf(err))
		entry.Error = err.Error()
		s.writeAudit(entry)
		return "", err
	}

	entry.Confirmed = resp.Confirmed
	entry.Selected = resp.SelectedSections
	entry.HasUserInput = resp.UserInput != ""
	entry.ImageCount = len(resp.Images)
	entry.UserCancelled = !resp.Confirmed
	s.writeAudit(entry)
	s.record(logger, req, resp, elapsed)

	logger.Info("confirm tool answered",
		"confirmed", resp.Confirmed,
		"selected", len(resp.SelectedSections),
		"duration", elapsed)

	return format.Format(req, resp), nil
}

func (s *Service) writeAudit(entry audit.AuditLog) {
	if s.audit == nil {
		return
	}
	if err := s.audit(entry); err != nil {
		s.logger.Warn("failed to write audit log", "request_id", entry.RequestID, "error", err)
	}
}

func (s *Service) record(logger *slog.Logger, req *types.PopupRequest, resp types.UserResponse, elapsed time.Duration) {
	if s.history == nil {
		return
	}

	entry := history.Entry{
		RequestID:    req.ID,
		Message:      req.Message,
		ProjectName:  projectName(req),
		SectionCount: len(req.Sections),
		Confirmed:    resp.Confirmed,
		Selected:     resp.SelectedSections,
		UserInput:    resp.UserInput,
		ImageCount:   len(resp.Images),
		DurationMS:   elapsed.Milliseconds(),
	}
	if req.EnvContext != nil && req.EnvContext.Cwd != nil {
		entry.Cwd = *req.EnvContext.Cwd
	}

	if _, err := s.history.Record(entry); err != nil {
		logger.Warn("failed to record confirmation history", "error", err)
	}
}

func projectName(req *types.PopupRequest) string {
	if req.EnvContext == nil || req.EnvContext.ProjectName == nil {
		return ""
	}
	return *req.EnvContext.ProjectName
}

// IsUserFacing reports whether err is a caller mistake rather than a bridge failure
func IsUserFacing(err error) bool {
	return errors.Is(err, request.ErrValidation)
}
