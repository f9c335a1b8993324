package setup

import (
	"log/slog"

	"github.com/zoonderkins/claude-confirm/bridge"
	"github.com/zoonderkins/claude-confirm/config"
	"github.com/zoonderkins/claude-confirm/confirm"
	"github.com/zoonderkins/claude-confirm/core/envctx"
	"github.com/zoonderkins/claude-confirm/core/request"
	"github.com/zoonderkins/claude-confirm/history"
	"github.com/zoonderkins/claude-confirm/mcp"
)

// Bootstrap contains all initialized components
type Bootstrap struct {
	Logger  *slog.Logger
	History *history.Store
	Bridge  *bridge.Bridge
	Service *confirm.Service
	Server  *mcp.Server
}

// Initialize wires the confirmation server from cfg. An unusable history
// database disables history instead of failing startup.
func Initialize(cfg *config.Config, logger *slog.Logger) (*Bootstrap, error) {
	b := &Bootstrap{Logger: logger}

	// Initialize History Store
	b.History = InitializeHistory(cfg, logger)

	// Initialize Bridge
	resolver := bridge.NewExecutableResolver(cfg.Adapter.Name, cfg.Adapter.ProbeTimeout)
	b.Bridge = bridge.New(resolver,
		bridge.WithTempDir(cfg.TempDir()),
		bridge.WithTimeout(cfg.Bridge.Timeout),
		bridge.WithLogger(logger.With("component", "bridge")),
	)

	// Initialize Confirmation Service
	opts := []confirm.Option{
		confirm.WithLogger(logger.With("component", "confirm")),
	}
	if b.History != nil {
		opts = append(opts, confirm.WithHistory(b.History))
	}
	b.Service = confirm.NewService(request.NewNormalizer(envctx.NewSystem()), b.Bridge, opts...)

	// Initialize MCP Server
	b.Server = mcp.NewServer(b.Service, logger.With("component", "mcp"))

	return b, nil
}

// InitializeHistory opens the history store, or returns nil when it is
// disabled or cannot be opened
func InitializeHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		logger.Warn("history store disabled", "path", cfg.History.DBPath, "error", err)
		return nil
	}

	return store
}

// Cleanup gracefully shuts down all components
func (b *Bootstrap) Cleanup() {
	if b.History != nil {
		if err := b.History.Close(); err != nil {
			b.Logger.Warn("failed to close history store", "error", err)
		}
	}
}
