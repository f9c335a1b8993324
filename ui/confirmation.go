package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// ErrNoTerminal is returned when there is no controlling terminal to prompt on
var ErrNoTerminal = errors.New("no terminal available for the confirmation prompt")

// TerminalConfirmation shows a request on a terminal and waits for the user.
// stdout is reserved for the JSON answer, so the prompt uses its own streams.
type TerminalConfirmation struct {
	In  io.Reader
	Out io.Writer

	// extra program options, used by tests to run without a renderer
	options []tea.ProgramOption
}

// RequestConfirmation runs the prompt until the user confirms or dismisses it.
// Dismissal, ctrl+c and ctx cancellation all yield the cancelled response.
func (t *TerminalConfirmation) RequestConfirmation(ctx context.Context, req *types.PopupRequest) (types.UserResponse, error) {
	model := NewModel(req)

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	}
	opts = append(opts, t.options...)

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return types.Cancelled(), nil
		}
		return types.UserResponse{}, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	return model.Response(), nil
}

// OpenTerminal opens the controlling terminal for reading and writing
func OpenTerminal() (*os.File, error) {
	name := "/dev/tty"
	if runtime.GOOS == "windows" {
		name = "CONIN$"
	}

	tty, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}

	if !isatty.IsTerminal(tty.Fd()) && !isatty.IsCygwinTerminal(tty.Fd()) {
		tty.Close()
		return nil, ErrNoTerminal
	}

	return tty, nil
}
