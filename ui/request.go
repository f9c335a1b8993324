package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zoonderkins/claude-confirm/core/types"
)

// LoadRequest reads the request artifact written by the bridge
func LoadRequest(path string) (*types.PopupRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("request file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("request file is empty: %s", path)
	}

	var req types.PopupRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	return &req, nil
}

// WriteResponse prints resp as a single JSON line
func WriteResponse(w io.Writer, resp types.UserResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
