package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/zoonderkins/claude-confirm/config"
)

// AuditLog represents a single confirm invocation
type AuditLog struct {
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
	ProjectName   string    `json:"project_name,omitempty"`
	Message       string    `json:"message"`
	SectionCount  int       `json:"section_count"`
	Confirmed     bool      `json:"confirmed"`
	Selected      []int     `json:"selected_sections,omitempty"`
	HasUserInput  bool      `json:"has_user_input"`
	ImageCount    int       `json:"image_count"`
	DurationMS    int64     `json:"duration_ms"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	Error         string    `json:"error,omitempty"`
	UserCancelled bool      `json:"user_cancelled"`
}

// concurrent tool calls append to the same file
var writeMu sync.Mutex

// maxMessageLen truncates long summaries in the log
const maxMessageLen = 500

// LogExecution appends an entry to the audit log
func LogExecution(log AuditLog) error {
	if !config.IsAuditEnabled() {
		return nil // Audit logging is disabled
	}

	return appendTo(config.GetAuditLogPath(), log)
}

func appendTo(logPath string, log AuditLog) error {
	if len(log.Message) > maxMessageLen {
		cut := maxMessageLen
		for cut > 0 && !utf8.RuneStart(log.Message[cut]) {
			cut--
		}
		log.Message = log.Message[:cut] + "... (truncated)"
	}

	// Marshal to JSON
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log: %w", err)
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	// Open file in append mode
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer file.Close()

	// Write log entry
	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}

// GetAuditLogs reads all audit logs from the file
func GetAuditLogs() ([]AuditLog, error) {
	return readFrom(config.GetAuditLogPath())
}

func readFrom(logPath string) ([]AuditLog, error) {
	file, err := os.Open(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []AuditLog{}, nil // No logs yet
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer file.Close()

	logs := []AuditLog{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var log AuditLog
		if err := json.Unmarshal(line, &log); err != nil {
			// Skip malformed lines
			continue
		}
		logs = append(logs, log)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return logs, nil
}

// GetRecentAuditLogs returns the N most recent audit logs; n <= 0 returns all
func GetRecentAuditLogs(n int) ([]AuditLog, error) {
	logs, err := GetAuditLogs()
	if err != nil {
		return nil, err
	}

	if n <= 0 || len(logs) <= n {
		return logs, nil
	}

	return logs[len(logs)-n:], nil
}
