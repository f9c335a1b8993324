package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Store, string) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "nested", "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err, "Failed to create test store")
	require.NotNil(t, store, "Store should not be nil")

	return store, dbPath
}

func TestNewStore(t *testing.T) {
	store, dbPath := setupTestDB(t)
	defer store.Close()

	// Verify database file was created
	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
	assert.NotNil(t, store.db)
}

func TestNewStoreReopen(t *testing.T) {
	store, dbPath := setupTestDB(t)
	_, err := store.Record(Entry{RequestID: "persisted", Message: "kept", Confirmed: true})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	entry, err := reopened.Get("persisted")
	require.NoError(t, err)
	assert.Equal(t, "kept", entry.Message)
}

func TestRecordAndGet(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	created, err := store.Record(Entry{
		RequestID:    "req-1",
		Message:      "Apply the refactor?",
		ProjectName:  "widgets",
		Cwd:          "/home/u/widgets",
		SectionCount: 3,
		Confirmed:    true,
		Selected:     []int{0, 2},
		UserInput:    "also bump the version",
		ImageCount:   1,
		DurationMS:   1500,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.CreatedAt)

	got, err := store.Get("req-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Apply the refactor?", got.Message)
	assert.Equal(t, "widgets", got.ProjectName)
	assert.Equal(t, "/home/u/widgets", got.Cwd)
	assert.Equal(t, 3, got.SectionCount)
	assert.True(t, got.Confirmed)
	assert.Equal(t, []int{0, 2}, got.Selected)
	assert.Equal(t, "also bump the version", got.UserInput)
	assert.Equal(t, 1, got.ImageCount)
	assert.Equal(t, int64(1500), got.DurationMS)
	assert.Equal(t, OutcomeSelected, got.Outcome())
}

func TestRecordCancelled(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	_, err := store.Record(Entry{RequestID: "req-c", Message: "Proceed?"})
	require.NoError(t, err)

	got, err := store.Get("req-c")
	require.NoError(t, err)
	assert.False(t, got.Confirmed)
	assert.Equal(t, []int{}, got.Selected)
	assert.Empty(t, got.ProjectName)
	assert.Equal(t, OutcomeCancelled, got.Outcome())
}

func TestRecordDuplicateRequestID(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	_, err := store.Record(Entry{RequestID: "dup", Message: "first"})
	require.NoError(t, err)

	_, err = store.Record(Entry{RequestID: "dup", Message: "second"})
	assert.Error(t, err, "request ids are unique")
}

func TestGetMissing(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	_, err := store.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListNewestFirst(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Record(Entry{
			RequestID: fmt.Sprintf("req-%d", i),
			Message:   fmt.Sprintf("message %d", i),
			Confirmed: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "req-4", all[0].RequestID)
	assert.Equal(t, "req-0", all[4].RequestID)

	limited, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "req-3", limited[1].RequestID)
}

func TestListEmpty(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	entries, err := store.List(10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSearch(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	_, err := store.Record(Entry{RequestID: "a", Message: "Migrate the database schema", Confirmed: true})
	require.NoError(t, err)
	_, err = store.Record(Entry{RequestID: "b", Message: "Update README", UserInput: "mention the database too", Confirmed: true})
	require.NoError(t, err)
	_, err = store.Record(Entry{RequestID: "c", Message: "Bump dependencies"})
	require.NoError(t, err)

	results, err := store.Search("database", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].Entry.RequestID, results[1].Entry.RequestID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	none, err := store.Search("kubernetes", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchToleratesQuerySyntax(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()

	_, err := store.Record(Entry{RequestID: "q", Message: `fix "quoted" paths (again)`, Confirmed: true})
	require.NoError(t, err)

	// unbalanced quotes are invalid FTS syntax and fall back to LIKE
	results, err := store.Search(`"quoted`, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "q", results[0].Entry.RequestID)
}

func TestSearchLikeFallback(t *testing.T) {
	store, _ := setupTestDB(t)
	defer store.Close()
	store.hasFTS = false

	_, err := store.Record(Entry{RequestID: "x", Message: "Rotate credentials", Confirmed: true})
	require.NoError(t, err)

	results, err := store.Search("credential", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Rank)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeCancelled, Entry{}.Outcome())
	assert.Equal(t, OutcomeConfirmed, Entry{Confirmed: true}.Outcome())
	assert.Equal(t, OutcomeSelected, Entry{Confirmed: true, Selected: []int{1}}.Outcome())
}
