package testhelpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/mockview/internal/store"
)

// NewStore opens a private in-memory store that is closed when the test
// ends.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(uuid.NewString(), "-", "") + "?mode=memory&cache=shared"
	st, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
