package testsupport

import (
	"context"
	"testing"

	"vodsync/internal/config"
	"vodsync/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewVod inserts a VOD row for tests using the provided store.
func NewVod(t testing.TB, st *store.Store, vod *store.Vod) *store.Vod {
	t.Helper()

	if err := st.InsertVod(context.Background(), vod); err != nil {
		t.Fatalf("store.InsertVod: %v", err)
	}
	return vod
}

// StringPtr returns a pointer to the provided string literal.
func StringPtr(value string) *string { return &value }

// Int64Ptr returns a pointer to the provided integer literal.
func Int64Ptr(value int64) *int64 { return &value }
