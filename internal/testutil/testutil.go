// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayoisaiah/momentum/store"
)

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	return nil
}

// OpenDB opens a database with the named driver in a temporary directory.
// It is closed when the test ends.
func OpenDB(t *testing.T, driver string) store.DB {
	t.Helper()

	db, err := store.Open(driver, filepath.Join(t.TempDir(), "momentum.db"))
	if err != nil {
		t.Fatalf("opening %s database: %v", driver, err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
