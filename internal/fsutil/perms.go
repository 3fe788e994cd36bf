// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package fsutil provides filesystem helpers for the account store.
// Store files hold sealed secrets, so they are owner-only (0600 files,
// 0700 dirs).
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoreDirPerm is the permission mode for store directories.
const StoreDirPerm os.FileMode = 0700

// StoreFilePerm is the permission mode for store files.
const StoreFilePerm os.FileMode = 0600

// MkdirAll creates a directory and all parents with store permissions.
// Unlike os.MkdirAll, this explicitly sets permissions after creation to
// bypass umask restrictions.
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, StoreDirPerm); err != nil {
		return err
	}
	return os.Chmod(path, StoreDirPerm)
}

// WriteFileAtomic writes data to a temporary file in the same directory and
// renames it over path, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(StoreFilePerm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
