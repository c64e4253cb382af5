// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// AvatarExtensions are the image extensions the API accepts for avatars.
// The server compares them case-sensitively.
var AvatarExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// EnsureParentDir creates the directory that will contain path and returns
// it. Existing directories are left alone.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// IsAvatarImage reports whether name carries one of AvatarExtensions.
func IsAvatarImage(name string) bool {
	return slices.Contains(AvatarExtensions, filepath.Ext(name))
}
