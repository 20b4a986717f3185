package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxHeaderLen bounds column headers read from table files.
const maxHeaderLen = 256

// ValidateColumnName checks a column header read from a table file.
// Empty headers are allowed; control characters are not, since they would
// corrupt every width measured from the header.
func ValidateColumnName(name string) error {
	if len(name) > maxHeaderLen {
		return New(ErrCodeInvalidInput, "column name too long (max %d characters)", maxHeaderLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateTablePath checks that path names a table file colfit can read.
// Only .toml and .json files are accepted.
func ValidateTablePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported table file %q (want .toml or .json)", filepath.Base(path))
}
