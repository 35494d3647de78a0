package errors

import (
	"strings"
	"unicode"
)

// maxFunctionName bounds function names accepted from the CLI and HTTP API.
const maxFunctionName = 1024

// ValidateFunctionName checks a caller-supplied function selector.
// An empty name is valid and means "first function in the result".
func ValidateFunctionName(name string) error {
	if len(name) > maxFunctionName {
		return New(ErrCodeInvalidFunction, "function name too long (max %d characters)", maxFunctionName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFunction, "function name contains invalid control characters")
		}
	}
	return nil
}

// ValidateOutputPath validates a file path used to write rendered output.
// It rejects null bytes and empty paths; everything else is left to the OS.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidInput, "output path contains null byte")
	}
	return nil
}
