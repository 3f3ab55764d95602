// Package encoding provides text encoding helpers for GRF archive file names,
// which are stored as EUC-KR.
package encoding

import (
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// EUCKRToUTF8 converts EUC-KR encoded bytes to a UTF-8 string.
// Returns the input unchanged if conversion fails.
func EUCKRToUTF8(data []byte) string {
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// NormalizePath normalizes an archive path for case-insensitive lookup.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}
