// Package types defines core types shared across TeXForge
package types

import "strings"

// FileExtension identifies an artifact produced by the typesetting engine
type FileExtension string

// Artifact extensions recognized by TeXForge
const (
	ExtensionPDF FileExtension = "PDF"
	ExtensionAUX FileExtension = "AUX"
	ExtensionLOG FileExtension = "LOG"
	ExtensionTOC FileExtension = "TOC"
)

// KnownExtensions lists every extension TeXForge can resolve
var KnownExtensions = []FileExtension{
	ExtensionPDF,
	ExtensionAUX,
	ExtensionLOG,
	ExtensionTOC,
}

// Suffix returns the lowercase filename suffix for the extension
func (e FileExtension) Suffix() string {
	return strings.ToLower(string(e))
}

// IsValid checks whether the extension is one TeXForge recognizes
func (e FileExtension) IsValid() bool {
	for _, known := range KnownExtensions {
		if e == known {
			return true
		}
	}
	return false
}

// ParseExtension converts a user-supplied string into a FileExtension
func ParseExtension(s string) (FileExtension, bool) {
	ext := FileExtension(strings.ToUpper(strings.TrimPrefix(s, ".")))
	if !ext.IsValid() {
		return "", false
	}
	return ext, true
}

// CompileStatus represents the state of a compilation outcome
type CompileStatus string

// Compilation states
const (
	CompileStatusPending   CompileStatus = "pending"
	CompileStatusSucceeded CompileStatus = "succeeded"
	CompileStatusFailed    CompileStatus = "failed"
)
