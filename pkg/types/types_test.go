package types_test

import (
	"testing"

	"github.com/texforge/texforge/pkg/types"
)

func TestFileExtensionSuffix(t *testing.T) {
	tests := []struct {
		ext  types.FileExtension
		want string
	}{
		{types.ExtensionPDF, "pdf"},
		{types.ExtensionAUX, "aux"},
		{types.ExtensionLOG, "log"},
		{types.ExtensionTOC, "toc"},
	}

	for _, tt := range tests {
		if got := tt.ext.Suffix(); got != tt.want {
			t.Errorf("Suffix(%s) = %s, want %s", tt.ext, got, tt.want)
		}
	}
}

func TestParseExtension(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   types.FileExtension
		wantOK bool
	}{
		{name: "uppercase", input: "PDF", want: types.ExtensionPDF, wantOK: true},
		{name: "lowercase", input: "log", want: types.ExtensionLOG, wantOK: true},
		{name: "leading dot", input: ".toc", want: types.ExtensionTOC, wantOK: true},
		{name: "unknown", input: "dvi", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := types.ParseExtension(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseExtension(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseExtension(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestKnownExtensionsValid(t *testing.T) {
	for _, ext := range types.KnownExtensions {
		if !ext.IsValid() {
			t.Errorf("extension %s should be valid", ext)
		}
	}

	if types.FileExtension("DVI").IsValid() {
		t.Error("DVI should not be a recognized extension")
	}
}
