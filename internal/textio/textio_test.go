package textio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain", []byte("float x;\n"), "float x;\n"},
		{"empty", nil, ""},
		{"utf8 bom", []byte("\xef\xbb\xbffloat x;\n"), "float x;\n"},
		{"utf16le bom", []byte{0xff, 0xfe, 'v', 0, 'e', 0, 'c', 0, '3', 0}, "vec3"},
		{"utf16be bom", []byte{0xfe, 0xff, 0, 'v', 0, 'e', 0, 'c', 0, '3'}, "vec3"},
		{"invalid utf8", []byte("a\xffb"), "a�b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fog.glsl")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbffloat fogFactor;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if diff := cmp.Diff("float fogFactor;\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.glsl"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}
