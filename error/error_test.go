package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.cpp")
	err := os.WriteFile(path, []byte("int a;\nint $b;\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	cause := errors.New("invalid character")

	tests := []struct {
		caption string
		err     *SpecError
		message string
	}{
		{
			caption: "with a source line",
			err: &SpecError{
				Cause:      cause,
				Detail:     `"$"`,
				FilePath:   path,
				SourceName: "main.cpp",
				Row:        2,
				Col:        5,
			},
			message: "main.cpp: 2:5: error: invalid character: \"$\"\n    int $b;",
		},
		{
			caption: "without a file",
			err: &SpecError{
				Cause: cause,
				Row:   3,
			},
			message: "3: error: invalid character",
		},
		{
			caption: "a row past the end of the file",
			err: &SpecError{
				Cause:    cause,
				FilePath: path,
				Row:      9,
			},
			message: "9: error: invalid character",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if tt.err.Error() != tt.message {
				t.Fatalf("unexpected message; want: %#v, got: %#v", tt.message, tt.err.Error())
			}
			if !errors.Is(tt.err, cause) {
				t.Fatal("the cause must be reachable with errors.Is")
			}
		})
	}
}
