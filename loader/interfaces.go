package loader

import (
	"io"

	"github.com/panyam/stanpyro/decl"
)

// Parser turns a program description into a Program.
type Parser interface {
	// Parse reads from the input reader and returns the program.
	// sourceName is used for context in error messages (e.g., file path).
	Parse(input io.Reader, sourceName string) (*decl.Program, error)
}

// FileResolver locates included program descriptions.
type FileResolver interface {
	// Resolve returns the content of includePath as seen from importerPath,
	// and its canonical path for caching and cycle detection.
	Resolve(importerPath, includePath string) (content io.ReadCloser, canonicalPath string, err error)
}
