package loader

import (
	"fmt"
	"slices"
	"sync"

	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
)

// LoadResult holds the outcome of a loading operation.
type LoadResult struct {
	Program     *decl.Program            // The root program with included functions merged in.
	LoadedFiles map[string]*decl.Program // Every file loaded, keyed by canonical path.
	Errors      []error
}

// Loader parses a program description and recursively merges the function
// libraries it includes.
type Loader struct {
	parser   Parser
	resolver FileResolver
	maxDepth int

	mutex       sync.Mutex
	loadedFiles map[string]*decl.Program
	pending     map[string]bool // files on the current include chain, for cycle detection
}

// NewLoader creates a loader. maxDepth limits include nesting (0 means no
// limit, 1 means root only).
func NewLoader(parser Parser, resolver FileResolver, maxDepth int) *Loader {
	return &Loader{
		parser:   parser,
		resolver: resolver,
		maxDepth: maxDepth,
	}
}

// Load parses rootPath and everything it includes.
func (l *Loader) Load(rootPath string) (*LoadResult, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.loadedFiles = make(map[string]*decl.Program)
	l.pending = make(map[string]bool)

	prog, err := l.loadFileRecursive("", rootPath, 0)
	if err != nil {
		err = fmt.Errorf("failed to load '%s': %w", rootPath, err)
		return &LoadResult{LoadedFiles: l.loadedFiles, Errors: []error{err}}, err
	}
	core.Debug("loaded %s from %d file(s)", prog, len(l.loadedFiles))
	return &LoadResult{Program: prog, LoadedFiles: l.loadedFiles}, nil
}

func (l *Loader) loadFileRecursive(importerPath, filePath string, depth int) (*decl.Program, error) {
	// depth 0 is the root, so maxDepth 1 allows no includes.
	if l.maxDepth > 0 && depth >= l.maxDepth {
		return nil, fmt.Errorf("max include depth (%d) exceeded near '%s'", l.maxDepth, filePath)
	}

	content, canonicalPath, err := l.resolver.Resolve(importerPath, filePath)
	if err != nil {
		return nil, err
	}
	defer content.Close()

	if prog, found := l.loadedFiles[canonicalPath]; found {
		return prog, nil
	}
	if l.pending[canonicalPath] {
		return nil, fmt.Errorf("circular include detected: '%s' is already being loaded", canonicalPath)
	}
	l.pending[canonicalPath] = true
	defer delete(l.pending, canonicalPath)

	prog, err := l.parser.Parse(content, canonicalPath)
	if err != nil {
		return nil, err
	}

	var included []*decl.FunctionDecl
	for _, inc := range prog.Includes {
		lib, err := l.loadFileRecursive(canonicalPath, inc, depth+1)
		if err != nil {
			return nil, fmt.Errorf("failed to include '%s' from '%s': %w", inc, canonicalPath, err)
		}
		for _, fn := range lib.Functions {
			if !slices.Contains(included, fn) {
				included = append(included, fn)
			}
		}
	}
	for _, fn := range included {
		if prog.Function(fn.Name) != nil {
			return nil, fmt.Errorf("function '%s' in '%s' is already defined by an include", fn.Name, canonicalPath)
		}
	}
	prog.Functions = append(included, prog.Functions...)

	l.loadedFiles[canonicalPath] = prog
	return prog, nil
}
