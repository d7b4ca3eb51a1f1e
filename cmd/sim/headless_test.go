package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/younwookim/slopewalk"

// collectImports walks the module packages reachable from dir and records
// every import path with the file that pulls it in.
func collectImports(t *testing.T, root, dir string, seen map[string]bool, found map[string]string) {
	t.Helper()
	if seen[dir] {
		return
	}
	seen[dir] = true

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		require.NoError(t, err)

		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			require.NoError(t, err)
			if _, ok := found[imp]; !ok {
				found[imp] = path
			}
			if rel, ok := strings.CutPrefix(imp, modulePath+"/"); ok {
				collectImports(t, root, filepath.Join(root, filepath.FromSlash(rel)), seen, found)
			}
		}
	}
}

func TestHeadlessBuild(t *testing.T) {
	root, err := filepath.Abs("../..")
	require.NoError(t, err)

	found := make(map[string]string)
	collectImports(t, root, ".", make(map[string]bool), found)

	require.Contains(t, found, modulePath+"/internal/application/system")
	for imp, file := range found {
		assert.False(t, strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten"), "%s imports %s", file, imp)
	}
}
