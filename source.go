package logconfig

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

//go:embed configs/*.json configs/*.yaml
var builtinConfigs embed.FS

// Source resolves definition names to raw definition documents.
type Source interface {
	// Lookup returns the document for name and its extension (".json",
	// ".yaml" or ".yml"). It returns an error matching fs.ErrNotExist when
	// the source has no such definition.
	Lookup(name string) (data []byte, ext string, err error)
	// Names lists the definitions the source can resolve.
	Names() []string
}

type fsSource struct {
	fsys fs.FS
	dir  string
}

// FSSource serves definitions stored as files in dir within fsys.
func FSSource(fsys fs.FS, dir string) Source {
	return &fsSource{fsys: fsys, dir: dir}
}

// DirSource serves definitions stored as files in a directory on disk.
func DirSource(dir string) Source {
	return &fsSource{fsys: os.DirFS(dir), dir: "."}
}

// BuiltinSource serves the definitions shipped with the package:
// logging_console, logging_file, logging_rotating and logging_console_file.
func BuiltinSource() Source {
	return &fsSource{fsys: builtinConfigs, dir: "configs"}
}

func (s *fsSource) Lookup(name string) ([]byte, string, error) {
	if !fs.ValidPath(name) || strings.Contains(name, "/") {
		return nil, emptyString, fs.ErrNotExist
	}
	for _, ext := range definitionExts {
		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, name+ext))
		if err == nil {
			return data, ext, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, emptyString, err
		}
	}
	return nil, emptyString, fs.ErrNotExist
}

func (s *fsSource) Names() []string {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := definitionName(e.Name()); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// MapSource serves definitions from memory, keyed by file name including
// the extension, for example "audit.yaml".
type MapSource map[string]string

func (m MapSource) Lookup(name string) ([]byte, string, error) {
	for _, ext := range definitionExts {
		if doc, ok := m[name+ext]; ok {
			return []byte(doc), ext, nil
		}
	}
	return nil, emptyString, fs.ErrNotExist
}

func (m MapSource) Names() []string {
	var names []string
	for file := range m {
		if name, ok := definitionName(file); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// definitionName strips a definition extension from a file name.
func definitionName(file string) (string, bool) {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	ext := path.Ext(base)
	if !slices.Contains(definitionExts, ext) {
		return emptyString, false
	}
	return strings.TrimSuffix(base, ext), true
}
