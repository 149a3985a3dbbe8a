// Package loader reads guideline catalog files into entries.
//
// Two on-disk formats are accepted: YAML documents and CUE files validated
// against the embedded schema (schema.cue). Either way the file carries a
// top-level "guidelines" list; a guideline with no level (or level 0) is
// generic.
//
// All incoming strings are normalized to NFC at this boundary, so the
// comparators downstream can use plain ordinal comparison without caring
// how a name was composed.
package loader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/mbellwood/arcanum/internal/guideline"
)

//go:embed schema.cue
var schemaCUE string

// Error represents a failure while loading catalog files.
type Error struct {
	Code    string
	Message string
	Path    string
}

// Error codes.
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeNoFiles     = "NO_FILES"
	ErrCodeParse       = "PARSE_ERROR"
	ErrCodeInvalid     = "INVALID_GUIDELINE"
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
)

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// document is the on-disk shape of a catalog file.
type document struct {
	Guidelines []entryDoc `yaml:"guidelines" json:"guidelines"`
}

// entryDoc is one guideline as written in a catalog file.
// Level 0 (or omitted) means generic.
type entryDoc struct {
	Form        string `yaml:"form"                  json:"form"`
	Technique   string `yaml:"technique"             json:"technique"`
	Level       int    `yaml:"level,omitempty"       json:"level"`
	Name        string `yaml:"name"                  json:"name"`
	Description string `yaml:"description,omitempty" json:"description"`
}

// LoadDir loads every catalog file (.yaml, .yml, .cue) under dir, in
// lexical walk order, and returns the combined entries.
func LoadDir(dir string) ([]guideline.Entry, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &Error{Code: ErrCodeNotFound, Message: "catalog directory not found", Path: dir}
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: err.Error(), Path: dir}
	}
	if !info.IsDir() {
		return nil, &Error{Code: ErrCodeNotFound, Message: "not a directory", Path: dir}
	}

	var files []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".cue":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: err.Error(), Path: dir}
	}
	if len(files) == 0 {
		return nil, &Error{Code: ErrCodeNoFiles, Message: "no catalog files found", Path: dir}
	}

	var entries []guideline.Entry
	for _, f := range files {
		loaded, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return entries, nil
}

// LoadFile loads one catalog file, dispatching on its extension.
func LoadFile(path string) ([]guideline.Entry, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".cue":
		return loadCUE(path)
	default:
		return nil, &Error{Code: ErrCodeUnsupported, Message: "unsupported catalog format", Path: path}
	}
}

// loadYAML parses a YAML catalog file.
func loadYAML(path string) ([]guideline.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error(), Path: path}
	}

	return convert(doc, path)
}

// loadCUE parses a CUE catalog file and validates it against the embedded
// schema before decoding. CUE catches malformed guidelines (empty names,
// negative levels) at the boundary, before they can reach the comparator.
func loadCUE(path string) ([]guideline.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: err.Error(), Path: path}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: fmt.Sprintf("schema: %v", err), Path: path}
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error(), Path: path}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Message: err.Error(), Path: path}
	}

	var doc document
	if err := unified.Decode(&doc); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error(), Path: path}
	}

	return convert(doc, path)
}

// convert validates and normalizes decoded guidelines.
func convert(doc document, path string) ([]guideline.Entry, error) {
	entries := make([]guideline.Entry, 0, len(doc.Guidelines))
	for i, g := range doc.Guidelines {
		if g.Form == "" || g.Technique == "" || g.Name == "" {
			return nil, &Error{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("guideline %d: form, technique, and name are required", i),
				Path:    path,
			}
		}
		if g.Level < 0 {
			return nil, &Error{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("guideline %d: level must be >= 0", i),
				Path:    path,
			}
		}
		entries = append(entries, guideline.Entry{
			Key: guideline.Key{
				Form:      norm.NFC.String(g.Form),
				Technique: norm.NFC.String(g.Technique),
				Level:     guideline.Level(g.Level),
				Name:      norm.NFC.String(g.Name),
			},
			Description: norm.NFC.String(g.Description),
		})
	}
	return entries, nil
}
