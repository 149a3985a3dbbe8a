package guideline

import "fmt"

// Key is the immutable composite identity of a guideline:
// (form, technique, level, name). No two catalog entries may share a key.
type Key struct {
	Form      string `json:"form"      yaml:"form"`
	Technique string `json:"technique" yaml:"technique"`
	Level     Level  `json:"level"     yaml:"level"`
	Name      string `json:"name"      yaml:"name"`
}

// String renders the key in rulebook notation, e.g.
// "Animal Creo 5: Cure X" or "Animal Creo Generic: Heal Z".
func (k Key) String() string {
	return fmt.Sprintf("%s %s %s: %s", k.Form, k.Technique, k.Level, k.Name)
}

// Entry is a guideline record: a key plus optional free-text description.
// Entries are value types; the catalog hands out copies, never handles into
// its backing storage.
type Entry struct {
	Key         Key    `json:"key"                   yaml:",inline"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PartialKey supplies a subset of key fields for filtering. A nil field is
// absent and matches unconditionally. Partial keys never establish a fresh
// total order: an all-nil partial key equals everything by definition.
type PartialKey struct {
	Form      *string
	Technique *string
	Level     *Level
	Name      *string
}

// Empty reports whether no field is supplied.
func (p PartialKey) Empty() bool {
	return p.Form == nil && p.Technique == nil && p.Level == nil && p.Name == nil
}

// WithForm returns a copy of the partial key with form set.
func (p PartialKey) WithForm(form string) PartialKey {
	p.Form = &form
	return p
}

// WithTechnique returns a copy of the partial key with technique set.
func (p PartialKey) WithTechnique(technique string) PartialKey {
	p.Technique = &technique
	return p
}

// WithLevel returns a copy of the partial key with level set.
func (p PartialKey) WithLevel(level Level) PartialKey {
	p.Level = &level
	return p
}

// WithName returns a copy of the partial key with name set.
func (p PartialKey) WithName(name string) PartialKey {
	p.Name = &name
	return p
}
