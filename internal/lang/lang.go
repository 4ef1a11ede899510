// Package lang holds language-specific source analysis: everything a check
// needs to know about a programming language lives behind the Language
// interface. Adding a language means adding one implementation here.
package lang

// FunctionInfo is a function extracted from source, with the statements
// of its body rendered one per entry.
type FunctionInfo struct {
	Name       string
	Statements []string
}

// Language is the narrow capability checks consume.
type Language interface {
	// Name identifies the language, e.g. "go".
	Name() string

	// Suffixes lists source file suffixes, e.g. [".go"].
	Suffixes() []string

	// IgnoreDir reports whether a directory entry should be skipped when
	// walking trees (caches, build output, vendored code).
	IgnoreDir(name string) bool

	// IgnoreSuffix reports whether a file should be skipped by suffix.
	IgnoreSuffix(name string) bool

	// ExtractFunctions pulls functions and their statements out of source.
	// Used by the line-to-function check.
	ExtractFunctions(source string) ([]FunctionInfo, error)

	// ExtractNames pulls top-level declaration names out of source.
	// Used by the name-to-file check.
	ExtractNames(source string) ([]string, error)
}
