package analyzer

import "strings"

// SourceFile represents a python source file found under a project root
type SourceFile struct {
	Path     string `json:"path"`
	Resolved string `json:"resolved"`
}

// ImportReference is the token following an import/from keyword
type ImportReference struct {
	Reference string `json:"reference"`
}

// Root returns the first dotted segment of the reference.
func (r ImportReference) Root() string {
	root, _, _ := strings.Cut(r.Reference, ".")
	return root
}

type Classification int

const (
	External Classification = iota
	Internal
)

func (c Classification) String() string {
	if c == Internal {
		return "internal"
	}
	return "external"
}

// ModuleSpec is what the host knows about a module name.
type ModuleSpec struct {
	Found  bool   `json:"found"`
	Origin string `json:"origin"`
}
