package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry answers whether a module name resolves on the host.
type Registry interface {
	Lookup(ctx context.Context, name string) ModuleSpec
}

const lookupCacheSize = 1024

// probeScript resolves argv[1] with importlib and prints the result as json.
const probeScript = `import json, sys
from importlib.util import find_spec
try:
    spec = find_spec(sys.argv[1])
except Exception:
    spec = None
print(json.dumps({"found": spec is not None, "origin": getattr(spec, "origin", None) or ""}))
`

// PythonRegistry looks names up with a python interpreter.
type PythonRegistry struct {
	Interpreter string
	cache       *lru.Cache[string, ModuleSpec]
}

func NewPythonRegistry(interpreter string) (*PythonRegistry, error) {
	cache, err := lru.New[string, ModuleSpec](lookupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}
	return &PythonRegistry{
		Interpreter: interpreter,
		cache:       cache,
	}, nil
}

// Lookup never fails: any probe error is reported as a missing module.
func (r *PythonRegistry) Lookup(ctx context.Context, name string) ModuleSpec {
	if spec, ok := r.cache.Get(name); ok {
		return spec
	}
	spec, err := r.probe(ctx, name)
	if err != nil {
		slog.Debug("module lookup failed", "module", name, "error", err)
		// a cancelled probe says nothing about the module
		if ctx.Err() != nil {
			return ModuleSpec{}
		}
	}
	r.cache.Add(name, spec)
	return spec
}

func (r *PythonRegistry) probe(ctx context.Context, name string) (ModuleSpec, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Interpreter, "-c", probeScript, name)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return ModuleSpec{}, fmt.Errorf("probe %s: %w: %s", r.Interpreter, err, bytes.TrimSpace(stderr.Bytes()))
	}

	var spec ModuleSpec
	if err := json.Unmarshal(stdout.Bytes(), &spec); err != nil {
		return ModuleSpec{}, fmt.Errorf("decode probe output: %w", err)
	}
	return spec, nil
}

var ErrNoInterpreter = errors.New("no python interpreter found")

// FindInterpreter returns preferred when set, otherwise the first of
// python3 and python found on PATH.
func FindInterpreter(preferred string) (string, error) {
	candidates := []string{"python3", "python"}
	if preferred != "" {
		candidates = []string{preferred}
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %v)", ErrNoInterpreter, candidates)
}
