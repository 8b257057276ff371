package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pav/analyzer"
)

type options struct {
	Exist       analyzer.Condition
	Standard    analyzer.Condition
	Interpreter string
}

func listRequirements(ctx context.Context, dir string, opts options) ([]string, error) {
	conditions := analyzer.Conditions{
		Exist:    opts.Exist,
		Standard: opts.Standard,
	}

	var registry analyzer.Registry = analyzer.StdlibRegistry{}
	if !conditions.IsZero() {
		r, err := newRegistry(opts.Interpreter)
		if err != nil {
			return nil, err
		}
		registry = r
	}

	p, err := analyzer.NewProject(dir, conditions, registry)
	if err != nil {
		return nil, err
	}
	return p.Find(ctx)
}

func newRegistry(interpreter string) (analyzer.Registry, error) {
	path, err := analyzer.FindInterpreter(interpreter)
	if err != nil {
		if interpreter != "" {
			return nil, err
		}
		slog.Warn("python not found, only standard library modules will resolve", "error", err)
		return analyzer.StdlibRegistry{}, nil
	}
	slog.Debug("using python interpreter", "path", path)
	return analyzer.NewPythonRegistry(path)
}

var formats = []string{"text", "json", "yaml"}

func validateFormat(format string) error {
	for _, f := range formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q, want one of %s", format, strings.Join(formats, ", "))
}

func writeRequirements(w io.Writer, format string, names []string) error {
	if names == nil {
		names = []string{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(names); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, name := range names {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}
		return nil
	}
	return validateFormat(format)
}

// writeRequirementsFile writes names to path, reporting flush and close
// errors as well.
func writeRequirementsFile(path, format string, names []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output file: %w", cerr))
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeRequirements(w, format, names); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
