package analyzer

import (
	"bufio"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"
	"unicode"
)

var importKeywords = []string{"import", "from"}

// isSpace matches the characters python's str.strip and str.split treat
// as whitespace, which includes the ASCII file/group/record/unit separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// ParseImportLine extracts the reference from a single source line. The
// match is purely textual: any trimmed line starting with "import" or
// "from" qualifies, including lines in docstrings. Only the token right
// after the keyword is read, so "import a, b" yields "a" and never "b".
// Lines with nothing after the keyword do not match.
func ParseImportLine(line string) (ImportReference, bool) {
	line = strings.TrimFunc(line, isSpace)

	matched := false
	for _, kw := range importKeywords {
		if strings.HasPrefix(line, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return ImportReference{}, false
	}

	fields := strings.FieldsFunc(line, isSpace)
	if len(fields) < 2 {
		return ImportReference{}, false
	}
	ref, _, _ := strings.Cut(fields[1], ",")
	return ImportReference{Reference: ref}, true
}

// Imports yields the references found in the file at path. Invalid UTF-8
// is dropped and unreadable files yield nothing.
func Imports(path string) iter.Seq[ImportReference] {
	return func(yield func(ImportReference) bool) {
		f, err := os.Open(path)
		if err != nil {
			slog.Debug("skip unreadable file", "path", path, "error", err)
			return
		}
		defer f.Close()

		for line := range universalLines(bufio.NewReader(f), path) {
			ref, ok := ParseImportLine(strings.ToValidUTF8(line, ""))
			if !ok {
				continue
			}
			if !yield(ref) {
				return
			}
		}
	}
}

// universalLines yields the lines of r split on "\n", "\r\n" and a lone
// "\r". Lines have no length limit.
func universalLines(r *bufio.Reader, path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			chunk, err := r.ReadString('\n')
			if chunk != "" {
				chunk = strings.TrimSuffix(chunk, "\n")
				chunk = strings.TrimSuffix(chunk, "\r")
				for _, line := range strings.Split(chunk, "\r") {
					if !yield(line) {
						return
					}
				}
			}
			if err != nil {
				if err != io.EOF {
					slog.Debug("stop reading file", "path", path, "error", err)
				}
				return
			}
		}
	}
}
