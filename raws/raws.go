/*
Package raws reads and edits the token based text files used by the game
for init settings, color schemes and raw definitions.

Tokens are written as [NAME:ARG:...] anywhere in the file; all text
outside square brackets is commentary and is preserved verbatim when a
file is edited and written back.
*/
package raws

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Raw holds the contents of one token file.
type Raw struct {
	path    string
	content string
}

// Load reads the token file at path.
func Load(path string) (*Raw, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Raw{path: path, content: string(b)}, nil
}

// Parse wraps already-read file contents.
func Parse(content string) *Raw {
	return &Raw{content: content}
}

// tokens calls fn for each [NAME:ARGS] token in order, with the offsets of
// the surrounding brackets. Returning false stops the scan.
func (r *Raw) tokens(fn func(start, end int, fields []string) bool) {
	for i := 0; i < len(r.content); {
		start := strings.IndexByte(r.content[i:], '[')
		if start < 0 {
			return
		}
		start += i
		end := strings.IndexByte(r.content[start:], ']')
		if end < 0 {
			return
		}
		end += start
		if !fn(start, end, strings.Split(r.content[start+1:end], ":")) {
			return
		}
		i = end + 1
	}
}

// Value returns the value of the first token named key. A token with
// multiple arguments yields them joined back together with colons.
func (r *Raw) Value(key string) (string, bool) {
	var value string
	var found bool
	r.tokens(func(_, _ int, fields []string) bool {
		if fields[0] != key || len(fields) < 2 {
			return true
		}
		value = strings.Join(fields[1:], ":")
		found = true
		return false
	})
	return value, found
}

// Int returns the value of the first token named key parsed as an integer.
func (r *Raw) Int(key string) (int, error) {
	v, ok := r.Value(key)
	if !ok {
		return 0, fmt.Errorf("raws: no token %q in %s", key, r.path)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("raws: token %q in %s: %w", key, r.path, err)
	}
	return n, nil
}

// Set replaces the value of the first token named key, or appends a new
// token at the end of the file when the key is not present.
func (r *Raw) Set(key, value string) {
	replaced := false
	r.tokens(func(start, end int, fields []string) bool {
		if fields[0] != key {
			return true
		}
		r.content = r.content[:start] + "[" + key + ":" + value + "]" + r.content[end+1:]
		replaced = true
		return false
	})
	if !replaced {
		if len(r.content) > 0 && !strings.HasSuffix(r.content, "\n") {
			r.content += "\n"
		}
		r.content += "[" + key + ":" + value + "]\n"
	}
}

// Save writes the file back to the path it was loaded from.
func (r *Raw) Save() error {
	if r.path == "" {
		return fmt.Errorf("raws: no backing file")
	}
	return os.WriteFile(r.path, []byte(r.content), 0o644)
}

// String returns the current file contents.
func (r *Raw) String() string {
	return r.content
}
