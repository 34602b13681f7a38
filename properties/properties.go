// Package properties implements the line oriented key/value format used by
// property resources (key=value or key: value pairs, # and ! comments,
// backslash escapes, ISO-8859-1 with \uXXXX for everything else).  The codec
// matches the canonical format byte for byte, so property files authored for
// other implementations parse identically here.
package properties

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Properties is a set of string pairs with unique keys, kept in first
// insertion order.
type Properties struct {
	keys   []string
	values map[string]string
}

// New creates an empty property set.
func New() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Get returns the value for a key, and whether the key is present.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set stores a pair, overwriting any previous value while keeping the key's
// original position.
func (p *Properties) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of pairs.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Map returns the pairs as a plain map.
func (p *Properties) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// SyntaxError indicates that a property stream did not parse.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed property data at line %d: %s", e.Line, e.Msg)
}

// Load parses a property stream.
//
// The input is read as ISO-8859-1.  Lines whose first non-blank character is
// # or ! are comments.  A key ends at the first unescaped =, :, or blank; a
// single separator after the key, with surrounding blanks, is consumed before
// the value.  A line ending in an odd number of backslashes continues on the
// next line, with that line's leading blanks dropped.
func Load(r io.Reader) (*Properties, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read property data")
	}

	p := New()
	lines := splitLines(data)
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := trimLeadingBlanks(lines[i])
		if len(line) == 0 || line[0] == '#' || line[0] == '!' {
			continue
		}

		for continued(line) && i+1 < len(lines) {
			i++
			line = line[:len(line)-1] + trimLeadingBlanks(lines[i])
		}
		if continued(line) {
			line = line[:len(line)-1]
		}

		key, value, err := splitPair(line, lineNo)
		if err != nil {
			return nil, err
		}
		p.Set(key, value)
	}
	return p, nil
}

// splitLines breaks raw bytes into natural lines, accepting \n, \r, and \r\n
// terminators.
func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, string(data[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, string(data[start:i]))
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func trimLeadingBlanks(s string) string {
	i := 0
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return s[i:]
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

// continued reports whether a logical line spills onto the next natural line,
// i.e. ends in an odd number of backslashes.
func continued(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitPair separates a logical line into its key and value.
func splitPair(line string, lineNo int) (string, string, error) {
	keyEnd := len(line)
	valueStart := len(line)
	hasSep := false

	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if (c == '=' || c == ':') && !escaped {
			keyEnd = i
			valueStart = i + 1
			hasSep = true
			break
		}
		if isBlank(c) && !escaped {
			keyEnd = i
			valueStart = i + 1
			break
		}
		if c == '\\' {
			escaped = !escaped
		} else {
			escaped = false
		}
	}

	for valueStart < len(line) {
		c := line[valueStart]
		if !isBlank(c) {
			if !hasSep && (c == '=' || c == ':') {
				hasSep = true
			} else {
				break
			}
		}
		valueStart++
	}

	key, err := unescape(line[:keyEnd], lineNo)
	if err != nil {
		return "", "", err
	}
	value, err := unescape(line[valueStart:], lineNo)
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}
