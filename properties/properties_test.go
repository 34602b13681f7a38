package properties_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
	"github.com/respath/respath/properties"
)

func TestLoad(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{"equalsSeparator", "a=1\nb=2\n", map[string]string{"a": "1", "b": "2"}},
		{"colonSeparator", "a: 1\n", map[string]string{"a": "1"}},
		{"blankSeparator", "a 1\n", map[string]string{"a": "1"}},
		{"blankThenSeparator", "a  =  1\n", map[string]string{"a": "1"}},
		{"noValue", "a\nb=\n", map[string]string{"a": "", "b": ""}},
		{"comments", "#c1\n!c2\n   # indented\na=1\n", map[string]string{"a": "1"}},
		{"blankLines", "\n 	\na=1\n\n", map[string]string{"a": "1"}},
		{"crlfAndCr", "a=1\r\nb=2\rc=3\n", map[string]string{"a": "1", "b": "2", "c": "3"}},
		{"continuation", "fruits=apple, \\\n       banana\n", map[string]string{"fruits": "apple, banana"}},
		{"escapedBackslashNoContinuation", "p=c\\\\\nq=1\n", map[string]string{"p": "c\\", "q": "1"}},
		{"escapedSeparatorInKey", "a\\=b=c\na\\ b : d\n", map[string]string{"a=b": "c", "a b": "d"}},
		{"charEscapes", "s=\\t\\n\\r\\f\\\\\n", map[string]string{"s": "\t\n\r\f\\"}},
		{"unknownEscape", "s=\\x\\q\n", map[string]string{"s": "xq"}},
		{"unicodeEscape", "s=caf\\u00E9\n", map[string]string{"s": "café"}},
		{"surrogatePair", "s=\\uD83D\\uDE00\n", map[string]string{"s": "😀"}},
		{"latin1Bytes", "s=caf\xe9\n", map[string]string{"s": "café"}},
		{"lastValueWins", "a=1\na=2\n", map[string]string{"a": "2"}},
		{"trailingValueBlanksKept", "a=1  \n", map[string]string{"a": "1  "}},
		{"noTrailingNewline", "a=1", map[string]string{"a": "1"}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p, err := properties.Load(strings.NewReader(c.input))
			if err != nil {
				t.Fatalf("could not parse: %s", err)
			}
			if diff := deep.Equal(c.expected, p.Map()); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"truncatedUnicode", "a=\\u00\n"},
		{"nonHexUnicode", "a=\\uZZZZ\n"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := properties.Load(strings.NewReader(c.input))
			if err == nil {
				t.Fatalf("expected a syntax error")
			}
			if _, ok := errors.Cause(err).(*properties.SyntaxError); !ok {
				t.Errorf("expected a SyntaxError, got %T", errors.Cause(err))
			}
		})
	}
}

func TestKeyOrder(t *testing.T) {
	p, err := properties.Load(strings.NewReader("b=2\na=1\nc=3\nb=20\n"))
	if err != nil {
		t.Fatalf("could not parse: %s", err)
	}
	if diff := deep.Equal([]string{"b", "a", "c"}, p.Keys()); diff != nil {
		t.Error(diff)
	}
	if v, _ := p.Get("b"); v != "20" {
		t.Errorf("expected the later value for b, got %s", v)
	}
}

func TestRoundTrip(t *testing.T) {
	p := properties.New()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("needs escaping = here", " leading blank and café")
	p.Set("emoji", "😀")

	var buf bytes.Buffer
	if err := p.Store(&buf, "test data"); err != nil {
		t.Fatalf("could not serialize: %s", err)
	}

	reparsed, err := properties.Load(&buf)
	if err != nil {
		t.Fatalf("could not reparse: %s", err)
	}
	if diff := deep.Equal(p.Map(), reparsed.Map()); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(p.Keys(), reparsed.Keys()); diff != nil {
		t.Error(diff)
	}
}
