package properties

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// unescape decodes the escapes in a key or value.  Input bytes are ISO-8859-1,
// so each byte maps directly to the code point of the same value.  \uXXXX
// escapes carry everything else; surrogate pairs are combined.
func unescape(s string, lineNo int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteRune(rune(c))
			continue
		}

		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'u':
			r, width, err := unescapeUnicode(s[i-1:], lineNo)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += width - 2
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		default:
			// unknown escapes yield the character itself
			b.WriteRune(rune(s[i]))
		}
	}
	return b.String(), nil
}

// unescapeUnicode decodes one \uXXXX escape (or a surrogate pair of them) at
// the start of s, returning the code point and the number of bytes consumed.
func unescapeUnicode(s string, lineNo int) (rune, int, error) {
	u, err := hex4(s, lineNo)
	if err != nil {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(rune(u)) {
		return rune(u), 6, nil
	}
	if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		u2, err := hex4(s[6:], lineNo)
		if err != nil {
			return 0, 0, err
		}
		if r := utf16.DecodeRune(rune(u), rune(u2)); r != 0xFFFD {
			return r, 12, nil
		}
	}
	// unpaired surrogates have no valid encoding; carry the replacement char
	return 0xFFFD, 6, nil
}

// hex4 parses the four hex digits of a \uXXXX escape at the start of s.
func hex4(s string, lineNo int) (uint16, error) {
	if len(s) < 6 {
		return 0, &SyntaxError{Line: lineNo, Msg: "truncated \\u escape"}
	}
	v, err := strconv.ParseUint(s[2:6], 16, 16)
	if err != nil {
		return 0, &SyntaxError{Line: lineNo, Msg: "malformed \\u escape " + s[:6]}
	}
	return uint16(v), nil
}

// escape encodes a key or value for Store.  Blanks are escaped everywhere in
// keys and at the start of values; separators and comment markers always;
// anything outside printable ASCII as \uXXXX (pairs for supplementary
// characters).
func escape(s string, isKey bool) string {
	var b strings.Builder
	i := 0
	for _, r := range s {
		switch r {
		case ' ':
			if isKey || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(' ')
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '=', ':', '#', '!':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			switch {
			case r < 0x20 || r > 0x7e:
				for _, u := range utf16.Encode([]rune{r}) {
					writeUnicodeEscape(&b, u)
				}
			default:
				b.WriteRune(r)
			}
		}
		i++
	}
	return b.String()
}

const hexDigits = "0123456789ABCDEF"

func writeUnicodeEscape(b *strings.Builder, u uint16) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[u>>12&0xF])
	b.WriteByte(hexDigits[u>>8&0xF])
	b.WriteByte(hexDigits[u>>4&0xF])
	b.WriteByte(hexDigits[u&0xF])
}
