package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// tokenKind classifies content stream tokens
type tokenKind int

const (
	tokenOperator tokenKind = iota
	tokenNumber
	tokenString
	tokenArrayStart
	tokenArrayEnd
	tokenOther
)

type streamToken struct {
	kind  tokenKind
	text  string
	value float64
}

// streamTextLines extracts text-showing operators from a decoded content
// stream. It only understands simple single-byte and UTF-16BE strings, which
// is enough for a last-resort backend.
func streamTextLines(data []byte) []string {
	var lines []string
	var current strings.Builder
	var operands []streamToken
	var lastTmY float64
	haveTm := false

	newline := func() {
		if line := strings.TrimRight(current.String(), " "); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, tok := range tokenizeStream(data) {
		if tok.kind != tokenOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tj":
			writeStrings(&current, operands, false)
		case "TJ":
			writeStrings(&current, operands, true)
		case "'", "\"":
			newline()
			writeStrings(&current, operands, false)
		case "T*":
			newline()
		case "Td", "TD":
			if n := numbers(operands); len(n) == 2 {
				if n[1] != 0 {
					newline()
				} else if n[0] > 0 && current.Len() > 0 {
					current.WriteByte(' ')
				}
			}
		case "Tm":
			if n := numbers(operands); len(n) == 6 {
				if haveTm && n[5] != lastTmY {
					newline()
				}
				lastTmY, haveTm = n[5], true
			}
		case "ET":
			newline()
			haveTm = false
		}
		operands = operands[:0]
	}
	newline()

	return lines
}

// writeStrings appends the string operands. In TJ arrays a large negative
// adjustment is a word gap.
func writeStrings(b *strings.Builder, operands []streamToken, array bool) {
	for _, op := range operands {
		switch op.kind {
		case tokenString:
			b.WriteString(op.text)
		case tokenNumber:
			if array && op.value < -200 {
				b.WriteByte(' ')
			}
		}
	}
}

func numbers(operands []streamToken) []float64 {
	var n []float64
	for _, op := range operands {
		if op.kind == tokenNumber {
			n = append(n, op.value)
		}
	}
	return n
}

func tokenizeStream(data []byte) []streamToken {
	var tokens []streamToken
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			raw, next := readLiteral(data, i)
			tokens = append(tokens, streamToken{kind: tokenString, text: decodeText(raw)})
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			tokens = append(tokens, streamToken{kind: tokenOther, text: "<<"})
			i += 2
		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			tokens = append(tokens, streamToken{kind: tokenOther, text: ">>"})
			i += 2
		case c == '<':
			raw, next := readHex(data, i)
			tokens = append(tokens, streamToken{kind: tokenString, text: decodeText(raw)})
			i = next
		case c == '[':
			tokens = append(tokens, streamToken{kind: tokenArrayStart, text: "["})
			i++
		case c == ']':
			tokens = append(tokens, streamToken{kind: tokenArrayEnd, text: "]"})
			i++
		case c == '/':
			j := i + 1
			for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
				j++
			}
			tokens = append(tokens, streamToken{kind: tokenOther, text: string(data[i:j])})
			i = j
		default:
			j := i
			for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
				j++
			}
			if j == i {
				// Stray delimiter such as ')' or '{'
				i++
				continue
			}
			word := string(data[i:j])
			if v, err := strconv.ParseFloat(word, 64); err == nil {
				tokens = append(tokens, streamToken{kind: tokenNumber, text: word, value: v})
			} else {
				tokens = append(tokens, streamToken{kind: tokenOperator, text: word})
			}
			i = j
		}
	}
	return tokens
}

// readLiteral reads a balanced (...) string starting at data[start] and
// resolves its escape sequences
func readLiteral(data []byte, start int) ([]byte, int) {
	var out []byte
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r', '\n':
				// Line continuation
			default:
				if e >= '0' && e <= '7' {
					val := 0
					for k := 0; k < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7'; k++ {
						val = val*8 + int(data[i]-'0')
						i++
					}
					out = append(out, byte(val))
					continue
				}
				out = append(out, e)
			}
		case c == '(':
			if depth > 0 {
				out = append(out, c)
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return out, i + 1
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
		i++
	}
	return out, i
}

// readHex reads a <...> hex string starting at data[start]
func readHex(data []byte, start int) ([]byte, int) {
	end := bytes.IndexByte(data[start:], '>')
	if end < 0 {
		return nil, len(data)
	}
	digits := make([]byte, 0, end)
	for _, c := range data[start+1 : start+end] {
		if !isWhitespace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for k := 0; k+1 < len(digits); k += 2 {
		v, err := strconv.ParseUint(string(digits[k:k+2]), 16, 8)
		if err != nil {
			break
		}
		out = append(out, byte(v))
	}
	return out, start + end + 1
}

// decodeText interprets string bytes as UTF-16BE when they carry a byte
// order mark and as Latin-1 otherwise
func decodeText(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		if s, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw); err == nil {
			return string(s)
		}
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}
