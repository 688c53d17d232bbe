// Package extract pulls plain text out of uploaded documents. PDF support is
// deliberately shallow: it scans uncompressed content streams for text
// operators, which covers simple exports but not compressed or image PDFs.
package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the payload looks like a PDF document.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Text returns a best-effort plain-text rendition of the payload. Non-PDF
// input is returned as-is when it is valid UTF-8.
func Text(data []byte) string {
	if IsPDF(data) {
		return pdfText(data)
	}
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// pdfText collects string literals between BT/ET text blocks.
func pdfText(data []byte) string {
	var sb strings.Builder
	rest := data
	for {
		start := bytes.Index(rest, []byte("BT"))
		if start < 0 {
			break
		}
		rest = rest[start+2:]
		end := bytes.Index(rest, []byte("ET"))
		if end < 0 {
			break
		}
		block := rest[:end]
		rest = rest[end+2:]

		for {
			open := bytes.IndexByte(block, '(')
			if open < 0 {
				break
			}
			block = block[open+1:]
			closed := literalEnd(block)
			if closed < 0 {
				break
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.Write(unescape(block[:closed]))
			block = block[closed+1:]
		}
	}
	return strings.TrimSpace(sb.String())
}

// literalEnd finds the closing parenthesis, honoring backslash escapes.
func literalEnd(block []byte) int {
	for i := 0; i < len(block); i++ {
		switch block[i] {
		case '\\':
			i++
		case ')':
			return i
		}
	}
	return -1
}

func unescape(literal []byte) []byte {
	out := make([]byte, 0, len(literal))
	for i := 0; i < len(literal); i++ {
		if literal[i] == '\\' && i+1 < len(literal) {
			i++
			switch literal[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, literal[i])
			}
			continue
		}
		out = append(out, literal[i])
	}
	return out
}
