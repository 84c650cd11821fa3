package roster

// decode.go turns raw spreadsheet exports into UTF-8 text.
//
// Rosters arrive from Excel and Google Sheets in whatever encoding the
// organizer's machine used:
//
//   - UTF-8, with or without a BOM
//   - UTF-16 (Excel "Unicode text"), always with a BOM
//   - Shift_JIS (Excel on Japanese Windows), no BOM
//
// Anything still invalid after decoding has its bad bytes replaced with
// U+FFFD so the CSV tokenizer never sees broken sequences.

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw bytes to a UTF-8 string without a BOM.
func Decode(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return sanitize(data[len(bomUTF8):])

	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return sanitize(data)
		}
		return sanitize(out)

	case utf8.Valid(data):
		return string(data)
	}

	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return sanitize(data)
	}
	return sanitize(out)
}

func sanitize(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace (including full-width spaces) and the Excel
// text-formula wrapper (="...").
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}
	return s
}
