// Package detector implements a single-pass scanner for invisible and
// semantically deceptive Unicode content: zero-width characters,
// bidirectional control characters, deprecated tag characters, variation
// selectors, and long zero-width runs that look like binary-encoded payloads
// (ASCII smuggling).
//
// All indices and columns are measured in UTF-16 code units so that reported
// coordinates line up with what editors and the SARIF consumers downstream
// expect: a code point above the Basic Multilingual Plane occupies two units
// and its coordinates refer to the first unit.
package detector

import (
	"fmt"
	"unicode/utf16"
)

// minBinaryRunLength is the smallest unbroken run of binary-alphabet code
// points that qualifies as a suspected binary-encoded payload. Shorter runs
// occur legitimately (accidental double joiners) and fall back to
// per-code-point classification.
const minBinaryRunLength = 8

// PatternCodePoint is the CodePoint sentinel on pattern findings, which span
// many code points and therefore have no single scalar value.
const PatternCodePoint rune = -1

// Position is an inclusive end coordinate of a pattern finding.
type Position struct {
	Index  int `json:"index"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Finding is one detected occurrence. StartLine is 1-based; StartIndex and
// StartColumn count UTF-16 units, the column relative to the last newline.
// End is set only on BinaryEncodingPattern findings; its absence is how
// consumers distinguish a point finding from a range finding.
type Finding struct {
	Display     string    `json:"display"`
	CodePoint   rune      `json:"code_point"`
	StartIndex  int       `json:"start_index"`
	StartLine   int       `json:"start_line"`
	StartColumn int       `json:"start_column"`
	Category    Category  `json:"category"`
	Message     string    `json:"message"`
	End         *Position `json:"end,omitempty"`
}

// Scan walks text left to right and returns every finding in ascending
// StartIndex order. It is a pure function: no state survives across calls,
// and concurrent calls on independent inputs are safe. It never fails; empty
// input and isolated surrogate halves are handled like any other content.
func Scan(text string) []Finding {
	units := utf16.Encode([]rune(text))
	findings := []Finding{}

	line, column := 1, 0
	i := 0
	for i < len(units) {
		cp, width := decodeAt(units, i)

		if inBinaryAlphabet(cp) {
			if f, next, nextLine, nextColumn, ok := matchBinaryRun(units, i, line, column); ok {
				findings = append(findings, f)
				i, line, column = next, nextLine, nextColumn
				continue
			}
		}

		if category, message, ok := lookupCategory(cp); ok && !suppressed(units, i, cp) {
			findings = append(findings, Finding{
				Display:     fmt.Sprintf("U+%04X", cp),
				CodePoint:   cp,
				StartIndex:  i,
				StartLine:   line,
				StartColumn: column,
				Category:    category,
				Message:     message,
			})
		}

		if cp == '\n' {
			line++
			column = 0
		} else {
			column += width
		}
		i += width
	}
	return findings
}

// decodeAt returns the code point starting at unit index i and the number of
// units it occupies. An unpaired surrogate half decodes as itself with
// width 1.
func decodeAt(units []uint16, i int) (rune, int) {
	u := rune(units[i])
	if u >= 0xD800 && u < 0xDC00 && i+1 < len(units) {
		if v := rune(units[i+1]); v >= 0xDC00 && v < 0xE000 {
			return utf16.DecodeRune(u, v), 2
		}
	}
	return u, 1
}

// matchBinaryRun greedily extends a run of binary-alphabet code points
// starting at unit index start. Newlines inside the run are tolerated and
// tracked for line/column bookkeeping but do not count toward the run length
// and never terminate it; the run ends at the first other non-member code
// point or end of input. If the run reaches minBinaryRunLength the whole run
// is reported as one finding and the returned cursor/line/column resume just
// past the run's last member, so trailing newlines are left for the caller
// to process normally.
func matchBinaryRun(units []uint16, start, line, column int) (Finding, int, int, int, bool) {
	i, l, c := start, line, column
	count := 0
	var end Position

	for i < len(units) {
		cp, width := decodeAt(units, i)
		if inBinaryAlphabet(cp) {
			count++
			end = Position{Index: i, Line: l, Column: c}
			c += width
			i += width
			continue
		}
		if cp == '\n' {
			l++
			c = 0
			i++
			continue
		}
		break
	}

	if count < minBinaryRunLength {
		return Finding{}, 0, 0, 0, false
	}

	f := Finding{
		Display:     fmt.Sprintf("[Binary Pattern (%d chars)]", count),
		CodePoint:   PatternCodePoint,
		StartIndex:  start,
		StartLine:   line,
		StartColumn: column,
		Category:    CategoryBinaryEncodingPattern,
		Message:     fmt.Sprintf("Unbroken run of %d zero-width characters, a likely binary-encoded payload", count),
		End:         &end,
	}
	// Alphabet members are all single-unit, so the run's last member ends at
	// end.Index and the scan resumes one unit after it.
	return f, end.Index + 1, end.Line, end.Column + 1, true
}

// suppressed applies the emoji-sequence heuristics. Only variation selector
// 16 and the zero-width joiner are ever suppressed; everything else is
// always reported.
func suppressed(units []uint16, i int, cp rune) bool {
	switch cp {
	case variationSelector16:
		return vs16Suppressed(units, i)
	case zeroWidthJoiner:
		return zwjSuppressed(units, i)
	}
	return false
}

// vs16Suppressed keeps a VS16 finding only when the preceding scalar value
// is missing or is a control/separator. A VS16 after an ordinary visible
// symbol is most plausibly requesting emoji presentation for it.
func vs16Suppressed(units []uint16, i int) bool {
	prev, ok := precedingScalar(units, i)
	if !ok {
		return false
	}
	return !isControlOrSeparator(prev)
}

// zwjSuppressed suppresses a zero-width joiner only when it actually joins
// two emoji-like components: the preceding base must carry an emoji
// property, and the scalar value right after the joiner must be VS16 or a
// non-control, non-separator character.
func zwjSuppressed(units []uint16, i int) bool {
	prev, ok := precedingScalar(units, i)
	if !ok || !isEmojiBase(prev) {
		return false
	}
	if i+1 >= len(units) {
		return false
	}
	next, _ := decodeAt(units, i+1)
	return next == variationSelector16 || !isControlOrSeparator(next)
}

// precedingScalar returns the scalar value before unit index i, skipping one
// intervening VS16 if present and re-joining a surrogate pair so the full
// supplementary-plane scalar is examined rather than its low half.
func precedingScalar(units []uint16, i int) (rune, bool) {
	j := i - 1
	if j >= 0 && rune(units[j]) == variationSelector16 {
		j--
	}
	if j < 0 {
		return 0, false
	}
	u := rune(units[j])
	if u >= 0xDC00 && u < 0xE000 && j-1 >= 0 {
		if v := rune(units[j-1]); v >= 0xD800 && v < 0xDC00 {
			return utf16.DecodeRune(v, u), true
		}
	}
	return u, true
}
