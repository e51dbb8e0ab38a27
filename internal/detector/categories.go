package detector

// Category labels a class of hidden or deceptive code points.
type Category string

const (
	CategoryZeroWidth             Category = "ZeroWidth"
	CategoryBidiControl           Category = "BidiControl"
	CategoryDeprecatedTag         Category = "DeprecatedTag"
	CategoryVariationSelector     Category = "VariationSelector"
	CategoryBinaryEncodingPattern Category = "BinaryEncodingPattern"
)

// Fixed per-category explanations, used verbatim in every finding.
const (
	zeroWidthMessage         = "Zero-width character that renders no glyph and can hide content or break up identifiers"
	bidiControlMessage       = "Bidirectional control character that can reorder how the surrounding text is displayed"
	deprecatedTagMessage     = "Deprecated tag character that can smuggle an invisible copy of ASCII text"
	variationSelectorMessage = "Variation selector that changes the presentation of the preceding character and is invisible on its own"
)

const (
	zeroWidthSpace          = 0x200B
	zeroWidthNonJoiner      = 0x200C
	zeroWidthJoiner         = 0x200D
	zeroWidthNoBreakSpace   = 0xFEFF
	lineSeparator           = 0x2028
	paragraphSeparator      = 0x2029
	mongolianVowelSeparator = 0x180E
	invisibleTimes          = 0x2062
	invisibleSeparator      = 0x2063
	variationSelector16     = 0xFE0F
)

// zeroWidthSet holds the individually enumerated zero-width members. The
// deprecated-tag and variation-selector categories are contiguous blocks and
// are matched with range checks instead of a materialized set.
var zeroWidthSet = map[rune]struct{}{
	zeroWidthSpace:          {},
	zeroWidthNonJoiner:      {},
	zeroWidthJoiner:         {},
	zeroWidthNoBreakSpace:   {},
	lineSeparator:           {},
	paragraphSeparator:      {},
	mongolianVowelSeparator: {},
}

var bidiControlSet = map[rune]struct{}{
	0x202A: {}, // left-to-right embedding
	0x202B: {}, // right-to-left embedding
	0x202C: {}, // pop directional formatting
	0x202D: {}, // left-to-right override
	0x202E: {}, // right-to-left override
	0x2066: {}, // left-to-right isolate
	0x2067: {}, // right-to-left isolate
	0x2068: {}, // first strong isolate
	0x2069: {}, // pop directional isolate
}

// binaryAlphabet lists the zero-width code points that, repeated in a long
// unbroken run, are treated as a suspected binary-encoded payload.
var binaryAlphabet = map[rune]struct{}{
	zeroWidthSpace:        {},
	zeroWidthNonJoiner:    {},
	zeroWidthJoiner:       {},
	zeroWidthNoBreakSpace: {},
	invisibleTimes:        {},
	invisibleSeparator:    {},
}

// lookupCategory classifies an isolated code point. It reports false for code
// points outside every registered category.
func lookupCategory(cp rune) (Category, string, bool) {
	if _, ok := zeroWidthSet[cp]; ok {
		return CategoryZeroWidth, zeroWidthMessage, true
	}
	if _, ok := bidiControlSet[cp]; ok {
		return CategoryBidiControl, bidiControlMessage, true
	}
	if cp >= 0xE0000 && cp <= 0xE007F {
		return CategoryDeprecatedTag, deprecatedTagMessage, true
	}
	if (cp >= 0xFE00 && cp <= 0xFE0F) || (cp >= 0xE0100 && cp <= 0xE01EF) {
		return CategoryVariationSelector, variationSelectorMessage, true
	}
	return "", "", false
}

func inBinaryAlphabet(cp rune) bool {
	_, ok := binaryAlphabet[cp]
	return ok
}
