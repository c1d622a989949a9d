package templates

import (
	"strings"
	"unicode/utf16"
)

// SMS segment sizes for the two encodings carriers use.
const (
	gsmSingleSegment     = 160
	gsmMultiSegment      = 153
	unicodeSingleSegment = 70
	unicodeMultiSegment  = 67
)

const gsmBasic = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?" +
	"¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"

// Extension characters take an escape plus the character itself.
const gsmExtended = "^{}\\[~]|€\f"

// SegmentInfo describes how an SMS body will be billed.
type SegmentInfo struct {
	Characters int  `json:"characters"`
	Segments   int  `json:"segments"`
	Unicode    bool `json:"unicode"`
}

// Segments counts encoded characters and the number of SMS parts for text.
func Segments(text string) SegmentInfo {
	if text == "" {
		return SegmentInfo{}
	}
	septets, isGSM := gsmLength(text)
	if isGSM {
		return SegmentInfo{Characters: septets, Segments: parts(septets, gsmSingleSegment, gsmMultiSegment)}
	}
	units := len(utf16.Encode([]rune(text)))
	return SegmentInfo{Characters: units, Segments: parts(units, unicodeSingleSegment, unicodeMultiSegment), Unicode: true}
}

// ExceedsSingleSegment reports whether text is longer than 160 characters,
// the limit the dashboard warns about.
func ExceedsSingleSegment(text string) bool {
	return len(utf16.Encode([]rune(text))) > gsmSingleSegment
}

func gsmLength(text string) (int, bool) {
	n := 0
	for _, r := range text {
		switch {
		case strings.ContainsRune(gsmBasic, r):
			n++
		case strings.ContainsRune(gsmExtended, r):
			n += 2
		default:
			return 0, false
		}
	}
	return n, true
}

func parts(length, single, multi int) int {
	if length <= single {
		return 1
	}
	return (length + multi - 1) / multi
}
