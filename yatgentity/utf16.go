package yatgentity

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16Len returns the length of text in UTF-16 code units, the unit Telegram uses
// for entity offsets.
func UTF16Len(text string) int {
	size := 0

	for _, r := range text {
		size += utf16.RuneLen(r)
	}

	return size
}

// EncodeUTF16 converts text to UTF-16 code units.
func EncodeUTF16(text string) []uint16 {
	return utf16.Encode([]rune(text))
}

// DecodeUTF16 converts UTF-16 code units back to a string. Lone surrogates,
// produced by slicing through a surrogate pair, decode as U+FFFD.
func DecodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}

// SliceUnits returns units[start:end] with both bounds clamped to [0, len(units)].
// An end before start yields an empty slice.
func SliceUnits(units []uint16, start, end int) []uint16 {
	start = clamp(start, 0, len(units))
	end = clamp(end, 0, len(units))

	if end <= start {
		return nil
	}

	return units[start:end]
}

// SliceUTF16 is SliceUnits over a string, returning the decoded substring.
func SliceUTF16(text string, start, end int) string {
	if isASCII(text) {
		start = clamp(start, 0, len(text))
		end = clamp(end, 0, len(text))

		if end <= start {
			return ""
		}

		return text[start:end]
	}

	return DecodeUTF16(SliceUnits(EncodeUTF16(text), start, end))
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

func clamp(value, low, high int) int {
	return max(low, min(value, high))
}
