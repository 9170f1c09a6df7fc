package yatgmessageencoding

import (
	"strings"
	"unicode/utf8"
)

const escapeChar = '\\'

// Characters escaped in ordinary text. The backslash is deliberately absent: feeding
// rendered output back in as plain text adds one backslash per markup character and
// never doubles existing ones.
const commonEscapeSet = "_*[]()~`>#+-=|{}.!"

// Inside code and pre only the fence and the escape character itself are special.
const codeEscapeSet = "`\\"

// Inside the (...) part of a link only the closing parenthesis and the escape
// character are special.
const urlEscapeSet = ")\\"

type escaper [utf8.RuneSelf]bool

func newEscaper(set string) *escaper {
	var e escaper

	for i := 0; i < len(set); i++ {
		e[set[i]] = true
	}

	return &e
}

var (
	commonEscaper = newEscaper(commonEscapeSet)
	codeEscaper   = newEscaper(codeEscapeSet)
	urlEscaper    = newEscaper(urlEscapeSet)
)

func (e *escaper) needs(b byte) bool {
	return b < utf8.RuneSelf && e[b]
}

// writeTo appends text to b with a backslash inserted before every member of the set.
// All set members are ASCII, so scanning bytes never splits a multi-byte rune.
func (e *escaper) writeTo(b *strings.Builder, text string) {
	start := 0

	for i := 0; i < len(text); i++ {
		if !e.needs(text[i]) {
			continue
		}

		b.WriteString(text[start:i])
		b.WriteByte(escapeChar)
		b.WriteByte(text[i])

		start = i + 1
	}

	b.WriteString(text[start:])
}

func (e *escaper) escape(text string) string {
	var b strings.Builder

	b.Grow(len(text))
	e.writeTo(&b, text)

	return b.String()
}

// Escape escapes every MarkdownV2 markup character in text, for composing replies
// out of untrusted strings.
func Escape(text string) string {
	return commonEscaper.escape(text)
}

// EscapeCode escapes text for use inside a code or pre block.
func EscapeCode(text string) string {
	return codeEscaper.escape(text)
}

// EscapeURL escapes text for use as the target of an inline link.
func EscapeURL(text string) string {
	return urlEscaper.escape(text)
}
