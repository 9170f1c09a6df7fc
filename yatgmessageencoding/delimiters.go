package yatgmessageencoding

import (
	"strconv"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
)

const lineBreak = '\n'

type delimiter string

const (
	boldDelim       delimiter = "*"
	italicDelim     delimiter = "_"
	underlineDelim  delimiter = "__"
	strikeDelim     delimiter = "~"
	codeDelim       delimiter = "`"
	preDelim        delimiter = "```"
	linkStartDelim  delimiter = "["
	linkMiddleDelim delimiter = "]("
	linkEndDelim    delimiter = ")"
)

const mentionURLPrefix = "tg://user?id="

var symmetricDelimiters = map[yatgentity.EntityKind]delimiter{
	yatgentity.KindBold:          boldDelim,
	yatgentity.KindItalic:        italicDelim,
	yatgentity.KindUnderline:     underlineDelim,
	yatgentity.KindStrikethrough: strikeDelim,
	yatgentity.KindCode:          codeDelim,
}

func (d delimiter) String() string {
	return string(d)
}

// wrap surrounds the already rendered inner markup of entity with its delimiters.
func wrap(entity yatgentity.TextEntity, inner string) string {
	if d, ok := symmetricDelimiters[entity.Kind()]; ok {
		return d.String() + inner + d.String()
	}

	//nolint:exhaustive
	switch entity.Kind() {
	case yatgentity.KindPre:
		var header string

		if language := entity.Language(); language != "" {
			header = language + string(lineBreak)
		} else if strings.HasPrefix(inner, string(escapeChar)) {
			// Keeps the fence from swallowing the escaped first character.
			header = string(lineBreak)
		}

		return preDelim.String() + header + inner + preDelim.String()
	case yatgentity.KindURL, yatgentity.KindTextLink:
		return link(inner, EscapeURL(entity.URL()))
	case yatgentity.KindTextMention:
		userID, ok := entity.MentionedUserID()
		if !ok {
			return inner
		}

		return link(inner, mentionURLPrefix+strconv.FormatInt(userID, 10))
	default:
		return inner
	}
}

func link(label, target string) string {
	return linkStartDelim.String() + label + linkMiddleDelim.String() + target + linkEndDelim.String()
}
