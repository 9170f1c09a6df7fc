// Package yatgmessageencoding renders Telegram message entities as MarkdownV2.
//
// Telegram delivers formatting as a flat list of entities over UTF-16 code unit
// ranges. MarkdownV2 needs the same information as properly nested, escaped markup.
// The renderer rebuilds the nesting at render time: entities are sorted by offset
// (longer first on ties) and every span recursively renders the entities it contains.
//
// Example usage:
//
//	text := "hello world"
//	entities := []yatgentity.TextEntity{
//		yatgentity.MustNew(yatgentity.KindBold, 0, 11),
//		yatgentity.MustNew(yatgentity.KindItalic, 6, 5),
//	}
//	md := yatgmessageencoding.Render(text, entities) // "*hello _world_*"
package yatgmessageencoding

import (
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
	"github.com/gotd/td/tg"
)

// MessageEncoding renders message text plus entities into a markup dialect.
type MessageEncoding interface {
	// Render returns text with entities applied as escaped markup. It is pure and
	// total: identical input always yields identical output.
	Render(text string, entities []yatgentity.TextEntity) string

	// Unparse is Render over gotd/td MTProto entities. It fails only when an entity
	// cannot be converted or exceeds the text.
	//
	// Example usage:
	//
	//	md := yatgmessageencoding.NewMarkdownV2Encoding()
	//	out, err := md.Unparse("This is bold text", []tg.MessageEntityClass{
	//		&tg.MessageEntityBold{Offset: 8, Length: 4},
	//	})
	Unparse(text string, entities []tg.MessageEntityClass) (string, yaerrors.Error)
}

type markdownV2Encoding struct{}

// NewMarkdownV2Encoding returns the MarkdownV2 implementation of MessageEncoding.
// It holds no state and is safe for concurrent use.
func NewMarkdownV2Encoding() MessageEncoding {
	return markdownV2Encoding{}
}

func (markdownV2Encoding) Render(text string, entities []yatgentity.TextEntity) string {
	return Render(text, entities)
}

func (markdownV2Encoding) Unparse(
	text string,
	entities []tg.MessageEntityClass,
) (string, yaerrors.Error) {
	converted, err := yatgentity.FromTgList(text, entities)
	if err != nil {
		return "", err.Wrap("[MARKDOWNV2] failed to convert entities")
	}

	if err := yatgentity.CheckBounds(text, converted); err != nil {
		return "", err.Wrap("[MARKDOWNV2] entities do not fit the text")
	}

	return Render(text, converted), nil
}
