package yatgentity

import (
	"fmt"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/gotd/td/tg"
)

// FromTg converts a gotd/td MTProto entity. Entity types outside the renderer's
// closed set keep a snake_case kind (hashtag, spoiler, ...) and render as plain text.
func FromTg(text string, entity tg.MessageEntityClass) (TextEntity, yaerrors.Error) {
	offset := entity.GetOffset()
	length := entity.GetLength()

	switch e := entity.(type) {
	case *tg.MessageEntityBold:
		return New(KindBold, offset, length)
	case *tg.MessageEntityItalic:
		return New(KindItalic, offset, length)
	case *tg.MessageEntityUnderline:
		return New(KindUnderline, offset, length)
	case *tg.MessageEntityStrike:
		return New(KindStrikethrough, offset, length)
	case *tg.MessageEntityCode:
		return New(KindCode, offset, length)
	case *tg.MessageEntityPre:
		return New(KindPre, offset, length, WithLanguage(e.Language))
	case *tg.MessageEntityURL:
		return New(KindURL, offset, length, WithURL(SliceUTF16(text, offset, offset+length)))
	case *tg.MessageEntityTextURL:
		return New(KindTextLink, offset, length, WithURL(e.URL))
	case *tg.MessageEntityMentionName:
		return New(KindTextMention, offset, length, WithMentionedUser(e.UserID))
	case *tg.MessageEntityBotCommand:
		return New(KindBotCommand, offset, length)
	case *tg.MessageEntityMention:
		return New("mention", offset, length)
	case *tg.MessageEntityHashtag:
		return New("hashtag", offset, length)
	case *tg.MessageEntityCashtag:
		return New("cashtag", offset, length)
	case *tg.MessageEntityEmail:
		return New("email", offset, length)
	case *tg.MessageEntityPhone:
		return New("phone_number", offset, length)
	case *tg.MessageEntitySpoiler:
		return New("spoiler", offset, length)
	case *tg.MessageEntityBlockquote:
		return New("blockquote", offset, length)
	case *tg.MessageEntityCustomEmoji:
		return New("custom_emoji", offset, length)
	default:
		return New(EntityKind(entity.TypeName()), offset, length)
	}
}

// FromTgList converts gotd entities in order, failing on the first invalid one.
func FromTgList(text string, entities []tg.MessageEntityClass) ([]TextEntity, yaerrors.Error) {
	result := make([]TextEntity, 0, len(entities))

	for i, entity := range entities {
		converted, err := FromTg(text, entity)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[ENTITY] gotd entity #%d", i))
		}

		result = append(result, converted)
	}

	return result, nil
}
