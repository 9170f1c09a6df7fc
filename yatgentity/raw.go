package yatgentity

import (
	"fmt"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

// RawUser is the part of a Bot API User object an entity refers to.
type RawUser struct {
	ID int64 `json:"id"`
}

// RawEntity is a MessageEntity record as decoded from Bot API JSON.
type RawEntity struct {
	Type     string   `json:"type"`
	Offset   int      `json:"offset"`
	Length   int      `json:"length"`
	URL      string   `json:"url,omitempty"`
	User     *RawUser `json:"user,omitempty"`
	Language string   `json:"language,omitempty"`
}

// FromRaw validates a decoded Bot API entity against the text it annotates.
//
// The Bot API sends `url` entities without a url field because the link target is
// the covered text itself; FromRaw fills it in from text.
func FromRaw(text string, raw RawEntity) (TextEntity, yaerrors.Error) {
	kind := ParseKind(raw.Type)

	var opts []Option

	url := raw.URL
	if kind == KindURL && url == "" {
		url = SliceUTF16(text, raw.Offset, raw.Offset+raw.Length)
	}

	if url != "" {
		opts = append(opts, WithURL(url))
	}

	if raw.User != nil {
		opts = append(opts, WithMentionedUser(raw.User.ID))
	}

	if raw.Language != "" {
		opts = append(opts, WithLanguage(raw.Language))
	}

	return New(kind, raw.Offset, raw.Length, opts...)
}

// FromRawList converts every record, failing on the first invalid one.
func FromRawList(text string, raws []RawEntity) ([]TextEntity, yaerrors.Error) {
	entities := make([]TextEntity, 0, len(raws))

	for i, raw := range raws {
		entity, err := FromRaw(text, raw)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("[ENTITY] record #%d", i))
		}

		entities = append(entities, entity)
	}

	if err := CheckBounds(text, entities); err != nil {
		return nil, err
	}

	return entities, nil
}

// ToRaw converts an entity back to its Bot API shape.
func ToRaw(entity TextEntity) RawEntity {
	raw := RawEntity{
		Type:     entity.kind.String(),
		Offset:   entity.offset,
		Length:   entity.length,
		Language: entity.language,
	}

	if entity.kind == KindTextLink {
		raw.URL = entity.url
	}

	if entity.hasMention {
		raw.User = &RawUser{ID: entity.mentionedUserID}
	}

	return raw
}

