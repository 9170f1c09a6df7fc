package yatgbot

import (
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgcommand"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
)

// Update is an incoming Bot API update. Only the message carrying variants are
// modeled; other fields of the JSON object are ignored on decode.
type Update struct {
	ID            int64    `json:"update_id"              msgpack:"update_id"`
	Message       *Message `json:"message,omitempty"        msgpack:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty" msgpack:"edited_message,omitempty"`
	ChannelPost   *Message `json:"channel_post,omitempty"   msgpack:"channel_post,omitempty"`
}

// User is the sender of a message.
type User struct {
	ID           int64  `json:"id"                      msgpack:"id"`
	IsBot        bool   `json:"is_bot"                  msgpack:"is_bot"`
	FirstName    string `json:"first_name"              msgpack:"first_name"`
	Username     string `json:"username,omitempty"      msgpack:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty" msgpack:"language_code,omitempty"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID   int64  `json:"id"   msgpack:"id"`
	Type string `json:"type" msgpack:"type"`
}

// Message is a Bot API message. Text is nil for messages without text, such as
// stickers or photos without a caption.
type Message struct {
	ID       int64                  `json:"message_id"         msgpack:"message_id"`
	From     *User                  `json:"from,omitempty"     msgpack:"from,omitempty"`
	Chat     Chat                   `json:"chat"               msgpack:"chat"`
	Date     int64                  `json:"date"               msgpack:"date"`
	Text     *string                `json:"text,omitempty"     msgpack:"text,omitempty"`
	Entities []yatgentity.RawEntity `json:"entities,omitempty" msgpack:"entities,omitempty"`
}

// EffectiveMessage returns whichever message variant the update carries, or nil.
func (u *Update) EffectiveMessage() *Message {
	if u == nil {
		return nil
	}

	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	default:
		return u.ChannelPost
	}
}

// PlainText returns the message text, empty when there is none.
func (m *Message) PlainText() string {
	if m == nil || m.Text == nil {
		return ""
	}

	return *m.Text
}

// TextEntities validates the raw entities against the message text.
func (m *Message) TextEntities() ([]yatgentity.TextEntity, yaerrors.Error) {
	if m == nil || len(m.Entities) == 0 {
		return nil, nil
	}

	entities, err := yatgentity.FromRawList(m.PlainText(), m.Entities)
	if err != nil {
		return nil, err.Wrap("[UPDATE] invalid message entities")
	}

	return entities, nil
}

// Commands extracts the bot commands of the message.
func (m *Message) Commands(opts ...yatgcommand.Option) (*yatgcommand.Commands, yaerrors.Error) {
	entities, err := m.TextEntities()
	if err != nil {
		return nil, err
	}

	return yatgcommand.ExtractWith(m.PlainText(), entities, opts...), nil
}

// SenderID returns the id of the message author, 0 for anonymous channel posts.
func (m *Message) SenderID() int64 {
	if m == nil || m.From == nil {
		return 0
	}

	return m.From.ID
}
