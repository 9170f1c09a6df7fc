package yatgbot_test

import (
	"testing"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBotToken(t *testing.T) {
	t.Parallel()

	identity, err := yatgbot.ParseBotToken("123456:ABC-DEF")
	require.Nil(t, err)

	assert.Equal(t, int64(123456), identity.UserID)
	assert.Equal(t, "123456:ABC-DEF", identity.Token)
	assert.Equal(t, "123456:***", identity.String())
}

func TestParseBotToken_Invalid(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "abc", "abc:def", "123", "123:", "-5:x", ":x"} {
		t.Run(token, func(t *testing.T) {
			t.Parallel()

			_, err := yatgbot.ParseBotToken(token)
			require.NotNil(t, err)
			assert.ErrorIs(t, err, yatgbot.ErrInvalidBotToken)
		})
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	assert.False(t, yatgbot.Truthy(nil))
	assert.False(t, yatgbot.Truthy(yatgbot.Flag(false)))
	assert.False(t, yatgbot.Truthy(yatgbot.Reply(nil)))
	assert.False(t, yatgbot.Truthy(yatgbot.Reply{"ok": 1}))
	assert.True(t, yatgbot.Truthy(yatgbot.Flag(true)))
	assert.True(t, yatgbot.Truthy(yatgbot.Reply{"ok": true}))
	assert.True(t, yatgbot.Truthy(yatgbot.Reply{"description": "sent"}))
}

func TestMessage_Commands(t *testing.T) {
	t.Parallel()

	text := "/start hello world"
	upd := &yatgbot.Update{
		Message: &yatgbot.Message{
			Text:     &text,
			Entities: []yatgentity.RawEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		},
	}

	msg := upd.EffectiveMessage()
	require.NotNil(t, msg)

	commands, err := msg.Commands()
	require.Nil(t, err)

	args, ok := commands.Args("/start")
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "world"}, args)
}

func TestMessage_TextEntitiesOutOfBounds(t *testing.T) {
	t.Parallel()

	text := "hi"
	msg := &yatgbot.Message{
		Text:     &text,
		Entities: []yatgentity.RawEntity{{Type: "bold", Offset: 0, Length: 5}},
	}

	_, err := msg.TextEntities()
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgentity.ErrEntityOutOfBounds)
}

func TestEffectiveMessage(t *testing.T) {
	t.Parallel()

	edited := &yatgbot.Message{ID: 2}
	post := &yatgbot.Message{ID: 3}

	assert.Nil(t, (&yatgbot.Update{}).EffectiveMessage())
	assert.Same(t, edited, (&yatgbot.Update{EditedMessage: edited}).EffectiveMessage())
	assert.Same(t, post, (&yatgbot.Update{ChannelPost: post}).EffectiveMessage())
	assert.Equal(t, "", (*yatgbot.Message)(nil).PlainText())
}

func TestUpdateFromTg(t *testing.T) {
	t.Parallel()

	upd, ok := yatgbot.UpdateFromTg(
		77,
		&tg.UpdateNewMessage{
			Message: &tg.Message{
				ID:      10,
				PeerID:  &tg.PeerUser{UserID: 5},
				Message: "/start now",
				Entities: []tg.MessageEntityClass{
					&tg.MessageEntityBotCommand{Offset: 0, Length: 6},
				},
			},
		},
		tg.Entities{
			Users: map[int64]*tg.User{
				5: {ID: 5, FirstName: "Ann", LangCode: "de"},
			},
		},
	)
	require.True(t, ok)

	assert.Equal(t, int64(77), upd.ID)
	require.NotNil(t, upd.Message)
	assert.Equal(t, "/start now", upd.Message.PlainText())
	assert.Equal(t, int64(5), upd.Message.SenderID())
	assert.Equal(t, "de", upd.Message.From.LanguageCode)
	assert.Equal(t, "private", upd.Message.Chat.Type)

	commands, err := upd.Message.Commands()
	require.Nil(t, err)
	assert.True(t, commands.Has("/start"))

	_, ok = yatgbot.UpdateFromTg(1, &tg.UpdateNewMessage{Message: &tg.MessageEmpty{}}, tg.Entities{})
	assert.False(t, ok)

	_, ok = yatgbot.UpdateFromTg(1, &tg.UpdateUserTyping{}, tg.Entities{})
	assert.False(t, ok)
}
