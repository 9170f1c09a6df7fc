package yatgbot

import (
	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
	"github.com/gotd/td/tg"
)

// Chat.Type values, as the Bot API names them.
const (
	ChatTypePrivate = "private"
	ChatTypeGroup   = "group"
	ChatTypeChannel = "channel"
)

// ExtractMessageFromUpdate tries to extract a *tg.Message from a gotd update. The
// second result reports whether the message was an edit.
//
// Example usage:
//
//	msg, edited, ok := ExtractMessageFromUpdate(update)
//	if ok {
//		// process msg
//	}
func ExtractMessageFromUpdate(upd tg.UpdateClass) (*tg.Message, bool, bool) {
	var (
		class  tg.MessageClass
		edited bool
	)

	switch u := upd.(type) {
	case *tg.UpdateNewMessage:
		class = u.Message
	case *tg.UpdateNewChannelMessage:
		class = u.Message
	case *tg.UpdateEditMessage:
		class, edited = u.Message, true
	case *tg.UpdateEditChannelMessage:
		class, edited = u.Message, true
	default:
		return nil, false, false
	}

	msg, ok := class.(*tg.Message)

	return msg, edited, ok
}

// UpdateFromTg converts an MTProto message update into the Bot API shaped Update
// the dispatcher works with, so the same handler chain can serve both transports.
// updateID is supplied by the caller since MTProto updates carry no such id.
// Entities that fail validation are dropped from the result.
func UpdateFromTg(updateID int64, upd tg.UpdateClass, ent tg.Entities) (*Update, bool) {
	msg, edited, ok := ExtractMessageFromUpdate(upd)
	if !ok {
		return nil, false
	}

	text := msg.Message

	message := &Message{
		ID:   int64(msg.ID),
		Chat: chatFromPeer(msg.PeerID),
		Date: int64(msg.Date),
		Text: &text,
	}

	if from, ok := msg.GetFromID(); ok {
		if peer, ok := from.(*tg.PeerUser); ok {
			message.From = userFromEntities(peer.UserID, ent)
		}
	} else if peer, ok := msg.PeerID.(*tg.PeerUser); ok && !msg.Out {
		message.From = userFromEntities(peer.UserID, ent)
	}

	for _, entity := range msg.Entities {
		converted, err := yatgentity.FromTg(text, entity)
		if err != nil {
			continue
		}

		message.Entities = append(message.Entities, yatgentity.ToRaw(converted))
	}

	update := &Update{ID: updateID}

	switch {
	case edited:
		update.EditedMessage = message
	case message.Chat.Type == ChatTypeChannel && msg.Post:
		update.ChannelPost = message
	default:
		update.Message = message
	}

	return update, true
}

func chatFromPeer(peer tg.PeerClass) Chat {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return Chat{ID: p.UserID, Type: ChatTypePrivate}
	case *tg.PeerChat:
		return Chat{ID: p.ChatID, Type: ChatTypeGroup}
	case *tg.PeerChannel:
		return Chat{ID: p.ChannelID, Type: ChatTypeChannel}
	default:
		return Chat{}
	}
}

func userFromEntities(userID int64, ent tg.Entities) *User {
	user := &User{ID: userID}

	if u, ok := ent.Users[userID]; ok {
		user.IsBot = u.Bot
		user.FirstName = u.FirstName
		user.Username = u.Username
		user.LanguageCode = u.LangCode
	}

	return user
}
