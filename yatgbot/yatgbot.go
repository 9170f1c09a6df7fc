// Package yatgbot dispatches incoming bot updates through an ordered chain of
// handlers.
//
// Handlers run one after another in registration order. Every handler result is
// recorded in a Journal under the handler's label, and the first falsy result
// stops the chain:
//
//	identity, err := yatgbot.ParseBotToken(token)
//	if err != nil {
//		log.Fatalf("bad token: %v", err)
//	}
//
//	dispatcher := yatgbot.NewDispatcher(identity, log)
//	dispatcher.Use(yatgbot.LoggingMiddleware(log))
//	dispatcher.Register("ignore-own", ignoreOwn)
//	dispatcher.Register("echo", echo)
//
//	journal, err := dispatcher.Dispatch(ctx, update)
//
// A Dispatcher belongs to one bot identity. Build one per bot and pass it to
// whatever serves that bot's webhook.
package yatgbot

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

const tokenSeparator = ":"

// BotIdentity is the bot a Dispatcher serves. UserID is the bot's own Telegram user
// id, the numeric prefix of its token.
type BotIdentity struct {
	UserID int64
	Token  string
}

// ParseBotToken splits a token of the form "<user id>:<secret>" into a BotIdentity.
//
// Example usage:
//
//	identity, err := yatgbot.ParseBotToken("123456:ABC-DEF")
//	// identity.UserID == 123456
func ParseBotToken(token string) (BotIdentity, yaerrors.Error) {
	prefix, secret, found := strings.Cut(token, tokenSeparator)
	if !found || secret == "" {
		return BotIdentity{}, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidBotToken,
			"[BOT] token must look like `<user id>:<secret>`",
		)
	}

	userID, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil || userID <= 0 {
		return BotIdentity{}, yaerrors.FromError(
			http.StatusBadRequest,
			fmt.Errorf("%w: user id `%s`", ErrInvalidBotToken, prefix),
			"[BOT] failed to parse bot token",
		)
	}

	return BotIdentity{
		UserID: userID,
		Token:  token,
	}, nil
}

// String hides the secret part of the token.
func (b BotIdentity) String() string {
	return strconv.FormatInt(b.UserID, 10) + tokenSeparator + "***"
}
