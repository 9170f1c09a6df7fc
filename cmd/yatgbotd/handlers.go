package main

import (
	"context"
	"strconv"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalocales"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/YaCodeDev/GoYaTgBotKit/yaratelimit"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgmessageencoding"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgsubscription"
)

// Handler labels, in registration order.
const (
	labelRateLimit    = "rate-limit"
	labelIgnoreOwn    = "ignore-own"
	labelSubscription = "subscription"
	labelEchoMarkdown = "echo-markdown"
)

const (
	commandStart = "/start"
	commandStop  = "/stop"
	commandStats = "/stats"
)

const (
	keyStarted     = "subscription.started"
	keyAlready     = "subscription.already"
	keyStopped     = "subscription.stopped"
	keyNoted       = "subscription.noted"
	keyInactive    = "subscription.inactive"
	keySubscribers = "stats.subscribers"
)

const rateLimitGroup = "updates"

// Outbox delivers replies to a chat. Text is MarkdownV2. messagequeue.Dispatcher
// implements it.
type Outbox interface {
	SendMessage(ctx context.Context, chatID int64, text string) (yatgbot.Reply, yaerrors.Error)
}

// logOutbox writes replies to the log instead of calling the Bot API.
type logOutbox struct {
	log yalogger.Logger
}

func newLogOutbox(log yalogger.Logger) *logOutbox {
	return &logOutbox{log: log}
}

func (o *logOutbox) SendMessage(_ context.Context, chatID int64, text string) (yatgbot.Reply, yaerrors.Error) {
	o.log.WithField("chat_id", chatID).Infof("sendMessage (MarkdownV2): %s", text)

	return yatgbot.Reply{
		"ok": true,
		"result": map[string]any{
			"chat_id": chatID,
			"text":    text,
		},
	}, nil
}

// bot holds what the sample handlers share.
type bot struct {
	identity yatgbot.BotIdentity
	store    *yatgsubscription.Store
	locales  *yalocales.Localizer
	outbox   Outbox
	limiter  *yaratelimit.RateLimit
	admins   map[int64]struct{}
	log      yalogger.Logger
}

func newBot(
	identity yatgbot.BotIdentity,
	store *yatgsubscription.Store,
	locales *yalocales.Localizer,
	outbox Outbox,
	limiter *yaratelimit.RateLimit,
	adminIDs []int64,
	log yalogger.Logger,
) *bot {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &bot{
		identity: identity,
		store:    store,
		locales:  locales,
		outbox:   outbox,
		limiter:  limiter,
		admins:   admins,
		log:      log,
	}
}

// dispatcher builds the handler chain. The rate limiter is skipped when nil.
func (b *bot) dispatcher() *yatgbot.Dispatcher {
	d := yatgbot.NewDispatcher(b.identity, b.log)
	d.Use(yatgbot.LoggingMiddleware(b.log))

	if b.limiter != nil {
		d.Register(labelRateLimit, yaratelimit.Handler(b.limiter, rateLimitGroup, b.log))
	}

	d.Register(labelIgnoreOwn, b.ignoreOwn)
	d.Register(labelSubscription, b.subscription)
	d.Register(labelEchoMarkdown, b.echoMarkdown)

	return d
}

// ignoreOwn stops the chain for updates with no authored message and for messages
// the bot sent itself.
func (b *bot) ignoreOwn(_ context.Context, upd *yatgbot.Update) (yatgbot.Outcome, error) {
	senderID := upd.EffectiveMessage().SenderID()
	if senderID == 0 || senderID == b.identity.UserID {
		return yatgbot.Stop, nil
	}

	return yatgbot.Continue, nil
}

// subscription answers private messages: /start and /stop toggle the subscription,
// admins may ask for /stats, anything else gets an acknowledgement.
func (b *bot) subscription(ctx context.Context, upd *yatgbot.Update) (yatgbot.Outcome, error) {
	msg := upd.EffectiveMessage()
	if msg == nil || msg.Chat.Type != yatgbot.ChatTypePrivate || msg.From == nil {
		return yatgbot.Continue, nil
	}

	commands, err := msg.Commands()
	if err != nil {
		return nil, err.Wrap("[BOT] failed to extract commands")
	}

	user := msg.From

	if commands.Has(commandStats) && b.isAdmin(user.ID) {
		count, err := b.store.Count(ctx, b.identity.UserID)
		if err != nil {
			return nil, err.Wrap("[BOT] failed to count subscribers")
		}

		return b.reply(ctx, msg, keySubscribers, map[string]string{
			"count": strconv.FormatInt(count, 10),
		})
	}

	subscribed, err := b.store.IsSubscriber(ctx, b.identity.UserID, user.ID)
	if err != nil {
		return nil, err.Wrap("[BOT] failed to check subscription")
	}

	switch {
	case subscribed && commands.Has(commandStop):
		if _, err := b.store.Unsubscribe(ctx, b.identity.UserID, user.ID); err != nil {
			return nil, err.Wrap("[BOT] failed to unsubscribe")
		}

		return b.reply(ctx, msg, keyStopped, nil)
	case subscribed && commands.Has(commandStart):
		return b.reply(ctx, msg, keyAlready, nil)
	case subscribed:
		return b.reply(ctx, msg, keyNoted, nil)
	case commands.Has(commandStart):
		if _, err := b.store.Subscribe(ctx, b.identity.UserID, user.ID); err != nil {
			return nil, err.Wrap("[BOT] failed to subscribe")
		}

		return b.reply(ctx, msg, keyStarted, map[string]string{"name": displayName(user)})
	default:
		return b.reply(ctx, msg, keyInactive, nil)
	}
}

// echoMarkdown records the MarkdownV2 form of the message text.
func (b *bot) echoMarkdown(_ context.Context, upd *yatgbot.Update) (yatgbot.Outcome, error) {
	msg := upd.EffectiveMessage()
	if msg.PlainText() == "" {
		return yatgbot.Continue, nil
	}

	entities, err := msg.TextEntities()
	if err != nil {
		b.log.WithUserID(msg.SenderID()).Warnf("Skipping markdown echo: %v", err)

		return yatgbot.Continue, nil
	}

	rendered := yatgmessageencoding.Render(msg.PlainText(), entities)

	b.log.WithUserID(msg.SenderID()).Debugf("Message %d as MarkdownV2: %s", msg.ID, rendered)

	return yatgbot.Reply{"ok": true, "markdown_v2": rendered}, nil
}

func (b *bot) reply(
	ctx context.Context,
	msg *yatgbot.Message,
	key string,
	args map[string]string,
) (yatgbot.Outcome, error) {
	text, err := b.locales.Format(msg.From.LanguageCode, key, args)
	if err != nil {
		return nil, err.Wrap("[BOT] failed to localize reply")
	}

	reply, err := b.outbox.SendMessage(ctx, msg.Chat.ID, yatgmessageencoding.Escape(text))
	if err != nil {
		return nil, err.Wrap("[BOT] failed to send reply")
	}

	if !reply.Truthy() {
		b.log.WithUserID(msg.From.ID).Errorf("Error in response message: %v", reply)
	}

	return reply, nil
}

func (b *bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]

	return ok
}

func displayName(user *yatgbot.User) string {
	switch {
	case user.FirstName != "":
		return user.FirstName
	case user.Username != "":
		return "@" + user.Username
	default:
		return strconv.FormatInt(user.ID, 10)
	}
}
