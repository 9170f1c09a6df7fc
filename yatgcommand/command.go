// Package yatgcommand extracts bot commands and their arguments from a message.
//
// A command is every bot_command entity of the message. Its arguments are the
// rest of the text after the entity, trimmed and split on single spaces.
//
// Example usage:
//
//	text := "/start hello world"
//	commands := yatgcommand.Extract(text, []yatgentity.TextEntity{
//		yatgentity.MustNew(yatgentity.KindBotCommand, 0, 6),
//	})
//	commands.Args("/start") // []string{"hello", "world"}
package yatgcommand

import (
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
)

const argsSeparator = " "

// Commands is an ordered mapping from command token to its arguments.
// The zero value is an empty mapping.
type Commands struct {
	keys []string
	args map[string][]string
}

// Keys returns the command tokens in order of first appearance.
func (c *Commands) Keys() []string {
	if c == nil {
		return nil
	}

	keys := make([]string, len(c.keys))
	copy(keys, c.keys)

	return keys
}

// Args returns the arguments recorded for cmd and whether cmd was found.
func (c *Commands) Args(cmd string) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	args, ok := c.args[cmd]

	return args, ok
}

func (c *Commands) Has(cmd string) bool {
	_, ok := c.Args(cmd)

	return ok
}

func (c *Commands) Len() int {
	if c == nil {
		return 0
	}

	return len(c.keys)
}

func (c *Commands) add(cmd string, args []string) {
	if c.args == nil {
		c.args = make(map[string][]string)
	}

	if _, ok := c.args[cmd]; ok {
		return
	}

	c.keys = append(c.keys, cmd)
	c.args[cmd] = args
}

type options struct {
	spanEnd bool
}

// Option tunes how ExtractWith reads the command token.
type Option func(*options)

// WithSpanEnd makes the token cover exactly the entity span,
// text[offset:offset+length]. Without it the token is text[offset:length], the
// length being read as an end index. Both agree for commands at the start of
// the text, which is where Telegram places them in practice.
func WithSpanEnd() Option {
	return func(o *options) {
		o.spanEnd = true
	}
}

// Extract collects the bot commands of text with the default token slicing.
func Extract(text string, entities []yatgentity.TextEntity) *Commands {
	return ExtractWith(text, entities)
}

// ExtractWith collects the bot commands of text.
//
// Entities are scanned in the given order. When a token occurs twice the first
// occurrence wins. Arguments are text[offset+length:] trimmed and split on " ",
// so a command with nothing after it gets []string{""}.
func ExtractWith(text string, entities []yatgentity.TextEntity, opts ...Option) *Commands {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	commands := &Commands{}

	if text == "" {
		return commands
	}

	units := yatgentity.EncodeUTF16(text)

	for _, entity := range entities {
		if entity.Kind() != yatgentity.KindBotCommand {
			continue
		}

		end := entity.Length()
		if o.spanEnd {
			end = entity.End()
		}

		token := yatgentity.DecodeUTF16(yatgentity.SliceUnits(units, entity.Offset(), end))
		rest := yatgentity.DecodeUTF16(yatgentity.SliceUnits(units, entity.End(), len(units)))

		commands.add(token, strings.Split(strings.TrimSpace(rest), argsSeparator))
	}

	return commands
}
