// Package yatgentity models Telegram message entities: flat annotations over a
// UTF-16 code unit range of a message text.
//
// Entities are validated on construction and immutable afterwards. Adapters build
// them from decoded Bot API JSON (FromRaw) and from gotd/td MTProto entities (FromTg).
package yatgentity

import (
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

// TextEntity is one validated annotation over [Offset, Offset+Length) of a text,
// counted in UTF-16 code units.
type TextEntity struct {
	kind            EntityKind
	offset          int
	length          int
	url             string
	mentionedUserID int64
	hasMention      bool
	language        string
}

// Option attaches a kind-specific payload to an entity under construction.
type Option func(*TextEntity)

// WithURL sets the link target of a url or text_link entity.
func WithURL(url string) Option {
	return func(e *TextEntity) {
		e.url = url
	}
}

// WithMentionedUser sets the user referenced by a text_mention entity.
func WithMentionedUser(userID int64) Option {
	return func(e *TextEntity) {
		e.mentionedUserID = userID
		e.hasMention = true
	}
}

// WithLanguage sets the language tag of a pre entity.
func WithLanguage(language string) Option {
	return func(e *TextEntity) {
		e.language = language
	}
}

// New validates and builds a TextEntity.
//
// It fails with an error wrapping ErrInvalidEntity when offset or length is negative,
// when the kind requires a payload that is missing (url and text_link need a URL,
// text_mention needs a user), or when a payload is given to a kind that does not
// accept it.
//
// Example usage:
//
//	link, err := yatgentity.New(yatgentity.KindTextLink, 8, 4, yatgentity.WithURL("https://example.com"))
func New(kind EntityKind, offset, length int, opts ...Option) (TextEntity, yaerrors.Error) {
	entity := TextEntity{
		kind:   kind,
		offset: offset,
		length: length,
	}

	for _, opt := range opts {
		opt(&entity)
	}

	if err := entity.validate(); err != nil {
		return TextEntity{}, yaerrors.FromError(
			http.StatusBadRequest,
			err,
			fmt.Sprintf("[ENTITY] failed to build `%s` at %d+%d", kind, offset, length),
		)
	}

	return entity, nil
}

// MustNew is New that panics on invalid input. Meant for literals in tests and
// static tables.
func MustNew(kind EntityKind, offset, length int, opts ...Option) TextEntity {
	entity, err := New(kind, offset, length, opts...)
	if err != nil {
		panic(err)
	}

	return entity
}

func (e TextEntity) validate() error {
	switch {
	case e.offset < 0:
		return fmt.Errorf("%w: negative offset %d", ErrInvalidEntity, e.offset)
	case e.length < 0:
		return fmt.Errorf("%w: negative length %d", ErrInvalidEntity, e.length)
	case e.kind.acceptsURL() && e.url == "":
		return fmt.Errorf("%w: %s requires url", ErrInvalidEntity, e.kind)
	case !e.kind.acceptsURL() && e.url != "":
		return fmt.Errorf("%w: %s does not accept url", ErrInvalidEntity, e.kind)
	case e.kind.acceptsMentionedUser() && !e.hasMention:
		return fmt.Errorf("%w: %s requires mentioned user", ErrInvalidEntity, e.kind)
	case !e.kind.acceptsMentionedUser() && e.hasMention:
		return fmt.Errorf("%w: %s does not accept mentioned user", ErrInvalidEntity, e.kind)
	case !e.kind.acceptsLanguage() && e.language != "":
		return fmt.Errorf("%w: %s does not accept language", ErrInvalidEntity, e.kind)
	}

	return nil
}

func (e TextEntity) Kind() EntityKind {
	return e.kind
}

func (e TextEntity) Offset() int {
	return e.offset
}

func (e TextEntity) Length() int {
	return e.length
}

// End is the exclusive end of the span, Offset+Length.
func (e TextEntity) End() int {
	return e.offset + e.length
}

// URL returns the link target; empty for kinds without one.
func (e TextEntity) URL() string {
	return e.url
}

// MentionedUserID returns the referenced user and whether one is set.
func (e TextEntity) MentionedUserID() (int64, bool) {
	return e.mentionedUserID, e.hasMention
}

// Language returns the pre language tag, empty when absent.
func (e TextEntity) Language() string {
	return e.language
}

// Contains reports whether other lies entirely within e's span.
func (e TextEntity) Contains(other TextEntity) bool {
	return other.offset >= e.offset && other.End() <= e.End()
}

func (e TextEntity) String() string {
	return fmt.Sprintf("%s[%d:%d]", e.kind, e.offset, e.End())
}

// CheckBounds reports the first entity whose span exceeds the UTF-16 length of text.
// Rendering assumes the bounds hold; boundary code calls this to reject bad input
// instead of relying on the renderer to clamp.
func CheckBounds(text string, entities []TextEntity) yaerrors.Error {
	size := UTF16Len(text)

	for i, entity := range entities {
		if entity.End() > size {
			return yaerrors.FromError(
				http.StatusBadRequest,
				ErrEntityOutOfBounds,
				fmt.Sprintf("[ENTITY] #%d %s exceeds text length %d", i, entity, size),
			)
		}
	}

	return nil
}
