package yatgentity

// EntityKind names the formatting or semantic feature an entity describes.
// The named constants form the closed set the renderer understands; any other
// value is an unknown kind that renders as plain text.
type EntityKind string

const (
	KindBold          EntityKind = "bold"
	KindItalic        EntityKind = "italic"
	KindUnderline     EntityKind = "underline"
	KindStrikethrough EntityKind = "strikethrough"
	KindCode          EntityKind = "code"
	KindPre           EntityKind = "pre"
	KindURL           EntityKind = "url"
	KindTextLink      EntityKind = "text_link"
	KindTextMention   EntityKind = "text_mention"
	KindBotCommand    EntityKind = "bot_command"
)

var knownKinds = map[EntityKind]struct{}{
	KindBold:          {},
	KindItalic:        {},
	KindUnderline:     {},
	KindStrikethrough: {},
	KindCode:          {},
	KindPre:           {},
	KindURL:           {},
	KindTextLink:      {},
	KindTextMention:   {},
	KindBotCommand:    {},
}

// ParseKind maps a Bot API entity type name to an EntityKind. Names outside the
// closed set are kept verbatim, so String round-trips them.
func ParseKind(name string) EntityKind {
	return EntityKind(name)
}

// Known reports whether k belongs to the closed set of kinds.
func (k EntityKind) Known() bool {
	_, ok := knownKinds[k]

	return ok
}

func (k EntityKind) String() string {
	return string(k)
}

// IsLink reports whether the kind carries a URL rendered as a link target.
func (k EntityKind) IsLink() bool {
	return k == KindURL || k == KindTextLink
}

// IsCode reports whether the kind holds literal code whose content is never
// interpreted as nested markup.
func (k EntityKind) IsCode() bool {
	return k == KindCode || k == KindPre
}

func (k EntityKind) acceptsURL() bool {
	return k.IsLink()
}

func (k EntityKind) acceptsMentionedUser() bool {
	return k == KindTextMention
}

func (k EntityKind) acceptsLanguage() bool {
	return k == KindPre
}
