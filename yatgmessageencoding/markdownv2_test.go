package yatgmessageencoding_test

import (
	"strings"
	"testing"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgmessageencoding"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type e = yatgentity.TextEntity

func bold(offset, length int) e {
	return yatgentity.MustNew(yatgentity.KindBold, offset, length)
}

func italic(offset, length int) e {
	return yatgentity.MustNew(yatgentity.KindItalic, offset, length)
}

func TestRender(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		text     string
		entities []e
		want     string
	}{
		{
			name: "no entities escapes common set only",
			text: "Hello, world! 1+1=2 (ok).",
			want: `Hello, world\! 1\+1\=2 \(ok\)\.`,
		},
		{
			name:     "nested italic inside bold",
			text:     "hello world",
			entities: []e{bold(0, 11), italic(6, 5)},
			want:     "*hello _world_*",
		},
		{
			name:     "longer entity wins the shared start",
			text:     "hello world",
			entities: []e{bold(0, 5), italic(0, 11)},
			want:     "_*hello* world_",
		},
		{
			name:     "nested entity followed by a sibling",
			text:     "ab cd ef",
			entities: []e{bold(0, 5), italic(0, 2), yatgentity.MustNew(yatgentity.KindStrikethrough, 6, 2)},
			want:     "*_ab_ cd* ~ef~",
		},
		{
			name: "underline and strikethrough",
			text: "u s",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindUnderline, 0, 1),
				yatgentity.MustNew(yatgentity.KindStrikethrough, 2, 1),
			},
			want: "__u__ ~s~",
		},
		{
			name:     "code is opaque to nested entities",
			text:     "use a*b here",
			entities: []e{yatgentity.MustNew(yatgentity.KindCode, 4, 3), bold(4, 1)},
			want:     "use `a*b` here",
		},
		{
			name:     "code escapes fence and backslash only",
			text:     "x `y\\z.",
			entities: []e{yatgentity.MustNew(yatgentity.KindCode, 0, 7)},
			want:     "`x \\`y\\\\z.`",
		},
		{
			name: "pre with language",
			text: "fmt.Println()",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindPre, 0, 13, yatgentity.WithLanguage("go")),
			},
			want: "```go\nfmt.Println()```",
		},
		{
			name:     "pre body starting with an escape gets a line break",
			text:     "`a`",
			entities: []e{yatgentity.MustNew(yatgentity.KindPre, 0, 3)},
			want:     "```\n\\`a\\````",
		},
		{
			name:     "pre inside bold",
			text:     "a code",
			entities: []e{bold(0, 6), yatgentity.MustNew(yatgentity.KindPre, 2, 4)},
			want:     "*a ```code```*",
		},
		{
			name: "text link escapes closing parenthesis in url",
			text: "click here!",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindTextLink, 0, 10, yatgentity.WithURL("https://example.com/a_(b)")),
			},
			want: `[click here](https://example.com/a_(b\))\!`,
		},
		{
			name: "url label uses the common set",
			text: "go to https://t.me.",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindURL, 6, 12, yatgentity.WithURL("https://t.me")),
			},
			want: `go to [https://t\.me](https://t.me)\.`,
		},
		{
			name: "text mention links to the user",
			text: "hi Bob",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindTextMention, 3, 3, yatgentity.WithMentionedUser(42)),
			},
			want: "hi [Bob](tg://user?id=42)",
		},
		{
			name: "bot command and unknown kinds stay plain",
			text: "/start #tag",
			entities: []e{
				yatgentity.MustNew(yatgentity.KindBotCommand, 0, 6),
				yatgentity.MustNew("hashtag", 7, 4),
			},
			want: `/start \#tag`,
		},
		{
			name:     "offsets count utf-16 code units",
			text:     "👋 bold",
			entities: []e{bold(3, 4)},
			want:     "👋 *bold*",
		},
		{
			name:     "partial overlap never repeats text",
			text:     "abcdefgh",
			entities: []e{bold(0, 5), italic(3, 5)},
			want:     "*abcde*_fgh_",
		},
		{
			name:     "entity past the end stays plain",
			text:     "abc",
			entities: []e{bold(1, 5)},
			want:     "abc",
		},
		{
			name:     "empty entity is skipped",
			text:     "abc",
			entities: []e{bold(1, 0)},
			want:     "abc",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := yatgmessageencoding.Render(tc.text, tc.entities)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRender_TieBreakIgnoresInputOrder(t *testing.T) {
	t.Parallel()

	text := "hello world"

	first := yatgmessageencoding.Render(text, []e{bold(0, 5), italic(0, 11)})
	second := yatgmessageencoding.Render(text, []e{italic(0, 11), bold(0, 5)})

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "_"), "longer italic must be the outer wrapper: %q", first)
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	text := "a [b] c_d"
	entities := []e{bold(0, 5), italic(2, 3)}

	assert.Equal(
		t,
		yatgmessageencoding.Render(text, entities),
		yatgmessageencoding.Render(text, entities),
	)
}

func TestRender_DoesNotReorderCallerSlice(t *testing.T) {
	t.Parallel()

	entities := []e{italic(6, 5), bold(0, 11)}

	_ = yatgmessageencoding.Render("hello world", entities)

	assert.Equal(t, 6, entities[0].Offset())
}

func TestRender_ReRenderAddsExactlyOneBackslash(t *testing.T) {
	t.Parallel()

	once := yatgmessageencoding.Render("a*b_c", nil)
	twice := yatgmessageencoding.Render(once, nil)

	assert.Equal(t, `a\*b\_c`, once)
	assert.Equal(t, 4, strings.Count(twice, `\`))
}

func TestRenderFrom(t *testing.T) {
	t.Parallel()

	got := yatgmessageencoding.RenderFrom("abc def", []e{bold(0, 3), bold(4, 3)}, 4)

	assert.Equal(t, "*def*", got)
}

func TestRenderText_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, yatgmessageencoding.RenderText(nil, nil))

	text := "x.y"
	got := yatgmessageencoding.RenderText(&text, nil)

	require.NotNil(t, got)
	assert.Equal(t, `x\.y`, *got)
}

func TestEscapeHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `1\.5 \- 2\!`, yatgmessageencoding.Escape("1.5 - 2!"))
	assert.Equal(t, "\\`\\\\", yatgmessageencoding.EscapeCode("`\\"))
	assert.Equal(t, `(a\)`, yatgmessageencoding.EscapeURL("(a)"))
}

func TestUnparse(t *testing.T) {
	t.Parallel()

	md := yatgmessageencoding.NewMarkdownV2Encoding()

	got, err := md.Unparse("This is bold text", []tg.MessageEntityClass{
		&tg.MessageEntityBold{Offset: 8, Length: 4},
	})
	require.Nil(t, err)
	assert.Equal(t, "This is *bold* text", got)

	_, err = md.Unparse("short", []tg.MessageEntityClass{
		&tg.MessageEntityBold{Offset: -1, Length: 1},
	})
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgentity.ErrInvalidEntity)

	_, err = md.Unparse("short", []tg.MessageEntityClass{
		&tg.MessageEntityItalic{Offset: 2, Length: 9},
	})
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgentity.ErrEntityOutOfBounds)
}
