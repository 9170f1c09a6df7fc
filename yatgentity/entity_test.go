package yatgentity_test

import (
	"testing"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgentity"
	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Valid(t *testing.T) {
	t.Parallel()

	entity, err := yatgentity.New(
		yatgentity.KindTextMention, 2, 5,
		yatgentity.WithMentionedUser(42),
	)
	require.Nil(t, err)

	userID, ok := entity.MentionedUserID()

	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, 7, entity.End())
	assert.Equal(t, yatgentity.KindTextMention, entity.Kind())
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		kind   yatgentity.EntityKind
		offset int
		length int
		opts   []yatgentity.Option
	}{
		{name: "negative offset", kind: yatgentity.KindBold, offset: -1, length: 1},
		{name: "negative length", kind: yatgentity.KindBold, offset: 0, length: -1},
		{name: "text_link without url", kind: yatgentity.KindTextLink, offset: 0, length: 1},
		{name: "url without url", kind: yatgentity.KindURL, offset: 0, length: 1},
		{name: "text_mention without user", kind: yatgentity.KindTextMention, offset: 0, length: 1},
		{
			name: "bold with url", kind: yatgentity.KindBold, offset: 0, length: 1,
			opts: []yatgentity.Option{yatgentity.WithURL("https://example.com")},
		},
		{
			name: "code with language", kind: yatgentity.KindCode, offset: 0, length: 1,
			opts: []yatgentity.Option{yatgentity.WithLanguage("go")},
		},
		{
			name: "text_link with user", kind: yatgentity.KindTextLink, offset: 0, length: 1,
			opts: []yatgentity.Option{
				yatgentity.WithURL("https://example.com"),
				yatgentity.WithMentionedUser(1),
			},
		},
		{
			name: "unknown kind with url", kind: "hashtag", offset: 0, length: 1,
			opts: []yatgentity.Option{yatgentity.WithURL("https://example.com")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := yatgentity.New(tc.kind, tc.offset, tc.length, tc.opts...)

			require.NotNil(t, err)
			assert.ErrorIs(t, err, yatgentity.ErrInvalidEntity)
		})
	}
}

func TestParseKind_UnknownRoundTrips(t *testing.T) {
	t.Parallel()

	kind := yatgentity.ParseKind("hashtag")

	assert.False(t, kind.Known())
	assert.Equal(t, "hashtag", kind.String())
	assert.True(t, yatgentity.ParseKind("pre").Known())
}

func TestCheckBounds(t *testing.T) {
	t.Parallel()

	text := "hi 👋"
	assert.Equal(t, 5, yatgentity.UTF16Len(text))

	ok := []yatgentity.TextEntity{yatgentity.MustNew(yatgentity.KindBold, 3, 2)}
	assert.Nil(t, yatgentity.CheckBounds(text, ok))

	bad := []yatgentity.TextEntity{yatgentity.MustNew(yatgentity.KindBold, 3, 3)}
	err := yatgentity.CheckBounds(text, bad)

	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgentity.ErrEntityOutOfBounds)
}

func TestSliceUTF16(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "👋!", yatgentity.SliceUTF16("hi 👋!", 3, 6))
	assert.Equal(t, "hi", yatgentity.SliceUTF16("hi", 0, 10))
	assert.Equal(t, "", yatgentity.SliceUTF16("/start", 3, 1))
	assert.Equal(t, "", yatgentity.SliceUTF16("hi", 5, 9))
}

func TestFromRaw(t *testing.T) {
	t.Parallel()

	text := "see https://example.com now"

	entities, err := yatgentity.FromRawList(text, []yatgentity.RawEntity{
		{Type: "url", Offset: 4, Length: 19},
		{Type: "text_mention", Offset: 0, Length: 3, User: &yatgentity.RawUser{ID: 7}},
		{Type: "pre", Offset: 24, Length: 3, Language: "go"},
		{Type: "hashtag", Offset: 0, Length: 3},
	})
	require.Nil(t, err)
	require.Len(t, entities, 4)

	assert.Equal(t, "https://example.com", entities[0].URL())
	assert.Equal(t, "go", entities[2].Language())
	assert.False(t, entities[3].Kind().Known())

	raw := yatgentity.ToRaw(entities[1])
	assert.Equal(t, int64(7), raw.User.ID)
}

func TestFromRawList_OutOfBounds(t *testing.T) {
	t.Parallel()

	_, err := yatgentity.FromRawList("short", []yatgentity.RawEntity{
		{Type: "bold", Offset: 2, Length: 10},
	})

	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgentity.ErrEntityOutOfBounds)
}

func TestFromTg(t *testing.T) {
	t.Parallel()

	text := "/start go https://example.com"

	entities, err := yatgentity.FromTgList(text, []tg.MessageEntityClass{
		&tg.MessageEntityBotCommand{Offset: 0, Length: 6},
		&tg.MessageEntityPre{Offset: 7, Length: 2, Language: "go"},
		&tg.MessageEntityURL{Offset: 10, Length: 19},
		&tg.MessageEntityTextURL{Offset: 0, Length: 6, URL: "https://t.me"},
		&tg.MessageEntityMentionName{Offset: 0, Length: 6, UserID: 99},
		&tg.MessageEntitySpoiler{Offset: 0, Length: 1},
	})
	require.Nil(t, err)

	kinds := make([]yatgentity.EntityKind, 0, len(entities))
	for _, entity := range entities {
		kinds = append(kinds, entity.Kind())
	}

	assert.Equal(t, []yatgentity.EntityKind{
		yatgentity.KindBotCommand,
		yatgentity.KindPre,
		yatgentity.KindURL,
		yatgentity.KindTextLink,
		yatgentity.KindTextMention,
		"spoiler",
	}, kinds)
	assert.Equal(t, "https://example.com", entities[2].URL())
	assert.Equal(t, "https://t.me", entities[3].URL())
}
