package yaencoding_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/YaCodeDev/GoYaTgBotKit/yaencoding"
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int
	Name  string
	Tags  []string
	Bytes []byte
}

func TestMessagePack_Flow(t *testing.T) {
	t.Parallel()

	t.Run("Full Round Trip", func(t *testing.T) {
		t.Parallel()

		in := sample{
			ID:    7,
			Name:  "RZK",
			Tags:  []string{"a", "b", "c"},
			Bytes: []byte{0, 1, 2, 250},
		}

		data, err := yaencoding.EncodeMessagePack(in)
		require.Nil(t, err)

		out, err := yaencoding.DecodeMessagePack[sample](data)
		require.Nil(t, err)
		require.NotNil(t, out)

		assert.Equal(t, in, *out)
	})

	t.Run("Invalid Data Returns Error", func(t *testing.T) {
		t.Parallel()

		out, err := yaencoding.DecodeMessagePack[sample]([]byte{0xc1})
		require.Nil(t, out)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal")
	})

	t.Run("Utility ToString-ToBytes Round Trip", func(t *testing.T) {
		t.Parallel()

		data := []byte{1, 2, 3, 4, 5}

		res, err := yaencoding.ToBytes(yaencoding.ToString(data))
		require.Nil(t, err)
		assert.Equal(t, data, res)
	})

	t.Run("Utility ToBytes Invalid Input", func(t *testing.T) {
		t.Parallel()

		_, err := yaencoding.ToBytes("%%%")
		require.NotNil(t, err)
	})
}

func TestJournal_RoundTrip(t *testing.T) {
	t.Parallel()

	d := yatgbot.NewDispatcher(yatgbot.BotIdentity{UserID: 1}, nil)
	d.Register("flag", func(context.Context, *yatgbot.Update) (yatgbot.Outcome, error) {
		return yatgbot.Flag(true), nil
	})
	d.Register("reply", func(context.Context, *yatgbot.Update) (yatgbot.Outcome, error) {
		return yatgbot.Reply{"ok": false, "description": "blocked"}, nil
	})

	journal, dispatchErr := d.Dispatch(context.Background(), &yatgbot.Update{ID: 5})
	require.Nil(t, dispatchErr)

	data, err := yaencoding.EncodeJournal(5, journal, nil)
	require.Nil(t, err)

	record, err := yaencoding.DecodeJournal(data)
	require.Nil(t, err)

	want := &yaencoding.JournalRecord{
		UpdateID: 5,
		Stopped:  true,
		Entries: []yaencoding.JournalEntry{
			{Label: "flag", Kind: yaencoding.OutcomeFlag, Flag: true, Truthy: true},
			{
				Label: "reply",
				Kind:  yaencoding.OutcomeReply,
				Reply: map[string]any{"ok": false, "description": "blocked"},
			},
		},
	}

	if diff := cmp.Diff(want, record); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
}

func TestJournal_WithError(t *testing.T) {
	t.Parallel()

	record := yaencoding.NewJournalRecord(9, nil, yaerrors.FromString(http.StatusBadGateway, "upstream"))

	assert.Equal(t, int64(9), record.UpdateID)
	assert.Equal(t, "502 | upstream", record.Error)
	assert.Empty(t, record.Entries)
}
