package yaencoding

import (
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
)

// Outcome kinds of a JournalEntry.
const (
	OutcomeNone  = "none"
	OutcomeFlag  = "flag"
	OutcomeReply = "reply"
)

// JournalEntry is the storable form of one yatgbot.Entry.
type JournalEntry struct {
	Label  string         `msgpack:"label"           json:"label"`
	Kind   string         `msgpack:"kind"            json:"kind"`
	Flag   bool           `msgpack:"flag,omitempty"  json:"flag,omitempty"`
	Reply  map[string]any `msgpack:"reply,omitempty" json:"reply,omitempty"`
	Truthy bool           `msgpack:"truthy"          json:"truthy"`
}

// JournalRecord is the storable form of one dispatch: the handler outcomes and the
// error that ended it, if any.
type JournalRecord struct {
	UpdateID int64          `msgpack:"update_id"       json:"update_id"`
	Entries  []JournalEntry `msgpack:"entries"         json:"entries"`
	Stopped  bool           `msgpack:"stopped"         json:"stopped"`
	Error    string         `msgpack:"error,omitempty" json:"error,omitempty"`
}

// NewJournalRecord flattens journal and dispatchErr into a JournalRecord.
// Outcome types other than yatgbot.Flag and yatgbot.Reply keep only their
// truthiness.
func NewJournalRecord(updateID int64, journal *yatgbot.Journal, dispatchErr yaerrors.Error) JournalRecord {
	record := JournalRecord{
		UpdateID: updateID,
	}

	if dispatchErr != nil {
		record.Error = dispatchErr.Error()
	}

	if journal == nil {
		return record
	}

	record.Stopped = journal.Stopped()

	for _, entry := range journal.Entries() {
		stored := JournalEntry{
			Label:  entry.Label,
			Kind:   OutcomeNone,
			Truthy: yatgbot.Truthy(entry.Outcome),
		}

		switch outcome := entry.Outcome.(type) {
		case yatgbot.Flag:
			stored.Kind = OutcomeFlag
			stored.Flag = bool(outcome)
		case yatgbot.Reply:
			stored.Kind = OutcomeReply
			stored.Reply = outcome
		}

		record.Entries = append(record.Entries, stored)
	}

	return record
}

// EncodeJournal is EncodeMessagePack for a dispatch result.
func EncodeJournal(updateID int64, journal *yatgbot.Journal, dispatchErr yaerrors.Error) ([]byte, yaerrors.Error) {
	data, err := EncodeMessagePack(NewJournalRecord(updateID, journal, dispatchErr))
	if err != nil {
		return nil, err.Wrap("[ENCODING] failed to encode journal")
	}

	return data, nil
}

// DecodeJournal decodes data written by EncodeJournal.
func DecodeJournal(data []byte) (*JournalRecord, yaerrors.Error) {
	record, err := DecodeMessagePack[JournalRecord](data)
	if err != nil {
		return nil, err.Wrap("[ENCODING] failed to decode journal")
	}

	return record, nil
}
