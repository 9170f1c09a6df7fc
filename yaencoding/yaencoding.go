// Package yaencoding encodes values with MessagePack for storage in the cache,
// with Base64 helpers for string-only backends.
//
// Each encode/decode returns yaerrors.Error so callers can wrap it like any other
// failure of the kit.
//
// Example usage:
//
//	record := yaencoding.NewJournalRecord(update.ID, journal, nil)
//
//	encoded, err := yaencoding.EncodeMessagePack(record)
//	if err != nil {
//	    log.Fatalf("encode failed: %v", err)
//	}
//
//	decoded, err := yaencoding.DecodeMessagePack[yaencoding.JournalRecord](encoded)
//	if err != nil {
//	    log.Fatalf("decode failed: %v", err)
//	}
//
//	fmt.Println(decoded.UpdateID)
package yaencoding

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMessagePack serializes value using the MessagePack format.
//
// Example:
//
//	data, err := yaencoding.EncodeMessagePack(myStruct)
func EncodeMessagePack(value any) ([]byte, yaerrors.Error) {
	bytes, err := msgpack.Marshal(value)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to marshal %T using message pack format", value),
		)
	}

	return bytes, nil
}

// DecodeMessagePack decodes MessagePack data into a value of type T.
//
// Example:
//
//	val, err := yaencoding.DecodeMessagePack[User](data)
func DecodeMessagePack[T any](bytes []byte) (*T, yaerrors.Error) {
	var res T

	if err := msgpack.Unmarshal(bytes, &res); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to unmarshal message pack data to %T", res),
		)
	}

	return &res, nil
}

// ToString converts a byte slice into a base64 string.
func ToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToBytes decodes a base64 string into bytes.
func ToBytes(data string) ([]byte, yaerrors.Error) {
	bytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[ENCODING] failed to decode string to bytes",
		)
	}

	return bytes, nil
}
