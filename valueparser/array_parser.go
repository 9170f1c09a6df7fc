package valueparser

import (
	"fmt"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

// ParseArray splits str by separator and parses each trimmed part into T.
// An empty string yields an empty slice. A nil separator means DefaultEntrySeparator.
//
// Example usage:
//
//	ids, err := valueparser.ParseArray[int64]("1, 2, 3", nil)
func ParseArray[T ParsableType](str string, separator *string) ([]T, yaerrors.Error) {
	if str == "" {
		return []T{}, nil
	}

	sep := DefaultEntrySeparator
	if separator != nil {
		sep = *separator
	}

	parts := strings.Split(str, sep)
	result := make([]T, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)

		parsed, err := ParseValue[T](trimmed)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("parse array: failed to parse part '%s'", trimmed))
		}

		result = append(result, parsed)
	}

	return result, nil
}
