// Package valueparser converts strings (environment variables, mostly) into typed values.
package valueparser

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
)

// ParseValue converts value to T. Types implementing encoding.TextUnmarshaler on their
// pointer (yalogger.Level, for example) are parsed through UnmarshalText first.
//
// Example usage:
//
//	port, err := valueparser.ParseValue[uint16]("8080")
func ParseValue[T ParsableType](value string) (T, yaerrors.Error) {
	var result T

	if unmarshaler, ok := any(&result).(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText([]byte(value)); err != nil {
			return result, yaerrors.FromError(
				http.StatusInternalServerError,
				fmt.Errorf("%w: %w", ErrUnparsableValue, err),
				fmt.Sprintf("parse value: failed to unmarshal `%s` into %T", value, result),
			)
		}

		return result, nil
	}

	target := reflect.ValueOf(&result).Elem()

	var err error

	switch target.Kind() {
	case reflect.String:
		target.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var parsed int64

		parsed, err = strconv.ParseInt(value, 10, target.Type().Bits())
		if err == nil {
			target.SetInt(parsed)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var parsed uint64

		parsed, err = strconv.ParseUint(value, 10, target.Type().Bits())
		if err == nil {
			target.SetUint(parsed)
		}
	case reflect.Float32, reflect.Float64:
		var parsed float64

		parsed, err = strconv.ParseFloat(value, target.Type().Bits())
		if err == nil {
			target.SetFloat(parsed)
		}
	case reflect.Bool:
		var parsed bool

		parsed, err = strconv.ParseBool(value)
		if err == nil {
			target.SetBool(parsed)
		}
	default:
		return result, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrUnsupportedType,
			"parse value: unsupported kind "+target.Kind().String(),
		)
	}

	if err != nil {
		return result, yaerrors.FromError(
			http.StatusInternalServerError,
			fmt.Errorf("%w: %w", ErrUnparsableValue, err),
			fmt.Sprintf("parse value: `%s` is not a valid %T", value, result),
		)
	}

	return result, nil
}
