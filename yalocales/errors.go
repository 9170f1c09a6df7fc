package yalocales

import (
	"errors"
)

var (
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidTranslation = errors.New("invalid translation")
	ErrKeyNotFound        = errors.New("key not found")
	ErrDefaultCoverage    = errors.New("default language missing keys")
	ErrMissingFormatArgs  = errors.New("missing format arguments")
)
