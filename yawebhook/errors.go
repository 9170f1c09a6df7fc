package yawebhook

import "errors"

var ErrHandlerPanicked = errors.New("update handler panicked")
