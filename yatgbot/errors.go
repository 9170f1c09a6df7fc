package yatgbot

import "errors"

var (
	ErrInvalidBotToken = errors.New("invalid bot token")
	ErrHandlerFailed   = errors.New("update handler failed")
)
