package messagequeue

import "errors"

var (
	ErrJobCanceled = errors.New("job was canceled")
	ErrQueueClosed = errors.New("message queue is closed")
)
