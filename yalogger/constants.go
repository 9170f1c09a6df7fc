package yalogger

// Level mirrors logrus levels so a Level converts to logrus.Level directly.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID = "request_id"
	KeyUserID    = "user_id"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"
