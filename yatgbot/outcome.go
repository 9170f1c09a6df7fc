package yatgbot

// okKey is the Reply entry that decides whether a Reply lets the chain continue.
const okKey = "ok"

// Outcome is what a handler returns for an update. A nil Outcome is allowed and is
// falsy.
type Outcome interface {
	Truthy() bool
}

// Flag is a plain boolean outcome.
type Flag bool

func (f Flag) Truthy() bool {
	return bool(f)
}

// Reply is a structured outcome, typically the response of a Bot API call.
//
// An empty Reply is falsy. A Reply with an "ok" entry is truthy only when that
// entry is the boolean true. Any other non-empty Reply is truthy.
type Reply map[string]any

func (r Reply) Truthy() bool {
	if len(r) == 0 {
		return false
	}

	ok, present := r[okKey]
	if !present {
		return true
	}

	value, isBool := ok.(bool)

	return isBool && value
}

// Continue is the outcome of a handler that has nothing to report.
var Continue Outcome = Flag(true)

// Stop is the outcome of a handler that wants the chain to end.
var Stop Outcome = Flag(false)

// Truthy reports whether outcome lets the chain go on. Nil is falsy.
func Truthy(outcome Outcome) bool {
	if outcome == nil {
		return false
	}

	return outcome.Truthy()
}
