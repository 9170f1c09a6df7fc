package yatgbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
)

// Handler processes one update. Returning an error stops the chain; the dispatcher
// does not recover panics.
type Handler func(ctx context.Context, upd *Update) (Outcome, error)

type route struct {
	label   string
	handler Handler
}

// Dispatcher runs the handlers of one bot in registration order.
//
// Registration is expected to finish before updates arrive, but Register and Use
// may be called concurrently with Dispatch.
type Dispatcher struct {
	identity BotIdentity
	log      yalogger.Logger

	mu          sync.RWMutex
	routes      []route
	labels      map[string]int
	middlewares []HandlerMiddleware
}

// NewDispatcher creates an empty Dispatcher for the given bot. A nil log falls back
// to an info level logrus logger.
func NewDispatcher(identity BotIdentity, log yalogger.Logger) *Dispatcher {
	if log == nil {
		log = yalogger.NewBaseLogger(nil).NewLogger()
	}

	return &Dispatcher{
		identity: identity,
		log:      log.WithUserID(identity.UserID),
		labels:   make(map[string]int),
	}
}

// Identity returns the bot this dispatcher serves.
func (d *Dispatcher) Identity() BotIdentity {
	return d.identity
}

// Register appends handler to the chain and returns the label its outcomes are
// journaled under. A label already in use gets a "#n" suffix, n counting from 2.
//
// Example usage:
//
//	d.Register("echo", echo)  // "echo"
//	d.Register("echo", other) // "echo#2"
func (d *Dispatcher) Register(label string, handler Handler) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.labels[label]++

	unique := label
	if n := d.labels[label]; n > 1 {
		unique = fmt.Sprintf("%s#%d", label, n)
	}

	d.routes = append(d.routes, route{
		label:   unique,
		handler: handler,
	})

	d.log.Debugf("Registered update handler %s", unique)

	return unique
}

// Labels returns the handler labels in execution order.
func (d *Dispatcher) Labels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	labels := make([]string, 0, len(d.routes))

	for _, r := range d.routes {
		labels = append(labels, r.label)
	}

	return labels
}

// Dispatch runs the chain for upd.
//
// Each handler's outcome is recorded before its truthiness is checked, so the
// journal always ends with the outcome that stopped the chain. When a handler
// fails, Dispatch returns the journal of the handlers that ran before it together
// with an error wrapping ErrHandlerFailed and the handler's own error.
func (d *Dispatcher) Dispatch(ctx context.Context, upd *Update) (*Journal, yaerrors.Error) {
	if upd == nil {
		upd = &Update{}
	}

	d.mu.RLock()
	routes := slices.Clone(d.routes)
	middlewares := slices.Clone(d.middlewares)
	d.mu.RUnlock()

	journal := newJournal(len(routes))

	for _, r := range routes {
		next := chainMiddleware(r.label, r.handler, middlewares...)

		outcome, err := next(ctx, upd)
		if err != nil {
			return journal, handlerError(r.label, err)
		}

		journal.record(r.label, outcome)

		if !Truthy(outcome) {
			journal.stopped = true

			d.log.Debugf("Update %d stopped at %s", upd.ID, r.label)

			break
		}
	}

	return journal, nil
}

func handlerError(label string, err error) yaerrors.Error {
	code := http.StatusInternalServerError

	var yaErr yaerrors.Error
	if errors.As(err, &yaErr) {
		code = yaErr.Code()
	}

	return yaerrors.FromError(
		code,
		fmt.Errorf("%w: %w", ErrHandlerFailed, err),
		fmt.Sprintf("[DISPATCHER] handler %s", label),
	)
}
