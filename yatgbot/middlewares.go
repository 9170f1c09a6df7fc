package yatgbot

import (
	"context"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
)

// HandlerMiddleware wraps a single handler invocation. label is the journal label
// of the handler being run.
type HandlerMiddleware func(
	ctx context.Context,
	label string,
	upd *Update,
	next Handler,
) (Outcome, error)

// Use adds middlewares around every handler. The first middleware added is the
// outermost one.
//
// Example usage:
//
//	d.Use(yatgbot.LoggingMiddleware(log), metricsMiddleware)
func (d *Dispatcher) Use(mw ...HandlerMiddleware) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.middlewares = append(d.middlewares, mw...)
}

// chainMiddleware chains the provided middlewares around final.
func chainMiddleware(label string, final Handler, middlewares ...HandlerMiddleware) Handler {
	if len(middlewares) == 0 {
		return final
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware := middlewares[i]
		next := final

		final = func(ctx context.Context, upd *Update) (Outcome, error) {
			return middleware(ctx, label, upd, next)
		}
	}

	return final
}

// LoggingMiddleware logs every handler run at debug level and failures at error
// level.
func LoggingMiddleware(log yalogger.Logger) HandlerMiddleware {
	return func(ctx context.Context, label string, upd *Update, next Handler) (Outcome, error) {
		entry := log.WithFields(map[string]any{
			"handler":   label,
			"update_id": upd.ID,
		})

		started := time.Now()

		outcome, err := next(ctx, upd)
		if err != nil {
			entry.Errorf("Handler failed after %s: %v", time.Since(started), err)

			return outcome, err
		}

		entry.Debugf("Handler returned %v (truthy: %t) in %s", outcome, Truthy(outcome), time.Since(started))

		return outcome, nil
	}
}
