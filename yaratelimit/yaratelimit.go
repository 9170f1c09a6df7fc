// Package yaratelimit implements a fixed-window rate limiter backed by a
// yacache.Cache. The bot uses it to drop updates from users who flood it.
//
// # Storage layout
//
// Each subject is addressed by a string key:
//
//	rate-limit-<id>-<group>
//
// The cache value is a compact CSV tuple:
//
//	"<count>,<first_unix_sec>"
//
// For example: "3,1726860000" means 3 hits since unix time 1726860000. The key
// is stored with the window as TTL, so a stale window also disappears on its own.
//
// # Model
//
// On each Increment:
//
//   - If no record exists or the window has passed: Refresh() starts a new
//     window with count=1.
//   - If the count already reached Limit: the hit is banned and not counted.
//   - Otherwise: count++.
package yaratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yacache"
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
)

// Storage is the parsed representation of the CSV value in the cache.
type Storage struct {
	// Count is the number of hits within the current window.
	Count uint32
	// FirstRequest is the unix timestamp of the first hit within the current window.
	FirstRequest int64
}

// RateLimit is a fixed-window limiter backed by a yacache.Cache.
// The zero value is not valid; use NewRateLimit.
type RateLimit struct {
	Cache yacache.Cache
	// Limit is the max allowed hits per window.
	Limit uint32
	// Rate is the window size.
	Rate time.Duration
}

// NewRateLimit wires dependencies and returns a ready-to-use limiter.
//
// Example:
//
//	rl := yaratelimit.NewRateLimit(cache, 5, time.Minute)
func NewRateLimit(cache yacache.Cache, limit uint32, rate time.Duration) *RateLimit {
	return &RateLimit{
		Cache: cache,
		Limit: limit,
		Rate:  rate,
	}
}

// Increment records a hit for (id, group) and reports whether the subject is over
// the limit. A banned hit is not counted.
//
// Example:
//
//	banned, err := rl.Increment(ctx, userID, "updates")
//	if banned { /* reject */ }
func (r *RateLimit) Increment(ctx context.Context, id int64, group string) (bool, yaerrors.Error) {
	storage, err := r.Get(ctx, id, group)
	if err != nil {
		if !errors.Is(err, yacache.ErrCacheKeyNotFound) {
			return false, err.Wrap("[RATELIMIT] failed to read window")
		}

		return r.refresh(ctx, id, group)
	}

	first := time.Unix(storage.FirstRequest, 0)

	if !time.Now().Before(first.Add(r.Rate)) {
		return r.refresh(ctx, id, group)
	}

	if storage.Count >= r.Limit {
		return true, nil
	}

	if err := r.Cache.Set(
		ctx,
		FormatKey(id, group),
		FormatValue(storage.Count+1, storage.FirstRequest),
		time.Until(first.Add(r.Rate)),
	); err != nil {
		return false, err.Wrap("[RATELIMIT] failed to increment window")
	}

	return false, nil
}

func (r *RateLimit) refresh(ctx context.Context, id int64, group string) (bool, yaerrors.Error) {
	if err := r.Refresh(ctx, id, group); err != nil {
		return false, err
	}

	return r.Limit == 0, nil
}

// Refresh resets the window for (id, group) to count=1 at the current timestamp.
func (r *RateLimit) Refresh(ctx context.Context, id int64, group string) yaerrors.Error {
	if err := r.Cache.Set(ctx, FormatKey(id, group), FormatValue(1, time.Now().Unix()), r.Rate); err != nil {
		return err.Wrap("[RATELIMIT] failed to set refreshed window")
	}

	return nil
}

// Get fetches and parses the cache record for (id, group). A missing record fails
// with an error wrapping yacache.ErrCacheKeyNotFound.
func (r *RateLimit) Get(ctx context.Context, id int64, group string) (*Storage, yaerrors.Error) {
	value, yaerr := r.Cache.Get(ctx, FormatKey(id, group))
	if yaerr != nil {
		return nil, yaerr.Wrap("[RATELIMIT] failed to get window")
	}

	const fields = 2

	values := strings.Split(value, ",")
	if len(values) != fields {
		return nil, yaerrors.FromString(
			http.StatusInternalServerError,
			fmt.Sprintf("[RATELIMIT] malformed window `%s`", value),
		)
	}

	count, err := strconv.ParseUint(values[0], 10, 32)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[RATELIMIT] couldn't validate count",
		)
	}

	firstRequest, err := strconv.ParseInt(values[1], 10, 64)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[RATELIMIT] couldn't validate unix time",
		)
	}

	return &Storage{
		Count:        uint32(count),
		FirstRequest: firstRequest,
	}, nil
}

// Handler returns an update handler that stops the chain for senders over the
// limit. Updates without a sender pass. Cache failures are logged and let the
// update through, since losing the limiter must not take the bot down.
//
// Example:
//
//	d.Register("rate-limit", yaratelimit.Handler(rl, "updates", log))
func Handler(limiter *RateLimit, group string, log yalogger.Logger) yatgbot.Handler {
	return func(ctx context.Context, upd *yatgbot.Update) (yatgbot.Outcome, error) {
		senderID := upd.EffectiveMessage().SenderID()
		if senderID == 0 {
			return yatgbot.Continue, nil
		}

		banned, err := limiter.Increment(ctx, senderID, group)
		if err != nil {
			log.WithUserID(senderID).Warnf("Rate limit check failed: %v", err)

			return yatgbot.Continue, nil
		}

		if banned {
			log.WithUserID(senderID).Debugf("Update %d dropped by rate limit", upd.ID)

			return yatgbot.Stop, nil
		}

		return yatgbot.Continue, nil
	}
}

// FormatKey constructs the cache key for (id, group).
//
// Example:
//
//	k := yaratelimit.FormatKey(100, "signup") // "rate-limit-100-signup"
func FormatKey(id int64, group string) string {
	return fmt.Sprintf("rate-limit-%d-%s", id, group)
}

// FormatValue serializes a (count, first_unix) tuple to a cache string.
//
// Example:
//
//	v := yaratelimit.FormatValue(2, 1726860000) // "2,1726860000"
func FormatValue(count uint32, firstRequest int64) string {
	return fmt.Sprintf("%d,%d", count, firstRequest)
}
