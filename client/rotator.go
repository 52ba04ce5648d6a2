package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
)

// ErrQuotaExhausted is returned once every configured key has been rotated
// through within one logical call without success.
var ErrQuotaExhausted = errors.New("quota exhausted across all API keys")

// Rotator owns the ordered API key list and the client bound to the
// current key. It is used by a single worker goroutine per run, so no
// locking is needed; a concurrent design would have to guard current and
// api with a mutex.
type Rotator struct {
	keys    []string
	current int
	factory Factory
	api     API
}

// NewRotator builds a rotator bound to the first key in the list.
func NewRotator(ctx context.Context, keys []string, factory Factory) (*Rotator, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no YouTube API keys provided")
	}

	api, err := factory(ctx, keys[0])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API client: %w", err)
	}

	return &Rotator{
		keys:    keys,
		factory: factory,
		api:     api,
	}, nil
}

// CurrentIndex returns the index of the key the client is bound to.
func (r *Rotator) CurrentIndex() int {
	return r.current
}

// Execute runs call against the current client, rotating to the next key
// and retrying whenever the call fails with a quota/authorization error.
// After cycling through every key without success it gives up with
// ErrQuotaExhausted instead of looping. Non-quota errors pass through
// untouched.
func (r *Rotator) Execute(ctx context.Context, call func(api API) error) error {
	rotations := 0
	for {
		err := call(r.api)
		if err == nil {
			return nil
		}
		if !IsQuotaError(err) {
			return err
		}
		if rotations >= len(r.keys) {
			return fmt.Errorf("%d consecutive quota rotations: %w", rotations, ErrQuotaExhausted)
		}
		if rerr := r.rotate(ctx, err); rerr != nil {
			return rerr
		}
		rotations++
	}
}

// rotate advances to the next key and rebuilds the underlying client.
func (r *Rotator) rotate(ctx context.Context, cause error) error {
	r.current = (r.current + 1) % len(r.keys)

	api, err := r.factory(ctx, r.keys[r.current])
	if err != nil {
		return fmt.Errorf("failed to rebuild client for key index %d: %w", r.current, err)
	}
	r.api = api

	log.Info().
		Int("key_index", r.current).
		Str("reason", cause.Error()).
		Msg("Rotated to next API key")
	return nil
}

// IsQuotaError reports whether err is a quota/authorization failure that
// should trigger key rotation. Feature-disabled 403s such as
// commentsDisabled are not quota errors.
func IsQuotaError(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "commentsDisabled":
			return false
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	// 403 without a recognizable reason is treated as the quota/auth class.
	return true
}

// IsCommentsDisabled reports whether err means the video has comments
// turned off. Callers treat this as "zero comments", not as a failure.
func IsCommentsDisabled(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == "commentsDisabled" {
			return true
		}
	}
	return false
}
