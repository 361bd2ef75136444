package challenge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uvensys/cerberus/internal"
	"github.com/uvensys/cerberus/lib/store"
)

// Options configures a Registry.
type Options struct {
	// Store holds the outstanding challenge records.
	Store store.Interface

	// Method names the registered verification method to use.
	Method string

	// Difficulty is the number of leading zero hex digits required of a
	// solution hash. Zero accepts any well-formed nonce.
	Difficulty int

	// SecretLength is the length of generated challenge secrets.
	SecretLength int
}

// Registry owns the mapping from (chat, user) pairs to outstanding
// challenges. All operations are atomic with respect to each other, two
// concurrent Verify calls for the same pair can never both observe
// OutcomeAccepted.
type Registry struct {
	mu     sync.Mutex
	db     store.JSON[Challenge]
	impl   Impl
	method string
	opts   Options
}

func NewRegistry(opts Options) (*Registry, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrBadOptions)
	}

	if opts.Difficulty < 0 {
		return nil, fmt.Errorf("%w: difficulty can't be negative", ErrBadOptions)
	}

	if opts.SecretLength <= 0 {
		return nil, fmt.Errorf("%w: secret length must be positive", ErrBadOptions)
	}

	impl, ok := Get(opts.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q, have: %v", ErrUnknownMethod, opts.Method, Methods())
	}

	return &Registry{
		db: store.JSON[Challenge]{
			Underlying: opts.Store,
			Prefix:     "challenge:",
		},
		impl:   impl,
		method: opts.Method,
		opts:   opts,
	}, nil
}

func key(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// Issue generates a fresh challenge for the pair, replacing any outstanding
// one. A member mid-solve on the old secret will simply get rejected from
// then on. Issue only mutates the registry, restricting the member on the
// platform is the caller's job.
func (r *Registry) Issue(ctx context.Context, chatID, userID int64) (Challenge, error) {
	secret, err := newSecret(r.opts.SecretLength)
	if err != nil {
		return Challenge{}, err
	}

	ch := Challenge{
		ID:         uuid.NewString(),
		ChatID:     chatID,
		UserID:     userID,
		Secret:     secret,
		Difficulty: r.opts.Difficulty,
		IssuedAt:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Challenges deliberately never expire, see the design notes about
	// abandoned records.
	if err := r.db.Set(ctx, key(chatID, userID), ch, 0); err != nil {
		return Challenge{}, err
	}

	challengesIssued.WithLabelValues(r.method).Inc()

	slog.Debug("challenge issued",
		"challenge_id", ch.ID,
		"chat_id", chatID,
		"user_id", userID,
		"difficulty", ch.Difficulty,
		"secret_fp", internal.FastHash(ch.Secret),
	)

	return ch, nil
}

// Verify checks a candidate nonce against the pair's outstanding challenge.
// On OutcomeAccepted the record is retired as part of this call, a duplicate
// submission afterwards yields OutcomeNoChallenge.
func (r *Registry) Verify(ctx context.Context, chatID, userID int64, candidate string) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, err := r.db.Get(ctx, key(chatID, userID))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return OutcomeNoChallenge, nil
	case err != nil:
		return OutcomeNoChallenge, err
	}

	switch err := r.impl.Check(ch.Secret, candidate, ch.Difficulty); {
	case errors.Is(err, ErrInvalidFormat):
		malformedSubmissions.Inc()
		return OutcomeInvalidFormat, nil
	case errors.Is(err, ErrFailed):
		challengesRejected.WithLabelValues(r.method).Inc()
		return OutcomeRejected, nil
	case err != nil:
		return OutcomeNoChallenge, err
	}

	if err := r.db.Delete(ctx, key(chatID, userID)); err != nil {
		return OutcomeAccepted, err
	}

	challengesSolved.WithLabelValues(r.method).Inc()
	TimeToSolve.WithLabelValues(r.method).Observe(time.Since(ch.IssuedAt).Seconds())

	slog.Debug("challenge solved",
		"challenge_id", ch.ID,
		"chat_id", chatID,
		"user_id", userID,
	)

	return OutcomeAccepted, nil
}

// Outstanding reports whether the pair currently has a challenge to solve.
func (r *Registry) Outstanding(ctx context.Context, chatID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Get(ctx, key(chatID, userID))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	return true, nil
}

// Revoke removes the pair's outstanding challenge without verification. It
// is a no-op when no challenge is outstanding.
func (r *Registry) Revoke(ctx context.Context, chatID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.Delete(ctx, key(chatID, userID))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	}

	challengesRevoked.Inc()
	return nil
}
