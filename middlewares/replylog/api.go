package replylog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Luo9/Plugin-Hello/lib/host"
)

// API wraps a host.API and records each send in a Store. Send results are
// returned unchanged; a failed record write is only logged.
type API struct {
	next   host.API
	store  *Store
	logger *zap.Logger
	now    func() time.Time
}

var _ host.API = (*API)(nil)

// Wrap returns next with reply logging. A nil logger discards log output.
func Wrap(next host.API, store *Store, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{next: next, store: store, logger: logger, now: time.Now}
}

// SendGroupMessage forwards to the wrapped API and records the attempt.
func (a *API) SendGroupMessage(ctx context.Context, groupID, text string) error {
	err := a.next.SendGroupMessage(ctx, groupID, text)
	a.record(ctx, KindGroup, groupID, text, err)
	return err
}

// SendPrivateMsg forwards to the wrapped API and records the attempt.
func (a *API) SendPrivateMsg(ctx context.Context, userID, text string) error {
	err := a.next.SendPrivateMsg(ctx, userID, text)
	a.record(ctx, KindPrivate, userID, text, err)
	return err
}

func (a *API) record(ctx context.Context, kind, target, text string, sendErr error) {
	rec := &Record{
		ID:     uuid.NewString(),
		Kind:   kind,
		Target: target,
		Text:   text,
		SentAt: a.now(),
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	// The send already happened; do not let a cancelled ctx drop its record.
	if err := a.store.Add(context.WithoutCancel(ctx), rec); err != nil {
		a.logger.Warn("reply log write failed",
			zap.String("kind", kind),
			zap.String("target", target),
			zap.Error(err))
	}
}
