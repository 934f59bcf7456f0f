package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

// RetrieveConversationUseCase turns a permalink into a finalized archival document.
type RetrieveConversationUseCase struct {
	connect  Connect
	observer RetrievalObserver
}

// NewRetrieveConversationUseCase creates a RetrieveConversationUseCase. observer may be nil.
func NewRetrieveConversationUseCase(connect Connect, observer RetrievalObserver) *RetrieveConversationUseCase {
	return &RetrieveConversationUseCase{connect: connect, observer: observer}
}

// Execute validates creds and parses the permalink before any network call,
// then runs the fetch steps selected by flags. Any failure fails the whole retrieval.
func (uc *RetrieveConversationUseCase) Execute(ctx context.Context, creds domain.Credentials, permalink string, flags domain.FeatureFlags) (*domain.ComponentsAggregate, error) {
	start := time.Now()
	agg, err := uc.retrieve(ctx, creds, permalink, flags)

	class := ErrorClass(err)
	if uc.observer != nil {
		uc.observer.ObserveRetrieval(class, time.Since(start))
	}
	if err != nil {
		log.GlobalWarnCtx(ctx, "retrieval failed", "class", class, "error", err)
		return nil, err
	}
	return agg, nil
}

func (uc *RetrieveConversationUseCase) retrieve(ctx context.Context, creds domain.Credentials, raw string, flags domain.FeatureFlags) (*domain.ComponentsAggregate, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	permalink, err := domain.ParsePermalink(raw)
	if err != nil {
		return nil, err
	}

	ctx = log.WithFields(ctx, "retrieval_id", uuid.NewString(), "channel", permalink.ChannelID, "ts", permalink.TS)
	log.GlobalInfoCtx(ctx, "retrieval started", "flags", flags.String())

	acc, err := runStateMachine(ctx, uc.connect(creds), permalink, flags)
	if err != nil {
		return nil, err
	}

	acc, err = finalize(acc)
	if err != nil {
		return nil, err
	}

	agg := assemble(acc, flags)
	log.GlobalInfoCtx(ctx, "retrieval finished",
		"file_name", agg.FileName,
		"thread_size", len(agg.MessageAndThread.Thread),
		"users", len(agg.Users),
		"teams", len(agg.Teams),
	)
	return agg, nil
}
