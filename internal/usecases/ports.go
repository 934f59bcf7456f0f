package usecases

import (
	"context"
	"time"

	"slack-archiver/internal/domain"
)

// SlackAPI is the remote side of a retrieval, bound to one session.
type SlackAPI interface {
	FetchConversation(ctx context.Context, channelID, ts, threadTS string) (domain.MessageAndThread, error)
	FetchChannel(ctx context.Context, channelID string) (*domain.Channel, error)
	FetchUsers(ctx context.Context, ids []string) (map[string]domain.User, error)
	FetchTeams(ctx context.Context, ids []string) (map[string]domain.Team, error)
}

// Connect binds validated credentials to a SlackAPI.
type Connect func(creds domain.Credentials) SlackAPI

// FileFetcher downloads private file URLs for one session.
type FileFetcher interface {
	FetchFileData(ctx context.Context, fileURL string) ([]byte, error)
}

// ConnectFiles binds validated credentials to a FileFetcher.
type ConnectFiles func(creds domain.Credentials) FileFetcher

// ConversationRetriever produces the archival document for a permalink.
type ConversationRetriever interface {
	Execute(ctx context.Context, creds domain.Credentials, permalink string, flags domain.FeatureFlags) (*domain.ComponentsAggregate, error)
}

// ConversationCache holds finished documents keyed by CacheKey.
type ConversationCache interface {
	Get(key string) (*domain.ComponentsAggregate, bool)
	Set(key string, agg *domain.ComponentsAggregate)
}

// ArchiveStore persists documents and downloaded files by name.
type ArchiveStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Location(name string) string
}

// RetrievalObserver is told how every retrieval ended.
type RetrievalObserver interface {
	ObserveRetrieval(class string, elapsed time.Duration)
}

// CacheObserver is told whether each archive request was served from cache.
type CacheObserver interface {
	ObserveCacheLookup(hit bool)
}
