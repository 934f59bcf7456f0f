package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

// ArchiveResult describes where a document was archived.
type ArchiveResult struct {
	Aggregate *domain.ComponentsAggregate `json:"aggregate"`
	Location  string                      `json:"location"`
	Cached    bool                        `json:"cached"`
}

// ArchiveConversationUseCase retrieves a conversation with a cache-first
// strategy and writes the document to the archive store.
type ArchiveConversationUseCase struct {
	cache     ConversationCache
	retriever ConversationRetriever
	store     ArchiveStore
	observer  CacheObserver
}

// NewArchiveConversationUseCase creates an ArchiveConversationUseCase. observer may be nil.
func NewArchiveConversationUseCase(cache ConversationCache, retriever ConversationRetriever, store ArchiveStore, observer CacheObserver) *ArchiveConversationUseCase {
	return &ArchiveConversationUseCase{cache: cache, retriever: retriever, store: store, observer: observer}
}

// CacheKey identifies one document as seen by one session. Flags change the
// document's content. The session digest keeps a document fetched with one
// session's credentials from being served to another.
func CacheKey(p domain.Permalink, flags domain.FeatureFlags, creds domain.Credentials) string {
	return p.FileName() + "|" + flags.String() + "|" + sessionDigest(creds)
}

func sessionDigest(creds domain.Credentials) string {
	sum := sha256.Sum256([]byte(creds.Token + "\x00" + creds.Cookie))
	return hex.EncodeToString(sum[:])
}

// Execute returns the cached document when present. Otherwise it retrieves,
// saves and caches it. Nothing is saved or cached when retrieval fails.
func (uc *ArchiveConversationUseCase) Execute(ctx context.Context, creds domain.Credentials, permalink string, flags domain.FeatureFlags) (*ArchiveResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	p, err := domain.ParsePermalink(permalink)
	if err != nil {
		return nil, err
	}

	key := CacheKey(p, flags, creds)
	if agg, found := uc.cache.Get(key); found {
		uc.observeLookup(true)
		log.GlobalDebugCtx(ctx, "cache hit", "key", key)
		return &ArchiveResult{Aggregate: agg, Location: uc.store.Location(agg.FileName), Cached: true}, nil
	}
	uc.observeLookup(false)
	log.GlobalDebugCtx(ctx, "cache miss, retrieving", "key", key)

	agg, err := uc.retriever.Execute(ctx, creds, permalink, flags)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", agg.FileName, err)
	}
	if err := uc.store.Save(ctx, agg.FileName, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", agg.FileName, err)
	}

	uc.cache.Set(key, agg)

	return &ArchiveResult{Aggregate: agg, Location: uc.store.Location(agg.FileName)}, nil
}

func (uc *ArchiveConversationUseCase) observeLookup(hit bool) {
	if uc.observer != nil {
		uc.observer.ObserveCacheLookup(hit)
	}
}
