package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"slack-archiver/internal/domain"
	"slack-archiver/internal/usecases"
)

func sampleAggregate() *domain.ComponentsAggregate {
	mt, _ := domain.NewMessageAndThread(twoMessageThread(), rootTS)
	return &domain.ComponentsAggregate{MessageAndThread: mt, FileName: "C1-" + rootTS + ".json"}
}

func TestArchiveConversation_Miss_RetrievesSavesAndCaches(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	store := NewMockStore()
	retriever := &MockRetriever{agg: sampleAggregate()}
	obs := &MockCacheObserver{}
	uc := usecases.NewArchiveConversationUseCase(cache, retriever, store, obs)

	// Act
	res, err := uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached || res.Location != "mem://C1-"+rootTS+".json" {
		t.Errorf("result = %+v", res)
	}
	data, ok := store.files["C1-"+rootTS+".json"]
	if !ok {
		t.Fatal("document was not saved")
	}
	var decoded domain.ComponentsAggregate
	if err := json.Unmarshal(data, &decoded); err != nil || decoded.FileName != res.Aggregate.FileName {
		t.Errorf("saved document = %s (%v)", data, err)
	}
	if len(cache.docs) != 1 || obs.misses != 1 {
		t.Errorf("cache entries %d, misses %d", len(cache.docs), obs.misses)
	}
}

func TestArchiveConversation_Hit_SkipsRetrieval(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	retriever := &MockRetriever{agg: sampleAggregate()}
	obs := &MockCacheObserver{}
	uc := usecases.NewArchiveConversationUseCase(cache, retriever, NewMockStore(), obs)
	_, _ = uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})

	// Act
	res, err := uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Cached || retriever.calls != 1 || obs.hits != 1 {
		t.Errorf("cached=%v calls=%d hits=%d", res.Cached, retriever.calls, obs.hits)
	}
}

func TestArchiveConversation_DifferentFlags_Miss(t *testing.T) {
	cache := NewMockCache()
	retriever := &MockRetriever{agg: sampleAggregate()}
	uc := usecases.NewArchiveConversationUseCase(cache, retriever, NewMockStore(), nil)

	_, _ = uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})
	_, _ = uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{FetchUsers: true})

	if retriever.calls != 2 {
		t.Errorf("retriever calls = %d, want 2", retriever.calls)
	}
}

func TestArchiveConversation_DifferentSession_Miss(t *testing.T) {
	// Arrange
	cache := NewMockCache()
	ownerDoc := sampleAggregate()
	retriever := &MockRetriever{agg: ownerDoc}
	obs := &MockCacheObserver{}
	uc := usecases.NewArchiveConversationUseCase(cache, retriever, NewMockStore(), obs)
	owner := domain.Credentials{Token: "xoxc-owner", Cookie: "xoxd-owner"}
	stranger := domain.Credentials{Token: "xoxc-stranger", Cookie: "xoxd-stranger"}
	_, _ = uc.Execute(context.Background(), owner, rootLink, domain.FeatureFlags{})
	strangerDoc := &domain.ComponentsAggregate{FileName: ownerDoc.FileName}
	retriever.agg = strangerDoc

	// Act
	res, err := uc.Execute(context.Background(), stranger, rootLink, domain.FeatureFlags{})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached || retriever.calls != 2 || obs.hits != 0 {
		t.Errorf("cached=%v calls=%d hits=%d", res.Cached, retriever.calls, obs.hits)
	}
	if res.Aggregate != strangerDoc {
		t.Error("second session received the first session's cached document")
	}
}

func TestArchiveConversation_RetrievalFails_NothingStored(t *testing.T) {
	cache := NewMockCache()
	store := NewMockStore()
	retriever := &MockRetriever{err: &domain.ResponseNotOkError{Method: "users.info"}}
	uc := usecases.NewArchiveConversationUseCase(cache, retriever, store, nil)

	_, err := uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})

	if !errors.Is(err, domain.ErrResponseNotOk) {
		t.Errorf("expected ErrResponseNotOk, got %v", err)
	}
	if len(store.files) != 0 || len(cache.docs) != 0 {
		t.Error("nothing should be stored or cached after a failure")
	}
}

func TestArchiveConversation_SaveFails_NotCached(t *testing.T) {
	cache := NewMockCache()
	store := NewMockStore()
	store.saveErr = errors.New("read-only file system")
	uc := usecases.NewArchiveConversationUseCase(cache, &MockRetriever{agg: sampleAggregate()}, store, nil)

	_, err := uc.Execute(context.Background(), validCreds, rootLink, domain.FeatureFlags{})

	if err == nil {
		t.Fatal("expected an error")
	}
	if len(cache.docs) != 0 {
		t.Error("failed save should not be cached")
	}
}

func TestArchiveConversation_InvalidCredentials_NoCacheLookup(t *testing.T) {
	obs := &MockCacheObserver{}
	uc := usecases.NewArchiveConversationUseCase(NewMockCache(), &MockRetriever{}, NewMockStore(), obs)

	_, err := uc.Execute(context.Background(), domain.Credentials{}, rootLink, domain.FeatureFlags{})

	if !errors.Is(err, domain.ErrInvalidAPIToken) {
		t.Errorf("expected ErrInvalidAPIToken, got %v", err)
	}
	if obs.hits+obs.misses != 0 {
		t.Error("cache should not be consulted")
	}
}

func TestCacheKey_IncludesFlags(t *testing.T) {
	p := domain.Permalink{ChannelID: "C1", TS: rootTS}

	a := usecases.CacheKey(p, domain.FeatureFlags{}, validCreds)
	b := usecases.CacheKey(p, domain.FeatureFlags{FetchTeam: true}, validCreds)

	if a == b {
		t.Errorf("keys should differ: %q", a)
	}
}

func TestCacheKey_IncludesSession(t *testing.T) {
	p := domain.Permalink{ChannelID: "C1", TS: rootTS}
	tests := []struct {
		name  string
		other domain.Credentials
	}{
		{"different token", domain.Credentials{Token: "xoxc-2", Cookie: validCreds.Cookie}},
		{"different cookie", domain.Credentials{Token: validCreds.Token, Cookie: "xoxd-2"}},
		{"shifted boundary", domain.Credentials{Token: "xoxc-1x", Cookie: "oxd-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := usecases.CacheKey(p, domain.FeatureFlags{}, validCreds)
			b := usecases.CacheKey(p, domain.FeatureFlags{}, tt.other)

			if a == b {
				t.Errorf("keys should differ: %q", a)
			}
		})
	}

	if usecases.CacheKey(p, domain.FeatureFlags{}, validCreds) != usecases.CacheKey(p, domain.FeatureFlags{}, validCreds) {
		t.Error("same session should produce the same key")
	}
}
