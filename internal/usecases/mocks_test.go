package usecases_test

import (
	"context"
	"sync"
	"time"

	"slack-archiver/internal/domain"
	"slack-archiver/internal/usecases"
)

// MockSlackAPI serves canned entities and records what was asked for.
type MockSlackAPI struct {
	mu sync.Mutex

	thread  []domain.Message
	channel *domain.Channel
	users   map[string]domain.User
	teams   map[string]domain.Team

	conversationErr error
	channelErr      error
	usersErr        error
	teamsErr        error

	calls   []string
	userIDs []string
	teamIDs []string
}

func (m *MockSlackAPI) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *MockSlackAPI) FetchConversation(ctx context.Context, channelID, ts, threadTS string) (domain.MessageAndThread, error) {
	m.record("conversation")
	if m.conversationErr != nil {
		return domain.MessageAndThread{}, m.conversationErr
	}
	return domain.NewMessageAndThread(m.thread, ts)
}

func (m *MockSlackAPI) FetchChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	m.record("channel")
	if m.channelErr != nil {
		return nil, m.channelErr
	}
	return m.channel, nil
}

func (m *MockSlackAPI) FetchUsers(ctx context.Context, ids []string) (map[string]domain.User, error) {
	m.record("users")
	m.userIDs = ids
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	out := map[string]domain.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *MockSlackAPI) FetchTeams(ctx context.Context, ids []string) (map[string]domain.Team, error) {
	m.record("teams")
	m.teamIDs = ids
	if m.teamsErr != nil {
		return nil, m.teamsErr
	}
	out := map[string]domain.Team{}
	for _, id := range ids {
		if t, ok := m.teams[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *MockSlackAPI) connect(domain.Credentials) usecases.SlackAPI { return m }

// MockRetrievalObserver records retrieval outcomes.
type MockRetrievalObserver struct {
	classes []string
}

func (o *MockRetrievalObserver) ObserveRetrieval(class string, _ time.Duration) {
	o.classes = append(o.classes, class)
}

// MockCache is an in-memory ConversationCache.
type MockCache struct {
	docs map[string]*domain.ComponentsAggregate
}

func NewMockCache() *MockCache {
	return &MockCache{docs: map[string]*domain.ComponentsAggregate{}}
}

func (c *MockCache) Get(key string) (*domain.ComponentsAggregate, bool) {
	agg, ok := c.docs[key]
	return agg, ok
}

func (c *MockCache) Set(key string, agg *domain.ComponentsAggregate) {
	c.docs[key] = agg
}

// MockStore keeps saved files in memory.
type MockStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func NewMockStore() *MockStore {
	return &MockStore{files: map[string][]byte{}}
}

func (s *MockStore) Save(ctx context.Context, name string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()
	return nil
}

func (s *MockStore) Location(name string) string { return "mem://" + name }

// MockRetriever returns a fixed document and counts calls.
type MockRetriever struct {
	agg   *domain.ComponentsAggregate
	err   error
	calls int
}

func (r *MockRetriever) Execute(ctx context.Context, creds domain.Credentials, permalink string, flags domain.FeatureFlags) (*domain.ComponentsAggregate, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.agg, nil
}

// MockCacheObserver counts cache hits and misses.
type MockCacheObserver struct {
	hits, misses int
}

func (o *MockCacheObserver) ObserveCacheLookup(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

var validCreds = domain.Credentials{Token: "xoxc-1", Cookie: "xoxd-1"}

const (
	rootLink  = "https://acme.slack.com/archives/C1/p1700000000000100"
	replyLink = "https://acme.slack.com/archives/C1/p1700000050000200?thread_ts=1700000000.000100"
	rootTS    = "1700000000.000100"
	replyTS   = "1700000050.000200"
)

// twoMessageThread is a root by U1 reacted to by U1 and U3, and a reply by U2.
func twoMessageThread() []domain.Message {
	return []domain.Message{
		{Type: "message", User: "U1", TS: rootTS, Text: "root", Reactions: []domain.Reaction{
			{Name: "eyes", Users: []string{"U1", "U3"}, Count: 2},
		}},
		{Type: "message", User: "U2", TS: replyTS, ThreadTS: rootTS, Text: "reply", Files: []domain.File{
			{ID: "F1", UserTeam: "T1", URLPrivate: "https://files.slack.com/files-pri/T1-F1/a.png"},
		}},
	}
}

func usersWithTeams() map[string]domain.User {
	return map[string]domain.User{
		"U1": {ID: "U1", TeamID: "T1", Name: "one"},
		"U2": {ID: "U2", TeamID: "T2", Name: "two"},
		"U3": {ID: "U3", TeamID: "T1", Name: "three"},
		"U9": {ID: "U9", TeamID: "T1", Name: "nine"},
	}
}

func teams() map[string]domain.Team {
	return map[string]domain.Team{
		"T1": {ID: "T1", Name: "Acme"},
		"T2": {ID: "T2", Name: "Partner"},
	}
}
