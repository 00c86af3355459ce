package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/config"
	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/model"
	"github.com/hach2pro/app-letp/internal/repository"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// ── Mock DocumentRepository ──

var errMockSave = errors.New("mock: 磁盘已满")

type mockDocumentRepo struct {
	mu       sync.Mutex
	doc      *model.PresenceDocument
	saves    int
	failSave bool
	loadErr  error
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{}
}

// seeded 预置一份文档载荷
func seededMockDocumentRepo(payload string) *mockDocumentRepo {
	return &mockDocumentRepo{doc: &model.PresenceDocument{Singleton: true, Payload: []byte(payload), Version: 1}}
}

func (m *mockDocumentRepo) Load(_ context.Context) (*model.PresenceDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.doc == nil {
		return nil, repository.ErrDocumentNotFound
	}
	cp := *m.doc
	return &cp, nil
}

func (m *mockDocumentRepo) Save(_ context.Context, doc *model.PresenceDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errMockSave
	}
	doc.Singleton = true
	doc.Version++
	cp := *doc
	m.doc = &cp
	m.saves++
	return nil
}

// stored 解码最近一次保存的文档
func (m *mockDocumentRepo) stored(t *testing.T) attendance.Document {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		t.Fatal("尚未保存任何文档")
	}
	doc, _ := attendance.DecodeDocument(attendance.DefaultCatalog(), m.doc.Payload)
	return doc
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试辅助 ──

const testWeek = "2026-10-12"

func newTestStore(t *testing.T, repo *mockDocumentRepo) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), repo, attendance.DefaultCatalog(),
		attendance.SHA256Hasher{}, metrics.New(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore 失败: %v", err)
	}
	return store
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: time.Hour,
	})
}

// aliceBobRepo 两名学生、已初始化 testWeek 的文档
func aliceBobRepo() *mockDocumentRepo {
	return seededMockDocumentRepo(`{"students":["Alice","Bob"]}`)
}

func initWeek(t *testing.T, store *Store, week string) {
	t.Helper()
	err := store.Update(context.Background(), func(st *attendance.State) (bool, error) {
		return st.Ledger.EnsureWeekInitialized(week), nil
	})
	if err != nil {
		t.Fatalf("初始化周失败: %v", err)
	}
}
