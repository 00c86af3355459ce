package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/model"
	"github.com/hach2pro/app-letp/internal/repository"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// ErrPersist 考勤文档写入失败，内存状态已回滚
var ErrPersist = errors.New("保存考勤数据失败")

// Store 持有进程内唯一的考勤状态。
// 所有读写都在同一把锁下进行；修改成功后整份文档覆盖写回存储，
// 写回失败时恢复到修改前的快照，内存与存储不会分叉。
type Store struct {
	mu      sync.Mutex
	repo    repository.DocumentRepository
	catalog *attendance.Catalog
	hasher  attendance.Hasher
	metrics *metrics.Metrics
	logger  *zap.Logger

	state  *attendance.State
	record *model.PresenceDocument
}

// NewStore 从存储加载考勤文档。首次运行时写入默认文档。
func NewStore(
	ctx context.Context,
	repo repository.DocumentRepository,
	catalog *attendance.Catalog,
	hasher attendance.Hasher,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*Store, error) {
	s := &Store{
		repo:    repo,
		catalog: catalog,
		hasher:  hasher,
		metrics: m,
		logger:  logger,
	}

	rec, err := repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		logger.Info("未找到考勤文档，写入默认数据")
		s.state = attendance.NewState(catalog, hasher)
		s.record = &model.PresenceDocument{}
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("加载考勤文档失败: %w", err)
	}

	doc, warnings := attendance.DecodeDocument(catalog, rec.Payload)
	for _, w := range warnings {
		logger.Warn("考勤文档字段损坏，已使用默认值",
			zap.String("field", w.Field),
			zap.String("reason", w.Reason),
		)
	}
	s.state = attendance.LoadFrom(catalog, doc, hasher)
	s.record = rec

	logger.Info("考勤文档已加载",
		zap.Int("students", s.state.Roster.Len()),
		zap.Int("weeks", len(s.state.Ledger.Weeks())),
		zap.Int("version", rec.Version),
	)
	return s, nil
}

// Catalog 课表（不可变，无需加锁）
func (s *Store) Catalog() *attendance.Catalog { return s.catalog }

// View 在锁内只读访问状态
func (s *Store) View(fn func(st *attendance.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Update 在锁内修改状态。fn 返回 changed=false 时不写回存储；
// fn 出错或写回失败时状态恢复到调用前。
func (s *Store) Update(ctx context.Context, fn func(st *attendance.State) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.Snapshot()
	changed, err := fn(s.state)
	if err != nil {
		s.restore(before)
		return err
	}
	if !changed {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

// Snapshot 当前文档的副本
func (s *Store) Snapshot() attendance.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

func (s *Store) restore(doc attendance.Document) {
	s.state = attendance.LoadFrom(s.catalog, doc, s.hasher)
}

// persist 调用方须持有锁
func (s *Store) persist(ctx context.Context) error {
	payload, err := attendance.EncodeDocument(s.state.Snapshot())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	rec := *s.record
	rec.Payload = payload
	if err := s.repo.Save(ctx, &rec); err != nil {
		s.metrics.SaveFailed()
		s.logger.Error("写入考勤文档失败", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.record = &rec
	return nil
}

// NewHasher 按配置选择密码摘要方案
func NewHasher(scheme string, bcryptCost int) attendance.Hasher {
	if scheme == "bcrypt" {
		return attendance.BcryptHasher{Cost: bcryptCost}
	}
	return attendance.SHA256Hasher{}
}
