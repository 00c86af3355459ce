package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
)

// RosterService 学生名单业务接口
type RosterService interface {
	List(ctx context.Context) []string
	// Replace 整体替换名单；需要管理员密码。已初始化周不受影响。
	Replace(ctx context.Context, req *dto.ReplaceRosterRequest) ([]string, error)
}

type rosterService struct {
	store  *Store
	logger *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(store *Store, logger *zap.Logger) RosterService {
	return &rosterService{store: store, logger: logger}
}

func (s *rosterService) List(_ context.Context) []string {
	var names []string
	_ = s.store.View(func(st *attendance.State) error {
		names = st.Roster.Names()
		return nil
	})
	return names
}

func (s *rosterService) Replace(ctx context.Context, req *dto.ReplaceRosterRequest) ([]string, error) {
	// 去掉首尾空白与空行
	names := make([]string, 0, len(req.Students))
	for _, n := range req.Students {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	var out []string
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		if !st.Gate.Verify(req.Password) {
			return false, attendance.ErrAuth
		}
		if err := st.Roster.ReplaceAll(names); err != nil {
			return false, err
		}
		out = st.Roster.Names()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("学生名单已替换", zap.Int("students", len(out)))
	return out, nil
}
