package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// TokenBlacklist 已登出会话的存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	// Login 校验共享密码，签发会话令牌，并初始化会话所在周
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type authService struct {
	store     *Store
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例；blacklist 可为 nil（登出仅由客户端丢弃令牌）
func NewAuthService(
	store *Store,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authService{
		store:     store,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	week := attendance.WeekKey(s.now())

	// 1. 校验密码并初始化本周网格（同一把锁内完成）
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		if !st.Gate.Verify(req.Password) {
			return false, attendance.ErrAuth
		}
		return st.Ledger.EnsureWeekInitialized(week), nil
	})
	if err == nil || errors.Is(err, attendance.ErrAuth) {
		s.metrics.LoginAttempt(err == nil)
	}
	if err != nil {
		return nil, err
	}

	// 2. 签发会话令牌
	token, _, err := s.jwtMgr.GenerateSessionToken(week)
	if err != nil {
		s.logger.Error("生成会话令牌失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理员登录", zap.String("week", week))

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		WeekKey:     week,
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("写入会话黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		if err := st.Gate.Change(req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
			return false, err
		}
		return true, nil
	})
	if err == nil {
		s.logger.Info("管理员密码已修改")
	}
	return err
}
