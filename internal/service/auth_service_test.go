package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

func setupTestAuthService(t *testing.T) (*authService, *mockDocumentRepo, *mockBlacklist) {
	t.Helper()
	repo := newMockDocumentRepo()
	store := newTestStore(t, repo)
	bl := newMockBlacklist()
	svc := NewAuthService(store, newTestJWT(), bl, metrics.New(), zap.NewNop()).(*authService)
	// 2026-10-15 是周四
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return svc, repo, bl
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Password: attendance.DefaultSecret})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.WeekKey != "2026-10-12" {
		t.Errorf("期望会话周为周一 2026-10-12，实际=%s", resp.WeekKey)
	}
	if resp.AccessToken == "" || resp.ExpiresIn != 3600 {
		t.Errorf("令牌响应错误: %+v", resp)
	}

	claims, err := svc.jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("令牌应可解析: %v", err)
	}
	if claims.WeekKey != "2026-10-12" {
		t.Errorf("令牌中的周键错误: %s", claims.WeekKey)
	}

	// 登录会初始化本周并持久化
	if _, ok := repo.stored(t).Presences["2026-10-12"]; !ok {
		t.Error("登录后本周应已初始化并保存")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService(t)
	saves := repo.saves

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "admin124"})
	if !errors.Is(err, attendance.ErrAuth) {
		t.Errorf("期望 ErrAuth，实际: %v", err)
	}
	if repo.saves != saves {
		t.Error("密码错误时不应初始化或保存")
	}
}

func TestAuthService_Login_SecondLoginKeepsWeek(t *testing.T) {
	svc, repo, _ := setupTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret}); err != nil {
		t.Fatal(err)
	}
	saves := repo.saves
	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret}); err != nil {
		t.Fatal(err)
	}
	if repo.saves != saves {
		t.Error("本周已初始化，第二次登录不应再保存")
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, bl := setupTestAuthService(t)
	ctx := context.Background()

	resp, _ := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret})
	claims, _ := svc.jwtMgr.ParseToken(resp.AccessToken)

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	if ok, _ := bl.IsBlacklisted(ctx, claims.ID); !ok {
		t.Error("登出后会话应进入黑名单")
	}
	if bl.revoked[claims.ID] <= 0 {
		t.Error("黑名单 TTL 应为令牌剩余有效期")
	}
}

func TestAuthService_Logout_NoBlacklist(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	svc.blacklist = nil
	if err := svc.Logout(context.Background(), nil); err != nil {
		t.Errorf("未配置黑名单时应直接成功: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, &dto.ChangePasswordRequest{
		OldPassword: attendance.DefaultSecret, NewPassword: "s3cret", ConfirmPassword: "s3cret",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}
	if repo.stored(t).PasswordHash == attendance.DefaultSecretHash() {
		t.Error("新摘要应已保存")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: "s3cret"}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret}); !errors.Is(err, attendance.ErrAuth) {
		t.Error("旧密码不应再可登录")
	}
}

func TestAuthService_ChangePassword_Rejections(t *testing.T) {
	svc, repo, _ := setupTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.ChangePasswordRequest
		want error
	}{
		{"旧密码错误", dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "abcd", ConfirmPassword: "abcd"}, attendance.ErrAuth},
		{"两次不一致", dto.ChangePasswordRequest{OldPassword: attendance.DefaultSecret, NewPassword: "abcd", ConfirmPassword: "abce"}, attendance.ErrValidation},
		{"长度不足", dto.ChangePasswordRequest{OldPassword: attendance.DefaultSecret, NewPassword: "abc", ConfirmPassword: "abc"}, attendance.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if err := svc.ChangePassword(ctx, &req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
			if repo.stored(t).PasswordHash != attendance.DefaultSecretHash() {
				t.Error("被拒绝的修改不应改变摘要")
			}
		})
	}
}

// loginCount 读取 presence_logins_total{result=...}
func loginCount(t *testing.T, m *metrics.Metrics, result string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather 失败: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "presence_logins_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "result" && l.GetValue() == result {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestAuthService_Login_SaveFailureNotCountedAsAttempt(t *testing.T) {
	repo := newMockDocumentRepo()
	store := newTestStore(t, repo)
	m := metrics.New()
	svc := NewAuthService(store, newTestJWT(), nil, m, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	repo.failSave = true
	_, err := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret})
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("期望 ErrPersist，实际: %v", err)
	}
	if got := loginCount(t, m, "failure") + loginCount(t, m, "success"); got != 0 {
		t.Errorf("保存失败不应计入登录次数，实际 %v", got)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Password: "mauvais"})
	if !errors.Is(err, attendance.ErrAuth) {
		t.Fatalf("期望 ErrAuth，实际: %v", err)
	}
	if got := loginCount(t, m, "failure"); got != 1 {
		t.Errorf("密码错误应计 1 次失败，实际 %v", got)
	}

	repo.failSave = false
	if _, err := svc.Login(ctx, &dto.LoginRequest{Password: attendance.DefaultSecret}); err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if got := loginCount(t, m, "success"); got != 1 {
		t.Errorf("期望 1 次成功，实际 %v", got)
	}
}
