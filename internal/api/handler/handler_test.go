package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/internal/service"
	pkgerrors "github.com/hach2pro/app-letp/pkg/errors"
	"github.com/hach2pro/app-letp/pkg/jwt"
	"github.com/hach2pro/app-letp/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	logoutErr     error
	loggedOut     string
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.loggedOut = claims.ID
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	gotWeek      string
	gotPresent   []string
	gotMark      string
	sheet        *dto.SessionSheetResponse
	recap        *dto.SessionRecapResponse
	studentSheet *dto.StudentSheetResponse
	sync         *dto.SyncResponse
	err          error
}

func (m *mockAttendanceService) GetSession(_ context.Context, week, _, _ string) (*dto.SessionSheetResponse, error) {
	m.gotWeek = week
	return m.sheet, m.err
}
func (m *mockAttendanceService) RecordSession(_ context.Context, week, _, _ string, present []string) (*dto.SessionRecapResponse, error) {
	m.gotWeek, m.gotPresent = week, present
	return m.recap, m.err
}
func (m *mockAttendanceService) SetMark(_ context.Context, week, _, _, _, mark string) error {
	m.gotWeek, m.gotMark = week, mark
	return m.err
}
func (m *mockAttendanceService) StudentSheet(_ context.Context, week, _ string) (*dto.StudentSheetResponse, error) {
	m.gotWeek = week
	return m.studentSheet, m.err
}
func (m *mockAttendanceService) ResetWeek(_ context.Context, week, _ string) error {
	m.gotWeek = week
	return m.err
}
func (m *mockAttendanceService) SyncWeek(_ context.Context, week string) (*dto.SyncResponse, error) {
	m.gotWeek = week
	return m.sync, m.err
}

// ── Mock RosterService ──

type mockRosterService struct {
	names []string
	err   error
}

func (m *mockRosterService) List(_ context.Context) []string { return m.names }
func (m *mockRosterService) Replace(_ context.Context, req *dto.ReplaceRosterRequest) ([]string, error) {
	return req.Students, m.err
}

// ── Mock TeacherService ──

type mockTeacherService struct {
	err error
}

func (m *mockTeacherService) List(_ context.Context) []dto.SubjectTeacherResponse { return nil }
func (m *mockTeacherService) Update(_ context.Context, subject string, req *dto.UpdateTeacherRequest) (*dto.SubjectTeacherResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.SubjectTeacherResponse{Subject: subject, Teacher: dto.TeacherResponse{Name: req.Name, Phone: req.Phone}}, nil
}

// ── Mock StatsService ──

type mockStatsService struct {
	gotWeek string
	err     error
}

func (m *mockStatsService) Students(_ context.Context, week string) ([]dto.StudentStatResponse, error) {
	m.gotWeek = week
	return []dto.StudentStatResponse{{Student: "Alice", PresentHours: 3, PresenceRate: 100}}, m.err
}
func (m *mockStatsService) Subjects(_ context.Context, week string) ([]dto.SubjectStatResponse, error) {
	m.gotWeek = week
	return nil, m.err
}
func (m *mockStatsService) Teachers(_ context.Context, week string) ([]dto.TeacherStatResponse, error) {
	m.gotWeek = week
	return nil, m.err
}
func (m *mockStatsService) Overview(_ context.Context, week string) *dto.OverviewResponse {
	m.gotWeek = week
	return &dto.OverviewResponse{WeekKey: week, Sessions: 15}
}

// ── Mock Export / Schedule ──

type mockExportService struct {
	err error
}

func (m *mockExportService) ExportStats(_ context.Context, week string) (*bytes.Buffer, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBufferString("xlsx"), "statistiques_" + week + ".xlsx", nil
}

type mockScheduleService struct{}

func (m *mockScheduleService) ByDay(_ context.Context) []dto.DayScheduleResponse {
	return []dto.DayScheduleResponse{{Weekday: "Lundi"}}
}
func (m *mockScheduleService) ByTeacher(_ context.Context) []dto.TeacherScheduleResponse { return nil }
func (m *mockScheduleService) ExportICS(_ context.Context, week string) ([]byte, string, error) {
	return []byte("BEGIN:VCALENDAR"), "emploi_du_temps_" + week + ".ics", nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

const sessionWeek = "2026-10-12"

// withSession 模拟 JWTAuth 中间件注入的会话
func withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxClaims, &jwt.Claims{
			WeekKey:   sessionWeek,
			TokenType: "access",
			RegisteredClaims: jwtv5.RegisteredClaims{
				ID:        "test-jti",
				ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(15 * time.Minute)),
			},
		})
		c.Set(CtxWeekKey, sessionWeek)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "test-access-token", ExpiresIn: 900, WeekKey: sessionWeek},
	}
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(mock).Login)

	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Password: "admin123"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["week_key"] != sessionWeek {
		t.Errorf("expected week_key %s, got %v", sessionWeek, data["week_key"])
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(&mockAuthService{}).Login)

	w := serve(r, "POST", "/auth/login", strings.NewReader("invalid json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(&mockAuthService{loginErr: attendance.ErrAuth}).Login)

	w := serve(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{Password: "wrong"}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11002 {
		t.Errorf("expected code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	r := gin.New()
	r.POST("/auth/logout", withSession(), NewAuthHandler(mock).Logout)

	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.loggedOut != "test-jti" {
		t.Errorf("expected jti test-jti, got %q", mock.loggedOut)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.POST("/auth/logout", NewAuthHandler(&mockAuthService{}).Logout)

	w := serve(r, "POST", "/auth/logout", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_Validation(t *testing.T) {
	mock := &mockAuthService{changePassErr: &attendance.ValidationError{Field: "new_password", Reason: "too short"}}
	r := gin.New()
	r.PUT("/auth/password", withSession(), NewAuthHandler(mock).ChangePassword)

	w := serve(r, "PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "admin123", NewPassword: "abc", ConfirmPassword: "abc",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
	details, _ := resp.Details.(map[string]interface{})
	if details["field"] != "new_password" {
		t.Errorf("expected details.field new_password, got %v", resp.Details)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func newAttendanceRouter(mock *mockAttendanceService) *gin.Engine {
	h := NewAttendanceHandler(mock)
	r := gin.New()
	g := r.Group("/attendance", withSession())
	g.GET("/students/:student", h.StudentSheet)
	g.POST("/reset", h.ResetWeek)
	g.POST("/sync", h.SyncWeek)
	g.GET("/:day/:subject", h.GetSession)
	g.PUT("/:day/:subject", h.RecordSession)
	g.PUT("/:day/:subject/:student", h.SetMark)
	return r
}

func TestAttendanceHandler_GetSession_UsesSessionWeek(t *testing.T) {
	mock := &mockAttendanceService{sheet: &dto.SessionSheetResponse{WeekKey: sessionWeek}}
	w := serve(newAttendanceRouter(mock), "GET", "/attendance/Lundi/Math%C3%A9matiques", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotWeek != sessionWeek {
		t.Errorf("expected week %s, got %s", sessionWeek, mock.gotWeek)
	}
}

func TestAttendanceHandler_GetSession_WeekQuery(t *testing.T) {
	mock := &mockAttendanceService{sheet: &dto.SessionSheetResponse{}}
	w := serve(newAttendanceRouter(mock), "GET", "/attendance/Lundi/EPS?week=2026-09-07", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotWeek != "2026-09-07" {
		t.Errorf("expected week 2026-09-07, got %s", mock.gotWeek)
	}
}

func TestAttendanceHandler_GetSession_BadWeekQuery(t *testing.T) {
	w := serve(newAttendanceRouter(&mockAttendanceService{}), "GET", "/attendance/Lundi/EPS?week=last", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_GetSession_NotInitialized(t *testing.T) {
	mock := &mockAttendanceService{err: &attendance.NotInitializedError{Week: "2020-01-06"}}
	w := serve(newAttendanceRouter(mock), "GET", "/attendance/Lundi/EPS?week=2020-01-06", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12003 {
		t.Errorf("expected code 12003, got %d", resp.Code)
	}
}

func TestAttendanceHandler_RecordSession(t *testing.T) {
	mock := &mockAttendanceService{recap: &dto.SessionRecapResponse{Present: 1, Absent: 1, OccupancyRate: 50}}
	w := serve(newAttendanceRouter(mock), "PUT", "/attendance/Lundi/EPS",
		jsonBody(dto.RecordSessionRequest{Present: []string{"Alice"}}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mock.gotPresent) != 1 || mock.gotPresent[0] != "Alice" {
		t.Errorf("expected present [Alice], got %v", mock.gotPresent)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if data["occupancy_rate"] != 50.0 {
		t.Errorf("expected occupancy_rate 50, got %v", data["occupancy_rate"])
	}
}

func TestAttendanceHandler_SetMark(t *testing.T) {
	mock := &mockAttendanceService{}
	w := serve(newAttendanceRouter(mock), "PUT", "/attendance/Lundi/EPS/Alice", jsonBody(dto.SetMarkRequest{Mark: "no"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotMark != "no" {
		t.Errorf("expected mark no, got %q", mock.gotMark)
	}
}

func TestAttendanceHandler_ResetWeek_MissingConfirmation(t *testing.T) {
	w := serve(newAttendanceRouter(&mockAttendanceService{}), "POST", "/attendance/reset", jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_SyncWeek_SaveFailure(t *testing.T) {
	mock := &mockAttendanceService{err: fmt.Errorf("%w: disk full", service.ErrPersist)}
	w := serve(newAttendanceRouter(mock), "POST", "/attendance/sync", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12004 {
		t.Errorf("expected code 12004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Roster / Teacher Tests
// ═══════════════════════════════════════════════════════════

func TestRosterHandler_Replace_WrongPassword(t *testing.T) {
	r := gin.New()
	r.PUT("/students", withSession(), NewRosterHandler(&mockRosterService{err: attendance.ErrAuth}).Replace)

	w := serve(r, "PUT", "/students", jsonBody(dto.ReplaceRosterRequest{Password: "x", Students: []string{"A"}}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13002 {
		t.Errorf("expected code 13002, got %d", resp.Code)
	}
}

func TestRosterHandler_Replace_MissingPassword(t *testing.T) {
	r := gin.New()
	r.PUT("/students", withSession(), NewRosterHandler(&mockRosterService{}).Replace)

	w := serve(r, "PUT", "/students", jsonBody(map[string]interface{}{"students": []string{"A"}}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTeacherHandler_Update(t *testing.T) {
	r := gin.New()
	r.PUT("/teachers/:subject", withSession(), NewTeacherHandler(&mockTeacherService{}).Update)

	w := serve(r, "PUT", "/teachers/EPS", jsonBody(dto.UpdateTeacherRequest{
		Password: "admin123", Name: "Mme. Roux", Phone: "06",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if data["subject"] != "EPS" {
		t.Errorf("expected subject EPS, got %v", data["subject"])
	}
}

func TestTeacherHandler_Update_Conflict(t *testing.T) {
	r := gin.New()
	r.PUT("/teachers/:subject", withSession(), NewTeacherHandler(&mockTeacherService{err: pkgerrors.ErrOptimisticLock}).Update)

	w := serve(r, "PUT", "/teachers/EPS", jsonBody(dto.UpdateTeacherRequest{
		Password: "admin123", Name: "Mme. Roux", Phone: "06",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Stats / Export Tests
// ═══════════════════════════════════════════════════════════

func TestStatsHandler_Students(t *testing.T) {
	mock := &mockStatsService{}
	r := gin.New()
	r.GET("/stats/students", withSession(), NewStatsHandler(mock).Students)

	w := serve(r, "GET", "/stats/students", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, _ := parseResponse(w).Data.([]interface{})
	if len(list) != 1 {
		t.Errorf("expected 1 row, got %d", len(list))
	}
}

func TestStatsHandler_Teachers_NotInitialized(t *testing.T) {
	mock := &mockStatsService{err: &attendance.NotInitializedError{Week: sessionWeek}}
	r := gin.New()
	r.GET("/stats/teachers", withSession(), NewStatsHandler(mock).Teachers)

	w := serve(r, "GET", "/stats/teachers", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15003 {
		t.Errorf("expected code 15003, got %d", resp.Code)
	}
}

func TestExportHandler_ExportStats(t *testing.T) {
	r := gin.New()
	r.GET("/export/stats", withSession(), NewExportHandler(&mockExportService{}, &mockScheduleService{}).ExportStats)

	w := serve(r, "GET", "/export/stats", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("unexpected content type %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "statistiques_2026-10-12.xlsx") {
		t.Errorf("unexpected content disposition %s", cd)
	}
}

func TestExportHandler_ExportSchedule(t *testing.T) {
	r := gin.New()
	r.GET("/export/schedule.ics", withSession(), NewExportHandler(&mockExportService{}, &mockScheduleService{}).ExportSchedule)

	w := serve(r, "GET", "/export/schedule.ics?week=2026-10-19", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "2026-10-19") {
		t.Errorf("week query should be used, got %s", cd)
	}
}

func TestExportHandler_ExportStats_Unknown(t *testing.T) {
	r := gin.New()
	r.GET("/export/stats", withSession(), NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail}, &mockScheduleService{}).ExportStats)

	w := serve(r, "GET", "/export/stats", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
