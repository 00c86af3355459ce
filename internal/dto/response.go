package dto

import "github.com/hach2pro/app-letp/internal/attendance"

// ── 认证模块响应 ──

// TokenResponse 会话令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
	WeekKey     string `json:"week_key"`   // 本次会话对应的考勤周
}

// ── 课表与教师 ──

// TeacherResponse 教师信息
type TeacherResponse struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Defined bool   `json:"defined"`
}

// NewTeacherResponse 由 TeacherInfo 构造
func NewTeacherResponse(t attendance.TeacherInfo) TeacherResponse {
	return TeacherResponse{ID: t.ID, Name: t.Name, Phone: t.Contact, Defined: t.Defined()}
}

// SessionResponse 课表中的一节课
type SessionResponse struct {
	Subject string          `json:"subject"`
	Teacher TeacherResponse `json:"teacher"`
}

// DayScheduleResponse 某个工作日的课程
type DayScheduleResponse struct {
	Weekday  string            `json:"weekday"`
	Sessions []SessionResponse `json:"sessions"`
}

// TeacherScheduleResponse 按教师归并的课程
type TeacherScheduleResponse struct {
	Teacher  TeacherResponse     `json:"teacher"`
	Sessions []TeacherSessionRef `json:"sessions"`
}

// TeacherSessionRef 教师负责的一节课
type TeacherSessionRef struct {
	Weekday string `json:"weekday"`
	Subject string `json:"subject"`
}

// SubjectTeacherResponse 科目与当前教师
type SubjectTeacherResponse struct {
	Subject string          `json:"subject"`
	Teacher TeacherResponse `json:"teacher"`
}

// ── 考勤 ──

// StudentMark 单个学生的标记
type StudentMark struct {
	Student string `json:"student"`
	Mark    string `json:"mark"`
	Label   string `json:"label"`
}

// SessionSheetResponse 某周某节课的考勤表
type SessionSheetResponse struct {
	WeekKey string          `json:"week_key"`
	Weekday string          `json:"weekday"`
	Subject string          `json:"subject"`
	Teacher TeacherResponse `json:"teacher"`
	Marks   []StudentMark   `json:"marks"`
}

// SessionRecapResponse 记录一节课后的汇总
type SessionRecapResponse struct {
	WeekKey       string          `json:"week_key"`
	Weekday       string          `json:"weekday"`
	Subject       string          `json:"subject"`
	Teacher       TeacherResponse `json:"teacher"`
	Present       int             `json:"present"`
	Absent        int             `json:"absent"`
	OccupancyRate float64         `json:"occupancy_rate"`
}

// SheetRowResponse 学生周考勤表中的一行
type SheetRowResponse struct {
	Weekday string          `json:"weekday"`
	Subject string          `json:"subject"`
	Teacher TeacherResponse `json:"teacher"`
	Mark    string          `json:"mark"`
	Label   string          `json:"label"`
}

// StudentSheetResponse 学生周考勤表
type StudentSheetResponse struct {
	WeekKey string             `json:"week_key"`
	Student string             `json:"student"`
	Rows    []SheetRowResponse `json:"rows"`
}

// SyncResponse 名单同步结果
type SyncResponse struct {
	WeekKey string `json:"week_key"`
	Added   int    `json:"added"`
}

// ── 统计 ──

// StudentStatResponse 学生统计
type StudentStatResponse struct {
	Student      string  `json:"student"`
	PresentHours int     `json:"present_hours"`
	AbsentHours  int     `json:"absent_hours"`
	PresenceRate float64 `json:"presence_rate"`
}

// SubjectStatResponse 科目统计
type SubjectStatResponse struct {
	Weekday       string          `json:"weekday"`
	Subject       string          `json:"subject"`
	Teacher       TeacherResponse `json:"teacher"`
	Present       int             `json:"present"`
	Absent        int             `json:"absent"`
	Rate          float64         `json:"rate"`
	OccupancyRate float64         `json:"occupancy_rate"`
}

// TeacherStatResponse 教师统计
type TeacherStatResponse struct {
	Teacher  TeacherResponse `json:"teacher"`
	Subjects []string        `json:"subjects"`
	Present  int             `json:"present"`
	Absent   int             `json:"absent"`
	Rate     float64         `json:"rate"`
}

// OverviewResponse 仪表盘
type OverviewResponse struct {
	WeekKey         string   `json:"week_key"`
	Sessions        int      `json:"sessions"`
	Students        int      `json:"students"`
	HoursPerSession int      `json:"hours_per_session"`
	WeeklyHours     int      `json:"weekly_hours"`
	Teachers        int      `json:"teachers"`
	Weeks           []string `json:"weeks"`
}
