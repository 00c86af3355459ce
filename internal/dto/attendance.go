package dto

// ── 考勤模块 DTO ──

// RecordSessionRequest 记录一整节课：列出的学生记为出席，其余记为缺席
type RecordSessionRequest struct {
	Present []string `json:"present"`
}

// SetMarkRequest 单个标记（yes | no | 空字符串）
type SetMarkRequest struct {
	Mark string `json:"mark"`
}

// ResetWeekRequest 清空本周考勤
type ResetWeekRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// WeekQuery 可选的 ?week=YYYY-MM-DD
type WeekQuery struct {
	Week string `form:"week"`
}

// ── 名单与教师 ──

// ReplaceRosterRequest 替换学生名单（需管理员密码）
type ReplaceRosterRequest struct {
	Password string   `json:"password" binding:"required"`
	Students []string `json:"students" binding:"required"`
}

// UpdateTeacherRequest 修改科目教师（需管理员密码）
type UpdateTeacherRequest struct {
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"     binding:"required"`
	Phone    string `json:"phone"    binding:"required"`
	ID       string `json:"id"`
}
