package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
	"github.com/hach2pro/app-letp/pkg/metrics"
)

// ResetConfirmation 清空一周考勤前必须原样输入的确认短语
const ResetConfirmation = "CONFIRMER"

// AttendanceService 考勤记录业务接口
type AttendanceService interface {
	// GetSession 某周某节课的考勤表（按当前名单列出）
	GetSession(ctx context.Context, week, day, subject string) (*dto.SessionSheetResponse, error)
	// RecordSession 列出的学生记为出席，名单中其余学生记为缺席
	RecordSession(ctx context.Context, week, day, subject string, present []string) (*dto.SessionRecapResponse, error)
	SetMark(ctx context.Context, week, day, subject, student, mark string) error
	StudentSheet(ctx context.Context, week, student string) (*dto.StudentSheetResponse, error)
	ResetWeek(ctx context.Context, week, confirmation string) error
	// SyncWeek 为已初始化周补齐名单中新增的学生
	SyncWeek(ctx context.Context, week string) (*dto.SyncResponse, error)
}

type attendanceService struct {
	store   *Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(store *Store, m *metrics.Metrics, logger *zap.Logger) AttendanceService {
	return &attendanceService{store: store, metrics: m, logger: logger}
}

// checkSession 工作日与科目必须在课表中
func checkSession(catalog *attendance.Catalog, day, subject string) error {
	if !catalog.IsWeekday(day) {
		return &attendance.ValidationError{Field: "day", Reason: "未知的工作日 " + day}
	}
	if !catalog.Scheduled(day, subject) {
		return &attendance.ValidationError{Field: "subject", Reason: day + " 没有科目 " + subject}
	}
	return nil
}

func checkStudent(st *attendance.State, student string) error {
	if !st.Roster.Contains(student) {
		return &attendance.ValidationError{Field: "student", Reason: "名单中没有学生 " + student}
	}
	return nil
}

func (s *attendanceService) GetSession(_ context.Context, week, day, subject string) (*dto.SessionSheetResponse, error) {
	if err := checkSession(s.store.Catalog(), day, subject); err != nil {
		return nil, err
	}

	var resp *dto.SessionSheetResponse
	err := s.store.View(func(st *attendance.State) error {
		if !st.Ledger.HasWeek(week) {
			return &attendance.NotInitializedError{Week: week}
		}
		resp = &dto.SessionSheetResponse{
			WeekKey: week,
			Weekday: day,
			Subject: subject,
			Teacher: dto.NewTeacherResponse(st.Directory.Resolve(subject)),
			Marks:   make([]dto.StudentMark, 0, st.Roster.Len()),
		}
		for _, name := range st.Roster.Names() {
			m := st.Ledger.GetMark(week, day, subject, name)
			resp.Marks = append(resp.Marks, dto.StudentMark{Student: name, Mark: string(m), Label: m.Label()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *attendanceService) RecordSession(ctx context.Context, week, day, subject string, present []string) (*dto.SessionRecapResponse, error) {
	if err := checkSession(s.store.Catalog(), day, subject); err != nil {
		return nil, err
	}

	var recap *dto.SessionRecapResponse
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		marked := make(map[string]bool, len(present))
		for _, name := range present {
			name = strings.TrimSpace(name)
			if err := checkStudent(st, name); err != nil {
				return false, err
			}
			marked[name] = true
		}

		st.Ledger.EnsureWeekInitialized(week)
		for _, name := range st.Roster.Names() {
			mark := attendance.Absent
			if marked[name] {
				mark = attendance.Present
			}
			if err := st.Ledger.SetMark(week, day, subject, name, mark); err != nil {
				return false, err
			}
		}

		rows, err := st.Stats.SubjectStats(week)
		if err != nil {
			return false, err
		}
		for _, row := range rows {
			if row.Weekday == day && row.Subject == subject {
				recap = &dto.SessionRecapResponse{
					WeekKey:       week,
					Weekday:       day,
					Subject:       subject,
					Teacher:       dto.NewTeacherResponse(row.Teacher),
					Present:       row.Present,
					Absent:        row.Absent,
					OccupancyRate: row.OccupancyRate,
				}
				break
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.MarkRecorded(string(attendance.Present), recap.Present)
	s.metrics.MarkRecorded(string(attendance.Absent), recap.Absent)
	s.logger.Info("已记录课程考勤",
		zap.String("week", week),
		zap.String("day", day),
		zap.String("subject", subject),
		zap.Int("present", recap.Present),
		zap.Int("absent", recap.Absent),
	)
	return recap, nil
}

func (s *attendanceService) SetMark(ctx context.Context, week, day, subject, student, raw string) error {
	if err := checkSession(s.store.Catalog(), day, subject); err != nil {
		return err
	}
	mark, err := attendance.ParseMark(raw)
	if err != nil {
		return err
	}

	err = s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		if err := checkStudent(st, student); err != nil {
			return false, err
		}
		// 新建的周即使标记未变也要写回
		created := st.Ledger.EnsureWeekInitialized(week)
		if st.Ledger.GetMark(week, day, subject, student) == mark {
			return created, nil
		}
		return true, st.Ledger.SetMark(week, day, subject, student, mark)
	})
	if err != nil {
		return err
	}
	s.metrics.MarkRecorded(string(mark), 1)
	return nil
}

func (s *attendanceService) StudentSheet(_ context.Context, week, student string) (*dto.StudentSheetResponse, error) {
	var resp *dto.StudentSheetResponse
	err := s.store.View(func(st *attendance.State) error {
		if err := checkStudent(st, student); err != nil {
			return err
		}
		rows, err := st.Stats.StudentSheet(week, student)
		if err != nil {
			return err
		}
		resp = &dto.StudentSheetResponse{
			WeekKey: week,
			Student: student,
			Rows:    make([]dto.SheetRowResponse, 0, len(rows)),
		}
		for _, r := range rows {
			resp.Rows = append(resp.Rows, dto.SheetRowResponse{
				Weekday: r.Weekday,
				Subject: r.Subject,
				Teacher: dto.NewTeacherResponse(r.Teacher),
				Mark:    string(r.Mark),
				Label:   r.Mark.Label(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *attendanceService) ResetWeek(ctx context.Context, week, confirmation string) error {
	if confirmation != ResetConfirmation {
		return &attendance.ValidationError{Field: "confirmation", Reason: "请输入 " + ResetConfirmation + " 以确认"}
	}
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		st.Ledger.ResetWeek(week)
		return true, nil
	})
	if err == nil {
		s.logger.Warn("本周考勤已清空", zap.String("week", week))
	}
	return err
}

func (s *attendanceService) SyncWeek(ctx context.Context, week string) (*dto.SyncResponse, error) {
	var added int
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		n, err := st.Ledger.SyncWeek(week)
		if err != nil {
			return false, err
		}
		added = n
		return n > 0, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.SyncResponse{WeekKey: week, Added: added}, nil
}
