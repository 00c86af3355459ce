package service

import (
	"context"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
)

// StatsService 统计查询接口（只读）
type StatsService interface {
	Students(ctx context.Context, week string) ([]dto.StudentStatResponse, error)
	Subjects(ctx context.Context, week string) ([]dto.SubjectStatResponse, error)
	Teachers(ctx context.Context, week string) ([]dto.TeacherStatResponse, error)
	Overview(ctx context.Context, week string) *dto.OverviewResponse
}

type statsService struct {
	store *Store
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(store *Store) StatsService {
	return &statsService{store: store}
}

func (s *statsService) Students(_ context.Context, week string) ([]dto.StudentStatResponse, error) {
	var out []dto.StudentStatResponse
	err := s.store.View(func(st *attendance.State) error {
		rows, err := st.Stats.StudentStats(week)
		if err != nil {
			return err
		}
		out = make([]dto.StudentStatResponse, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.StudentStatResponse{
				Student:      r.Student,
				PresentHours: r.PresentHours,
				AbsentHours:  r.AbsentHours,
				PresenceRate: r.PresenceRate,
			})
		}
		return nil
	})
	return out, err
}

func (s *statsService) Subjects(_ context.Context, week string) ([]dto.SubjectStatResponse, error) {
	var out []dto.SubjectStatResponse
	err := s.store.View(func(st *attendance.State) error {
		rows, err := st.Stats.SubjectStats(week)
		if err != nil {
			return err
		}
		out = make([]dto.SubjectStatResponse, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.SubjectStatResponse{
				Weekday:       r.Weekday,
				Subject:       r.Subject,
				Teacher:       dto.NewTeacherResponse(r.Teacher),
				Present:       r.Present,
				Absent:        r.Absent,
				Rate:          r.Rate,
				OccupancyRate: r.OccupancyRate,
			})
		}
		return nil
	})
	return out, err
}

func (s *statsService) Teachers(_ context.Context, week string) ([]dto.TeacherStatResponse, error) {
	var out []dto.TeacherStatResponse
	err := s.store.View(func(st *attendance.State) error {
		rows, err := st.Stats.TeacherStats(week)
		if err != nil {
			return err
		}
		out = make([]dto.TeacherStatResponse, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.TeacherStatResponse{
				Teacher:  dto.NewTeacherResponse(r.Teacher),
				Subjects: r.Subjects,
				Present:  r.Present,
				Absent:   r.Absent,
				Rate:     r.Rate,
			})
		}
		return nil
	})
	return out, err
}

func (s *statsService) Overview(_ context.Context, week string) *dto.OverviewResponse {
	var resp *dto.OverviewResponse
	_ = s.store.View(func(st *attendance.State) error {
		ov := st.Stats.Overview()
		resp = &dto.OverviewResponse{
			WeekKey:         week,
			Sessions:        ov.Sessions,
			Students:        ov.Students,
			HoursPerSession: ov.HoursPerSession,
			WeeklyHours:     ov.WeeklyHours,
			Teachers:        ov.Teachers,
			Weeks:           st.Ledger.Weeks(),
		}
		return nil
	})
	return resp
}
