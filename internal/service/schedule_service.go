package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
)

// ScheduleService 课表查询与日历导出
type ScheduleService interface {
	ByDay(ctx context.Context) []dto.DayScheduleResponse
	ByTeacher(ctx context.Context) []dto.TeacherScheduleResponse
	// ExportICS 将某周课表导出为 iCalendar，每节课一个全天事件
	ExportICS(ctx context.Context, week string) ([]byte, string, error)
}

type scheduleService struct {
	store *Store
	now   func() time.Time
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(store *Store) ScheduleService {
	return &scheduleService{store: store, now: time.Now}
}

func (s *scheduleService) ByDay(_ context.Context) []dto.DayScheduleResponse {
	catalog := s.store.Catalog()
	out := make([]dto.DayScheduleResponse, 0, len(catalog.Weekdays()))
	_ = s.store.View(func(st *attendance.State) error {
		for _, day := range catalog.Weekdays() {
			entries := catalog.SubjectsForDay(day)
			ds := dto.DayScheduleResponse{Weekday: day, Sessions: make([]dto.SessionResponse, 0, len(entries))}
			for _, e := range entries {
				ds.Sessions = append(ds.Sessions, dto.SessionResponse{
					Subject: e.Subject,
					Teacher: dto.NewTeacherResponse(st.Directory.Resolve(e.Subject)),
				})
			}
			out = append(out, ds)
		}
		return nil
	})
	return out
}

func (s *scheduleService) ByTeacher(_ context.Context) []dto.TeacherScheduleResponse {
	catalog := s.store.Catalog()
	var out []dto.TeacherScheduleResponse
	index := make(map[string]int)
	_ = s.store.View(func(st *attendance.State) error {
		for _, day := range catalog.Weekdays() {
			for _, e := range catalog.SubjectsForDay(day) {
				t := st.Directory.Resolve(e.Subject)
				i, ok := index[t.GroupKey()]
				if !ok {
					i = len(out)
					index[t.GroupKey()] = i
					out = append(out, dto.TeacherScheduleResponse{Teacher: dto.NewTeacherResponse(t)})
				}
				out[i].Sessions = append(out[i].Sessions, dto.TeacherSessionRef{Weekday: day, Subject: e.Subject})
			}
		}
		return nil
	})
	return out
}

func (s *scheduleService) ExportICS(_ context.Context, week string) ([]byte, string, error) {
	start, err := attendance.WeekStart(week)
	if err != nil {
		return nil, "", err
	}
	// 非周一的键按所在周的周一展开
	week = attendance.WeekKey(start)
	start, _ = attendance.WeekStart(week)

	catalog := s.store.Catalog()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//presence//emploi du temps//FR")
	cal.SetXWRCalName("Emploi du temps " + week)

	stamp := s.now().UTC()
	_ = s.store.View(func(st *attendance.State) error {
		for i, day := range catalog.Weekdays() {
			date := start.AddDate(0, 0, i)
			for j, e := range catalog.SubjectsForDay(day) {
				t := st.Directory.Resolve(e.Subject)
				ev := cal.AddEvent(fmt.Sprintf("%s-%d-%d@presence", week, i, j))
				ev.SetDtStampTime(stamp)
				ev.SetAllDayStartAt(date)
				ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
				ev.SetSummary(fmt.Sprintf("%s (%s)", e.Subject, t.Name))
				if t.Contact != "" {
					ev.SetDescription("Tél. " + t.Contact)
				}
			}
		}
		return nil
	})

	return []byte(cal.Serialize()), fmt.Sprintf("emploi_du_temps_%s.ics", week), nil
}
