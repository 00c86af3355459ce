package attendance

// ── 统计引擎（只读） ──

// StudentStat 学生周统计
type StudentStat struct {
	Student      string
	PresentHours int
	AbsentHours  int
	PresenceRate float64 // 百分比；无标记时为 0
}

// SubjectStat 每个 (工作日, 科目) 的统计
type SubjectStat struct {
	Weekday       string
	Subject       string
	Teacher       TeacherInfo
	Present       int
	Absent        int
	Rate          float64 // present / (present+absent)
	OccupancyRate float64 // present / 名单人数
}

// TeacherStat 按教师归并的统计
type TeacherStat struct {
	Teacher  TeacherInfo
	Subjects []string
	Present  int
	Absent   int
	Rate     float64
}

// SheetRow 单个学生在某节课的标记
type SheetRow struct {
	Weekday string
	Subject string
	Teacher TeacherInfo
	Mark    Mark
}

// Overview 仪表盘计数
type Overview struct {
	Sessions        int
	Students        int
	HoursPerSession int
	WeeklyHours     int
	Teachers        int
}

// Engine 基于课表、教师目录、账本与名单计算统计
type Engine struct {
	catalog   *Catalog
	directory *Directory
	ledger    *Ledger
	roster    *Roster
}

// NewEngine 创建统计引擎
func NewEngine(catalog *Catalog, directory *Directory, ledger *Ledger, roster *Roster) *Engine {
	return &Engine{catalog: catalog, directory: directory, ledger: ledger, roster: roster}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func (e *Engine) requireWeek(week string) error {
	if !e.ledger.HasWeek(week) {
		return &NotInitializedError{Week: week}
	}
	return nil
}

// StudentStats 每个学生（按名单顺序）的出勤课时与出勤率
func (e *Engine) StudentStats(week string) ([]StudentStat, error) {
	if err := e.requireWeek(week); err != nil {
		return nil, err
	}
	hours := e.catalog.HoursPerSession()
	out := make([]StudentStat, 0, e.roster.Len())
	for _, student := range e.roster.names {
		st := StudentStat{Student: student}
		for _, day := range e.catalog.Weekdays() {
			for _, entry := range e.catalog.SubjectsForDay(day) {
				switch e.ledger.GetMark(week, day, entry.Subject, student) {
				case Present:
					st.PresentHours += hours
				case Absent:
					st.AbsentHours += hours
				}
			}
		}
		st.PresenceRate = percent(st.PresentHours, st.PresentHours+st.AbsentHours)
		out = append(out, st)
	}
	return out, nil
}

// SubjectStats 每个 (工作日, 科目) 一行；不同工作日的同名科目是不同的行
func (e *Engine) SubjectStats(week string) ([]SubjectStat, error) {
	if err := e.requireWeek(week); err != nil {
		return nil, err
	}
	out := make([]SubjectStat, 0, e.catalog.SessionCount())
	for _, day := range e.catalog.Weekdays() {
		for _, entry := range e.catalog.SubjectsForDay(day) {
			row := SubjectStat{
				Weekday: day,
				Subject: entry.Subject,
				Teacher: e.directory.Resolve(entry.Subject),
			}
			for _, student := range e.roster.names {
				switch e.ledger.GetMark(week, day, entry.Subject, student) {
				case Present:
					row.Present++
				case Absent:
					row.Absent++
				}
			}
			row.Rate = percent(row.Present, row.Present+row.Absent)
			row.OccupancyRate = percent(row.Present, e.roster.Len())
			out = append(out, row)
		}
	}
	return out, nil
}

// TeacherStats 按解析后的教师归并科目统计，顺序为首次出现顺序
func (e *Engine) TeacherStats(week string) ([]TeacherStat, error) {
	rows, err := e.SubjectStats(week)
	if err != nil {
		return nil, err
	}
	var out []TeacherStat
	index := make(map[string]int)
	for _, row := range rows {
		key := row.Teacher.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, TeacherStat{Teacher: row.Teacher})
		}
		ts := &out[i]
		if !containsString(ts.Subjects, row.Subject) {
			ts.Subjects = append(ts.Subjects, row.Subject)
		}
		ts.Present += row.Present
		ts.Absent += row.Absent
	}
	for i := range out {
		out[i].Rate = percent(out[i].Present, out[i].Present+out[i].Absent)
	}
	return out, nil
}

// StudentSheet 某学生本周每节课的标记
func (e *Engine) StudentSheet(week, student string) ([]SheetRow, error) {
	if err := e.requireWeek(week); err != nil {
		return nil, err
	}
	out := make([]SheetRow, 0, e.catalog.SessionCount())
	for _, day := range e.catalog.Weekdays() {
		for _, entry := range e.catalog.SubjectsForDay(day) {
			out = append(out, SheetRow{
				Weekday: day,
				Subject: entry.Subject,
				Teacher: e.directory.Resolve(entry.Subject),
				Mark:    e.ledger.GetMark(week, day, entry.Subject, student),
			})
		}
	}
	return out, nil
}

// Overview 课程数、学生数、周课时与教师人数
func (e *Engine) Overview() Overview {
	teachers := make(map[string]bool)
	for _, day := range e.catalog.Weekdays() {
		for _, entry := range e.catalog.SubjectsForDay(day) {
			teachers[e.directory.Resolve(entry.Subject).GroupKey()] = true
		}
	}
	return Overview{
		Sessions:        e.catalog.SessionCount(),
		Students:        e.roster.Len(),
		HoursPerSession: e.catalog.HoursPerSession(),
		WeeklyHours:     e.catalog.TotalScheduledHours(),
		Teachers:        len(teachers),
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
