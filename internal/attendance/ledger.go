package attendance

import "sort"

// ── 考勤账本：周 → 工作日 → 科目 → 学生 → 标记 ──

// SubjectMarks 学生 → 标记
type SubjectMarks map[string]Mark

// DayMarks 科目 → 学生标记
type DayMarks map[string]SubjectMarks

// WeekMarks 工作日 → 科目
type WeekMarks map[string]DayMarks

// Ledger 按周存储的考勤网格
type Ledger struct {
	catalog *Catalog
	roster  *Roster
	weeks   map[string]WeekMarks
}

// NewLedger 创建账本；weeks 会被深拷贝
func NewLedger(catalog *Catalog, roster *Roster, weeks map[string]WeekMarks) *Ledger {
	return &Ledger{catalog: catalog, roster: roster, weeks: cloneWeeks(weeks)}
}

// HasWeek 该周是否已初始化
func (l *Ledger) HasWeek(week string) bool {
	_, ok := l.weeks[week]
	return ok
}

// Weeks 已初始化的周键（升序）
func (l *Ledger) Weeks() []string {
	keys := make([]string, 0, len(l.weeks))
	for k := range l.weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnsureWeekInitialized 若该周不存在，则按当前名单与课表建立完整的未标记网格。
// 已存在的周保持不变，名单后续变化不会追加到已初始化的周。
// 返回值表示是否新建了网格（调用方据此决定是否持久化）。
func (l *Ledger) EnsureWeekInitialized(week string) bool {
	if l.HasWeek(week) {
		return false
	}
	students := l.roster.Names()
	wm := make(WeekMarks, len(l.catalog.days))
	for _, day := range l.catalog.Weekdays() {
		dm := make(DayMarks)
		for _, e := range l.catalog.SubjectsForDay(day) {
			sm := make(SubjectMarks, len(students))
			for _, s := range students {
				sm[s] = Unmarked
			}
			dm[e.Subject] = sm
		}
		wm[day] = dm
	}
	l.weeks[week] = wm
	return true
}

// SyncWeek 为已初始化周补齐当前名单中缺失的学生（标记为未标记），
// 不会删除已不在名单中的旧姓名。返回新增的单元格数量。
func (l *Ledger) SyncWeek(week string) (int, error) {
	if !l.HasWeek(week) {
		return 0, &NotInitializedError{Week: week}
	}
	added := 0
	for _, day := range l.catalog.Weekdays() {
		for _, e := range l.catalog.SubjectsForDay(day) {
			sm := l.subject(week, day, e.Subject)
			for _, s := range l.roster.names {
				if _, ok := sm[s]; !ok {
					sm[s] = Unmarked
					added++
				}
			}
		}
	}
	return added, nil
}

// SetMark 写入单个标记，缺失的中间层级自动创建；幂等
func (l *Ledger) SetMark(week, day, subject, student string, mark Mark) error {
	if !mark.Valid() {
		return invalid("mark", "无效的考勤标记")
	}
	l.subject(week, day, subject)[student] = mark
	return nil
}

// GetMark 读取单个标记；任一层级缺失均视为未标记
func (l *Ledger) GetMark(week, day, subject, student string) Mark {
	return l.weeks[week][day][subject][student]
}

// ResetWeek 删除该周全部记录，再按当前名单重新初始化。
// 确认短语由调用方校验。
func (l *Ledger) ResetWeek(week string) {
	delete(l.weeks, week)
	l.EnsureWeekInitialized(week)
}

// subject 返回（必要时创建）week/day/subject 层级
func (l *Ledger) subject(week, day, subject string) SubjectMarks {
	wm, ok := l.weeks[week]
	if !ok {
		wm = make(WeekMarks)
		l.weeks[week] = wm
	}
	dm, ok := wm[day]
	if !ok {
		dm = make(DayMarks)
		wm[day] = dm
	}
	sm, ok := dm[subject]
	if !ok {
		sm = make(SubjectMarks)
		dm[subject] = sm
	}
	return sm
}

func (l *Ledger) snapshot() map[string]WeekMarks {
	return cloneWeeks(l.weeks)
}

func cloneWeeks(src map[string]WeekMarks) map[string]WeekMarks {
	out := make(map[string]WeekMarks, len(src))
	for wk, wm := range src {
		w := make(WeekMarks, len(wm))
		for day, dm := range wm {
			d := make(DayMarks, len(dm))
			for subj, sm := range dm {
				s := make(SubjectMarks, len(sm))
				for student, m := range sm {
					s[student] = m
				}
				d[subj] = s
			}
			w[day] = d
		}
		out[wk] = w
	}
	return out
}
