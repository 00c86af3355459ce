package attendance

import "fmt"

// DefaultHoursPerSession 每节课的课时数
const DefaultHoursPerSession = 3

// TeacherInfo 教师信息。ID 为可选的稳定标识，为空时按姓名归并。
type TeacherInfo struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Contact string `json:"phone"`
}

// Entry 课表中的一节课
type Entry struct {
	Subject string
	Teacher TeacherInfo
}

// Day 某个工作日及其课程（有序）
type Day struct {
	Name    string
	Entries []Entry
}

// Catalog 固定周课表（只读）
type Catalog struct {
	days            []Day
	index           map[string]int
	hoursPerSession int
}

// NewCatalog 根据有序的工作日列表构建课表
func NewCatalog(days []Day, hoursPerSession int) *Catalog {
	c := &Catalog{
		days:            make([]Day, len(days)),
		index:           make(map[string]int, len(days)),
		hoursPerSession: hoursPerSession,
	}
	for i, d := range days {
		entries := make([]Entry, len(d.Entries))
		copy(entries, d.Entries)
		c.days[i] = Day{Name: d.Name, Entries: entries}
		c.index[d.Name] = i
	}
	return c
}

// DefaultCatalog 班级的默认周课表
func DefaultCatalog() *Catalog {
	var (
		dupont  = TeacherInfo{Name: "M. Dupont", Contact: "01 23 45 67 89"}
		bernard = TeacherInfo{Name: "Mme. Bernard", Contact: "01 56 78 90 12"}
	)
	return NewCatalog([]Day{
		{Name: "Lundi", Entries: []Entry{
			{Subject: "Mathématiques", Teacher: dupont},
			{Subject: "Français", Teacher: TeacherInfo{Name: "Mme. Martin", Contact: "01 34 56 78 90"}},
			{Subject: "TPA-concept", Teacher: TeacherInfo{Name: "M. Leroy", Contact: "01 45 67 89 01"}},
		}},
		{Name: "Mardi", Entries: []Entry{
			{Subject: "Physique-Chimie", Teacher: bernard},
			{Subject: "Mathématiques", Teacher: dupont},
			{Subject: "TPA-cao", Teacher: TeacherInfo{Name: "M. Petit", Contact: "01 67 89 01 23"}},
			{Subject: "EPS", Teacher: TeacherInfo{Name: "M. Robert", Contact: "01 78 90 12 34"}},
		}},
		{Name: "Mercredi", Entries: []Entry{
			{Subject: "Technologie", Teacher: TeacherInfo{Name: "M. Richard", Contact: "01 89 01 23 45"}},
			{Subject: "Informatique", Teacher: TeacherInfo{Name: "Mme. Durand", Contact: "01 90 12 34 56"}},
			{Subject: "Physique-Chimie", Teacher: bernard},
		}},
		{Name: "Jeudi", Entries: []Entry{
			{Subject: "Construction mécanique", Teacher: TeacherInfo{Name: "M. Simon", Contact: "02 12 34 56 78"}},
			{Subject: "Histoire-Géo", Teacher: TeacherInfo{Name: "Mme. Laurent", Contact: "02 23 45 67 89"}},
			{Subject: "Dessin", Teacher: TeacherInfo{Name: "M. Michel", Contact: "02 34 56 78 90"}},
		}},
		{Name: "Vendredi", Entries: []Entry{
			{Subject: "Électronique", Teacher: TeacherInfo{Name: "M. Moreau", Contact: "02 45 67 89 01"}},
			{Subject: "Anglais", Teacher: TeacherInfo{Name: "Mme. Thomas", Contact: "02 56 78 90 12"}},
		}},
	}, DefaultHoursPerSession)
}

// Weekdays 按顺序返回所有工作日
func (c *Catalog) Weekdays() []string {
	names := make([]string, len(c.days))
	for i, d := range c.days {
		names[i] = d.Name
	}
	return names
}

// IsWeekday 判断是否为课表中的工作日
func (c *Catalog) IsWeekday(day string) bool {
	_, ok := c.index[day]
	return ok
}

// SubjectsForDay 返回某天的课程（有序）。
// day 必须是 Weekdays() 之一，否则属于调用方编程错误。
func (c *Catalog) SubjectsForDay(day string) []Entry {
	i, ok := c.index[day]
	if !ok {
		panic(fmt.Sprintf("attendance: unknown weekday %q", day))
	}
	return c.days[i].Entries
}

// HoursPerSession 每节课课时
func (c *Catalog) HoursPerSession() int { return c.hoursPerSession }

// Scheduled 判断 subject 是否排在 day 当天
func (c *Catalog) Scheduled(day, subject string) bool {
	i, ok := c.index[day]
	if !ok {
		return false
	}
	for _, e := range c.days[i].Entries {
		if e.Subject == subject {
			return true
		}
	}
	return false
}

// Lookup 返回课表中第一个匹配该科目的教师
func (c *Catalog) Lookup(subject string) (TeacherInfo, bool) {
	for _, d := range c.days {
		for _, e := range d.Entries {
			if e.Subject == subject {
				return e.Teacher, true
			}
		}
	}
	return TeacherInfo{}, false
}

// Subjects 按课表顺序返回去重后的科目
func (c *Catalog) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range c.days {
		for _, e := range d.Entries {
			if !seen[e.Subject] {
				seen[e.Subject] = true
				out = append(out, e.Subject)
			}
		}
	}
	return out
}

// SessionCount 每周 (工作日, 科目) 对的总数
func (c *Catalog) SessionCount() int {
	n := 0
	for _, d := range c.days {
		n += len(d.Entries)
	}
	return n
}

// TotalScheduledHours 每周总课时
func (c *Catalog) TotalScheduledHours() int {
	return c.SessionCount() * c.hoursPerSession
}
