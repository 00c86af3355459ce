package attendance

import "strings"

// UndefinedTeacher 目录与课表中都找不到教师时的展示值
var UndefinedTeacher = TeacherInfo{Name: "Professeur non défini"}

// Defined 是否为真实教师（非 UndefinedTeacher）
func (t TeacherInfo) Defined() bool { return t != UndefinedTeacher }

// GroupKey 教师统计的归并键：优先使用稳定 ID，否则使用姓名
func (t TeacherInfo) GroupKey() string {
	if t.ID != "" {
		return "id:" + t.ID
	}
	return "name:" + t.Name
}

// Directory 科目 → 教师 的可编辑映射，缺失时回退到课表
type Directory struct {
	catalog *Catalog
	entries map[string]TeacherInfo
}

// NewDirectory 使用已有条目创建目录（entries 会被复制）
func NewDirectory(catalog *Catalog, entries map[string]TeacherInfo) *Directory {
	d := &Directory{catalog: catalog, entries: make(map[string]TeacherInfo, len(entries))}
	for k, v := range entries {
		d.entries[k] = v
	}
	return d
}

// SeedDirectory 按课表顺序为每个科目写入第一次出现的教师
func SeedDirectory(catalog *Catalog) map[string]TeacherInfo {
	seeded := make(map[string]TeacherInfo)
	for _, day := range catalog.Weekdays() {
		for _, e := range catalog.SubjectsForDay(day) {
			if _, ok := seeded[e.Subject]; !ok {
				seeded[e.Subject] = e.Teacher
			}
		}
	}
	return seeded
}

// Resolve 目录 → 课表第一个匹配 → UndefinedTeacher
func (d *Directory) Resolve(subject string) TeacherInfo {
	if t, ok := d.entries[subject]; ok {
		return t
	}
	if t, ok := d.catalog.Lookup(subject); ok {
		return t
	}
	return UndefinedTeacher
}

// Set 写入或覆盖某科目的教师信息；姓名与联系方式均不能为空
func (d *Directory) Set(subject, name, contact, id string) error {
	subject = strings.TrimSpace(subject)
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if subject == "" {
		return invalid("subject", "科目不能为空")
	}
	if name == "" {
		return invalid("name", "教师姓名不能为空")
	}
	if contact == "" {
		return invalid("phone", "联系电话不能为空")
	}
	d.entries[subject] = TeacherInfo{ID: strings.TrimSpace(id), Name: name, Contact: contact}
	return nil
}

// Listing 课表中每个科目（去重）及其解析后的教师
func (d *Directory) Listing() []SubjectTeacher {
	subjects := d.catalog.Subjects()
	out := make([]SubjectTeacher, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, SubjectTeacher{Subject: s, Teacher: d.Resolve(s)})
	}
	return out
}

// SubjectTeacher 科目与教师
type SubjectTeacher struct {
	Subject string
	Teacher TeacherInfo
}

func (d *Directory) snapshot() map[string]TeacherInfo {
	out := make(map[string]TeacherInfo, len(d.entries))
	for k, v := range d.entries {
		out[k] = v
	}
	return out
}
