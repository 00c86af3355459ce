package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document 持久化文档的完整结构
type Document struct {
	Students     []string               `json:"students"`
	Presences    map[string]WeekMarks   `json:"presences"`
	PasswordHash string                 `json:"passwordHash"`
	Teachers     map[string]TeacherInfo `json:"teachers"`
}

// FieldWarning 加载时某字段缺失或结构损坏，已回退为默认值
type FieldWarning struct {
	Field  string
	Reason string
}

func (w FieldWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Reason)
}

// DefaultDocument 首次运行的默认文档
func DefaultDocument(catalog *Catalog) Document {
	return Document{
		Students:     DefaultRoster(),
		Presences:    make(map[string]WeekMarks),
		PasswordHash: DefaultSecretHash(),
		Teachers:     SeedDirectory(catalog),
	}
}

// legacyTeacher 旧版文档的教师结构 {nom, telephone}
type legacyTeacher struct {
	Name    string `json:"nom"`
	Contact string `json:"telephone"`
}

// DecodeDocument 逐字段解析文档。某字段缺失或结构错误时仅该字段回退为默认值，
// 其余字段继续加载。顶层不是对象时全部使用默认值。
func DecodeDocument(catalog *Catalog, raw []byte) (Document, []FieldWarning) {
	doc := DefaultDocument(catalog)
	var warnings []FieldWarning

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return doc, []FieldWarning{{Field: "*", Reason: "文档不是 JSON 对象，全部使用默认值"}}
	}

	pick := func(keys ...string) (string, json.RawMessage) {
		for _, k := range keys {
			if v, ok := fields[k]; ok && !isJSONNull(v) {
				return k, v
			}
		}
		return "", nil
	}

	if key, v := pick("students", "eleves"); v != nil {
		var students []string
		if err := json.Unmarshal(v, &students); err != nil {
			warnings = append(warnings, FieldWarning{Field: key, Reason: err.Error()})
		} else if len(students) == 0 {
			warnings = append(warnings, FieldWarning{Field: key, Reason: "学生名单为空"})
		} else {
			doc.Students = students
		}
	}

	if key, v := pick("presences"); v != nil {
		var presences map[string]WeekMarks
		if err := json.Unmarshal(v, &presences); err != nil {
			warnings = append(warnings, FieldWarning{Field: key, Reason: err.Error()})
		} else {
			doc.Presences = normalizeWeeks(presences)
		}
	}

	if key, v := pick("passwordHash", "mot_de_passe_hash"); v != nil {
		var hash string
		if err := json.Unmarshal(v, &hash); err != nil {
			warnings = append(warnings, FieldWarning{Field: key, Reason: err.Error()})
		} else if hash == "" {
			warnings = append(warnings, FieldWarning{Field: key, Reason: "密码摘要为空"})
		} else {
			doc.PasswordHash = hash
		}
	}

	if v, ok := fields["teachers"]; ok && !isJSONNull(v) {
		var teachers map[string]TeacherInfo
		if err := json.Unmarshal(v, &teachers); err != nil {
			warnings = append(warnings, FieldWarning{Field: "teachers", Reason: err.Error()})
		} else {
			doc.Teachers = teachers
		}
	} else if v, ok := fields["professeurs"]; ok && !isJSONNull(v) {
		var legacy map[string]legacyTeacher
		if err := json.Unmarshal(v, &legacy); err != nil {
			warnings = append(warnings, FieldWarning{Field: "professeurs", Reason: err.Error()})
		} else {
			teachers := make(map[string]TeacherInfo, len(legacy))
			for subject, t := range legacy {
				teachers[subject] = TeacherInfo{Name: t.Name, Contact: t.Contact}
			}
			doc.Teachers = teachers
		}
	}

	return doc, warnings
}

// EncodeDocument 序列化文档（缩进 JSON，保留非 ASCII 字符）
func EncodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isJSONNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// normalizeWeeks 把 JSON 中的 null 层级替换为空映射
func normalizeWeeks(weeks map[string]WeekMarks) map[string]WeekMarks {
	if weeks == nil {
		return make(map[string]WeekMarks)
	}
	for wk, wm := range weeks {
		if wm == nil {
			wm = make(WeekMarks)
			weeks[wk] = wm
		}
		for day, dm := range wm {
			if dm == nil {
				dm = make(DayMarks)
				wm[day] = dm
			}
			for subj, sm := range dm {
				if sm == nil {
					dm[subj] = make(SubjectMarks)
				}
			}
		}
	}
	return weeks
}
