package attendance

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mark 三态考勤标记，取值与持久化文档一致
type Mark string

const (
	Unmarked Mark = ""
	Present  Mark = "yes"
	Absent   Mark = "no"
)

// Valid 是否为三种合法取值之一
func (m Mark) Valid() bool {
	return m == Unmarked || m == Present || m == Absent
}

// Label 展示用文本
func (m Mark) Label() string {
	switch m {
	case Present:
		return "Présent"
	case Absent:
		return "Absent"
	default:
		return "Non défini"
	}
}

// ParseMark 解析外部输入，接受文档取值及 present/absent/unmarked 别名
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unmarked", "none", "clear":
		return Unmarked, nil
	case "yes", "present":
		return Present, nil
	case "no", "absent":
		return Absent, nil
	}
	return Unmarked, invalid("mark", fmt.Sprintf("无效的考勤标记 %q", s))
}

// UnmarshalJSON 拒绝文档中的非法标记
func (m *Mark) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := Mark(s)
	if !v.Valid() {
		return fmt.Errorf("invalid mark %q", s)
	}
	*m = v
	return nil
}
