package attendance

import "fmt"

// DefaultRosterSize 首次运行时的占位学生数
const DefaultRosterSize = 31

// DefaultRoster 生成占位学生名单
func DefaultRoster() []string {
	names := make([]string, DefaultRosterSize)
	for i := range names {
		names[i] = fmt.Sprintf("Élève %d", i+1)
	}
	return names
}

// Roster 有序学生名单。按位置识别学生，允许重名。
type Roster struct {
	names []string
}

// NewRoster 创建名单（names 会被复制）
func NewRoster(names []string) *Roster {
	r := &Roster{names: make([]string, len(names))}
	copy(r.names, names)
	return r
}

// Names 返回名单副本
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len 学生人数
func (r *Roster) Len() int { return len(r.names) }

// Contains 名单中是否存在该学生
func (r *Roster) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// ReplaceAll 整体替换名单。已初始化周里旧姓名下的记录保持原样，不做迁移。
func (r *Roster) ReplaceAll(names []string) error {
	if len(names) == 0 {
		return invalid("students", "学生名单不能为空")
	}
	r.names = make([]string, len(names))
	copy(r.names, names)
	return nil
}
