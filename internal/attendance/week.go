package attendance

import "time"

const weekKeyLayout = "2006-01-02"

// WeekKey 返回 t 所在周的周一日期（ISO 格式），作为考勤周键
func WeekKey(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return monday.Format(weekKeyLayout)
}

// ParseWeekKey 校验外部传入的周键格式。
// 不做周一归一化，旧文档中按日期记录的键仍可访问。
func ParseWeekKey(s string) (string, error) {
	if _, err := time.Parse(weekKeyLayout, s); err != nil {
		return "", invalid("week", "周键格式应为 YYYY-MM-DD")
	}
	return s, nil
}

// WeekStart 解析周键为日期
func WeekStart(week string) (time.Time, error) {
	t, err := time.Parse(weekKeyLayout, week)
	if err != nil {
		return time.Time{}, invalid("week", "周键格式应为 YYYY-MM-DD")
	}
	return t, nil
}
