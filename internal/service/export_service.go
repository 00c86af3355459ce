package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
)

// ErrExportGenerateFail 生成 Excel 失败
var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 统计导出为一个 .xlsx，三个 Sheet：学生、科目、教师。
// 以 bytes.Buffer 返回，由 Handler 设置响应头后写出。
type ExportService interface {
	ExportStats(ctx context.Context, week string) (*bytes.Buffer, string, error)
}

type exportService struct {
	store  *Store
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(store *Store, logger *zap.Logger) ExportService {
	return &exportService{store: store, logger: logger}
}

const (
	sheetStudents = "Élèves"
	sheetSubjects = "Matières"
	sheetTeachers = "Professeurs"
)

func (s *exportService) ExportStats(_ context.Context, week string) (*bytes.Buffer, string, error) {
	var (
		students []attendance.StudentStat
		subjects []attendance.SubjectStat
		teachers []attendance.TeacherStat
	)
	err := s.store.View(func(st *attendance.State) error {
		var err error
		if students, err = st.Stats.StudentStats(week); err != nil {
			return err
		}
		if subjects, err = st.Stats.SubjectStats(week); err != nil {
			return err
		}
		teachers, err = st.Stats.TeacherStats(week)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── 学生 ──
	rows := make([][]interface{}, 0, len(students))
	for _, r := range students {
		rows = append(rows, []interface{}{r.Student, r.PresentHours, r.AbsentHours, round1(r.PresenceRate)})
	}
	if err := writeSheet(f, sheetStudents, headerStyle,
		[]string{"Élève", "Heures présent", "Heures absent", "Taux (%)"}, rows); err != nil {
		return nil, "", s.fail(err)
	}

	// ── 科目 ──
	rows = rows[:0]
	for _, r := range subjects {
		rows = append(rows, []interface{}{r.Weekday, r.Subject, r.Teacher.Name, r.Present, r.Absent, round1(r.Rate), round1(r.OccupancyRate)})
	}
	if err := writeSheet(f, sheetSubjects, headerStyle,
		[]string{"Jour", "Matière", "Professeur", "Présents", "Absents", "Taux (%)", "Remplissage (%)"}, rows); err != nil {
		return nil, "", s.fail(err)
	}

	// ── 教师 ──
	rows = rows[:0]
	for _, r := range teachers {
		rows = append(rows, []interface{}{r.Teacher.Name, r.Teacher.Contact, strings.Join(r.Subjects, ", "), r.Present, r.Absent, round1(r.Rate)})
	}
	if err := writeSheet(f, sheetTeachers, headerStyle,
		[]string{"Professeur", "Téléphone", "Matières", "Présents", "Absents", "Taux (%)"}, rows); err != nil {
		return nil, "", s.fail(err)
	}

	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", s.fail(err)
	}
	if idx, err := f.GetSheetIndex(sheetStudents); err == nil {
		f.SetActiveSheet(idx)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	return buf, fmt.Sprintf("statistiques_%s.xlsx", week), nil
}

func (s *exportService) fail(err error) error {
	s.logger.Error("写入 Excel 失败", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
}

// writeSheet 新建 Sheet，写入表头与数据行
func writeSheet(f *excelize.File, name string, headerStyle int, header []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return err
	}
	last := colName(len(header) - 1)
	if err := f.SetCellStyle(name, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", last, 18); err != nil {
		return err
	}

	for i, row := range rows {
		r := row
		if err := f.SetSheetRow(name, cell("A", i+2), &r); err != nil {
			return err
		}
	}
	return nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
