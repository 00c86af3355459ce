package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hach2pro/app-letp/internal/attendance"
	"github.com/hach2pro/app-letp/internal/dto"
)

// TeacherService 教师目录业务接口
type TeacherService interface {
	// List 每个课表科目一行，附带解析后的教师
	List(ctx context.Context) []dto.SubjectTeacherResponse
	// Update 修改科目教师；需要管理员密码
	Update(ctx context.Context, subject string, req *dto.UpdateTeacherRequest) (*dto.SubjectTeacherResponse, error)
}

type teacherService struct {
	store  *Store
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(store *Store, logger *zap.Logger) TeacherService {
	return &teacherService{store: store, logger: logger}
}

func (s *teacherService) List(_ context.Context) []dto.SubjectTeacherResponse {
	var out []dto.SubjectTeacherResponse
	_ = s.store.View(func(st *attendance.State) error {
		for _, row := range st.Directory.Listing() {
			out = append(out, dto.SubjectTeacherResponse{
				Subject: row.Subject,
				Teacher: dto.NewTeacherResponse(row.Teacher),
			})
		}
		return nil
	})
	return out
}

func (s *teacherService) Update(ctx context.Context, subject string, req *dto.UpdateTeacherRequest) (*dto.SubjectTeacherResponse, error) {
	if _, ok := s.store.Catalog().Lookup(subject); !ok {
		return nil, &attendance.ValidationError{Field: "subject", Reason: "课表中没有科目 " + subject}
	}

	var resp *dto.SubjectTeacherResponse
	err := s.store.Update(ctx, func(st *attendance.State) (bool, error) {
		if !st.Gate.Verify(req.Password) {
			return false, attendance.ErrAuth
		}
		if err := st.Directory.Set(subject, req.Name, req.Phone, req.ID); err != nil {
			return false, err
		}
		resp = &dto.SubjectTeacherResponse{
			Subject: subject,
			Teacher: dto.NewTeacherResponse(st.Directory.Resolve(subject)),
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("科目教师已更新", zap.String("subject", subject), zap.String("teacher", resp.Teacher.Name))
	return resp, nil
}
