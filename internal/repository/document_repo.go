package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hach2pro/app-letp/internal/model"
	pkgerrors "github.com/hach2pro/app-letp/pkg/errors"
)

// ErrDocumentNotFound 尚未保存过考勤文档（首次运行）
var ErrDocumentNotFound = errors.New("考勤文档不存在")

// DocumentRepository 考勤文档数据访问接口。每次保存都是整份文档覆盖写。
type DocumentRepository interface {
	Load(ctx context.Context) (*model.PresenceDocument, error)
	Save(ctx context.Context, doc *model.PresenceDocument) error
}

// documentRepo DocumentRepository 的 GORM 实现（PostgreSQL jsonb 单行）
type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Load(ctx context.Context) (*model.PresenceDocument, error) {
	var doc model.PresenceDocument
	err := r.db.WithContext(ctx).Where("singleton = ?", true).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Save 首次写入时插入；之后按 version 乐观锁更新，冲突返回 ErrOptimisticLock
func (r *documentRepo) Save(ctx context.Context, doc *model.PresenceDocument) error {
	doc.Singleton = true
	if doc.Version == 0 {
		doc.Version = 1
		if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
			doc.Version = 0
			return err
		}
		return nil
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.PresenceDocument{}).
		Where("singleton = ? AND version = ?", true, doc.Version).
		Updates(map[string]interface{}{
			"payload":    doc.Payload,
			"version":    doc.Version + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	doc.Version++
	doc.UpdatedAt = now
	return nil
}
