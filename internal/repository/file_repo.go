package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"

	"github.com/hach2pro/app-letp/internal/model"
)

// fileDocumentRepo 以单个 JSON 文件存储考勤文档。
// 写入先落到同目录临时文件再 rename，读取方不会看到写了一半的文件。
// Payload 原样写入，缩进格式由 attendance.EncodeDocument 决定。
type fileDocumentRepo struct {
	path string
}

// NewFileDocumentRepo 创建基于文件的 DocumentRepository
func NewFileDocumentRepo(path string) DocumentRepository {
	return &fileDocumentRepo{path: path}
}

func (r *fileDocumentRepo) Load(ctx context.Context) (*model.PresenceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("读取考勤文档失败: %w", err)
	}
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("读取考勤文档失败: %w", err)
	}
	return &model.PresenceDocument{
		Singleton: true,
		Payload:   datatypes.JSON(raw),
		Version:   1,
		UpdatedAt: info.ModTime(),
	}, nil
}

func (r *fileDocumentRepo) Save(ctx context.Context, doc *model.PresenceDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename 成功后为空操作

	if _, err := tmp.Write(doc.Payload); err != nil {
		tmp.Close()
		return fmt.Errorf("写入考勤文档失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("写入考勤文档失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入考勤文档失败: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("替换考勤文档失败: %w", err)
	}

	doc.Singleton = true
	doc.Version++
	doc.UpdatedAt = time.Now()
	return nil
}
