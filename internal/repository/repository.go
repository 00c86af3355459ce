package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Document DocumentRepository
}

// NewRepository 创建基于 PostgreSQL 的 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Document: NewDocumentRepo(db),
	}
}

// NewFileRepository 创建基于本地 JSON 文件的 Repository 聚合
func NewFileRepository(path string) *Repository {
	return &Repository{
		Document: NewFileDocumentRepo(path),
	}
}
