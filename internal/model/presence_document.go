package model

import (
	"time"

	"gorm.io/datatypes"
)

// PresenceDocument 考勤文档表 presence_document（单行，整份 JSON 文档）
type PresenceDocument struct {
	Singleton bool           `gorm:"primaryKey;default:true" json:"-"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"     json:"payload"`
	Version   int            `gorm:"not null;default:1"      json:"version"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (PresenceDocument) TableName() string { return "presence_document" }
