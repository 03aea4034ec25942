package model

import (
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Tasks struct {
	TaskID      int       `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	RemoteID    *string   `gorm:"column:remote_id;type:varchar(64);uniqueIndex" json:"remote_id,omitempty"`
	TaskName    string    `gorm:"column:task_name;type:varchar(255);not null" json:"task_name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Deadline    time.Time `gorm:"column:deadline;not null" json:"deadline"`
	Priority    string    `gorm:"column:priority;type:enum('high','medium','low');default:'medium'" json:"priority"`
	Category    string    `gorm:"column:category;type:varchar(100)" json:"category"`
	IsCompleted bool      `gorm:"column:is_completed;default:false;not null" json:"is_completed"`
	ImagePath   *string   `gorm:"column:image_path;type:varchar(512)" json:"image_path,omitempty"`
	CreateAt    time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Tasks) TableName() string {
	return "tasks"
}
