package dto

import "time"

type CreateTaskRequest struct {
	TaskName    string    `json:"task_name" binding:"required,max=255"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=high medium low"`
	Category    string    `json:"category" binding:"omitempty,max=100"`
}

// AdjustTaskRequest carries a partial update; empty fields are left unchanged.
type AdjustTaskRequest struct {
	TaskName    string     `json:"task_name"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
}
