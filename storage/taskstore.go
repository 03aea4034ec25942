package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"duekeeper/model"

	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the single source of truth for task records.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// ListOpenTasks returns incomplete tasks ordered by deadline, nearest first.
func (s *TaskStore) ListOpenTasks(ctx context.Context) ([]model.Tasks, error) {
	var tasks []model.Tasks
	if err := s.db.WithContext(ctx).
		Where("is_completed = ?", false).
		Order("deadline ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}
	return tasks, nil
}

// ListAll returns every task, completed ones included, ordered by deadline.
func (s *TaskStore) ListAll(ctx context.Context) ([]model.Tasks, error) {
	var tasks []model.Tasks
	if err := s.db.WithContext(ctx).
		Order("deadline ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) Get(ctx context.Context, taskID int) (*model.Tasks, error) {
	var task model.Tasks
	if err := s.db.WithContext(ctx).Where("task_id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task %d: %w", taskID, err)
	}
	return &task, nil
}

func (s *TaskStore) GetByRemoteID(ctx context.Context, remoteID string) (*model.Tasks, error) {
	var task model.Tasks
	if err := s.db.WithContext(ctx).Where("remote_id = ?", remoteID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task by remote id %s: %w", remoteID, err)
	}
	return &task, nil
}

// Upsert creates the task when it has no id yet and saves it otherwise.
// The generated id is written back into the passed task.
func (s *TaskStore) Upsert(ctx context.Context, task *model.Tasks) error {
	if task.TaskID == 0 {
		if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	}
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task %d: %w", task.TaskID, err)
	}
	return nil
}

// Update applies a partial column update and bumps updated_at.
func (s *TaskStore) Update(ctx context.Context, taskID int, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&model.Tasks{}).
		Where("task_id = ?", taskID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update task %d: %w", taskID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID int) error {
	result := s.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.Tasks{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Search matches the query against task name, description and category.
func (s *TaskStore) Search(ctx context.Context, query string) ([]model.Tasks, error) {
	var tasks []model.Tasks
	pattern := "%" + query + "%"
	if err := s.db.WithContext(ctx).
		Where("task_name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Order("deadline ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// ListDueBetween returns open tasks whose deadline falls inside [from, to].
func (s *TaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Tasks, error) {
	var tasks []model.Tasks
	if err := s.db.WithContext(ctx).
		Where("is_completed = ? AND deadline BETWEEN ? AND ?", false, from, to).
		Order("deadline ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks by deadline range: %w", err)
	}
	return tasks, nil
}
