package syncer

import (
	"context"
	"errors"

	"duekeeper/model"
	"duekeeper/storage"
)

// ErrConcurrentAccess marks a reconciliation skipped because another
// operation already holds the task.
var ErrConcurrentAccess = errors.New("task is already being reconciled")

type State string

const (
	StateSynced  State = "synced"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Outcome is the per-task result of one reconciliation. Warnings carry
// best-effort failures that did not change the state, like a leaked asset.
type Outcome struct {
	TaskID   int      `json:"task_id"`
	RemoteID string   `json:"remote_id,omitempty"`
	State    State    `json:"state"`
	Reason   string   `json:"reason,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func skipped(taskID int, remoteID, reason string) Outcome {
	return Outcome{TaskID: taskID, RemoteID: remoteID, State: StateSkipped, Reason: reason}
}

func failure(taskID int, remoteID string, err error) Outcome {
	reason := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout: " + reason
	}
	return Outcome{TaskID: taskID, RemoteID: remoteID, State: StateFailed, Reason: reason}
}

// documentFromTask projects a task onto its remote wire shape. The local id
// stays out of the document on purpose.
func documentFromTask(task *model.Tasks) storage.TaskDocument {
	doc := storage.TaskDocument{
		TaskName:    task.TaskName,
		Description: task.Description,
		Deadline:    task.Deadline,
		Priority:    task.Priority,
		Category:    task.Category,
		IsCompleted: task.IsCompleted,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.ImagePath != nil {
		doc.ImagePath = *task.ImagePath
	}
	return doc
}

// applyDocument overwrites the task's content fields from the remote copy,
// keeping the local and remote ids untouched.
func applyDocument(task *model.Tasks, doc storage.TaskDocument) {
	task.TaskName = doc.TaskName
	task.Description = doc.Description
	task.Deadline = doc.Deadline
	task.Priority = doc.Priority
	task.Category = doc.Category
	task.IsCompleted = doc.IsCompleted
	if doc.ImagePath != "" {
		path := doc.ImagePath
		task.ImagePath = &path
	} else {
		task.ImagePath = nil
	}
}

func taskFromDocument(remoteID string, doc storage.TaskDocument) *model.Tasks {
	task := &model.Tasks{RemoteID: &remoteID}
	applyDocument(task, doc)
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	return task
}
