package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"duekeeper/model"
	"duekeeper/storage"
)

// DefaultTimeout bounds a single reconciliation operation.
const DefaultTimeout = 30 * time.Second

const maxSyncWorkers = 5

// TaskStore is the slice of local storage the reconciler works against.
type TaskStore interface {
	Get(ctx context.Context, taskID int) (*model.Tasks, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*model.Tasks, error)
	ListAll(ctx context.Context) ([]model.Tasks, error)
	Upsert(ctx context.Context, task *model.Tasks) error
}

// Replica is the remote mirror of the task set.
type Replica interface {
	AllocateID() string
	Put(ctx context.Context, remoteID string, doc storage.TaskDocument) error
	GetAll(ctx context.Context) ([]storage.RemoteTask, error)
	Delete(ctx context.Context, remoteID string) error
}

// Assets stores task images addressed by locator.
type Assets interface {
	Upload(ctx context.Context, data []byte, nameHint string) (string, error)
	Delete(ctx context.Context, locator string) error
}

// Reconciler moves task state between the local store and the remote
// replica. Conflict handling is last-write-wins by direction: a push
// overwrites the remote copy, a pull overwrites the local one. Concurrent
// edits on both sides are not merged field by field.
type Reconciler struct {
	store   TaskStore
	replica Replica
	assets  Assets
	timeout time.Duration

	mu       sync.Mutex
	inFlight map[int]struct{}
}

func NewReconciler(store TaskStore, replica Replica, assets Assets, timeout time.Duration) *Reconciler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reconciler{
		store:    store,
		replica:  replica,
		assets:   assets,
		timeout:  timeout,
		inFlight: make(map[int]struct{}),
	}
}

// acquire try-locks the task id. A false return means another reconciliation
// holds it right now.
func (r *Reconciler) acquire(taskID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[taskID]; busy {
		return false
	}
	r.inFlight[taskID] = struct{}{}
	return true
}

func (r *Reconciler) release(taskID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, taskID)
}

// PushTask mirrors one local task to the replica. The first successful push
// assigns the task its remote id; the id never changes afterwards. A failed
// push leaves the local record untouched.
func (r *Reconciler) PushTask(ctx context.Context, taskID int) Outcome {
	if !r.acquire(taskID) {
		return skipped(taskID, "", ErrConcurrentAccess.Error())
	}
	defer r.release(taskID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.push(ctx, taskID)
}

// push is PushTask without locking, for callers that already hold the task.
func (r *Reconciler) push(ctx context.Context, taskID int) Outcome {
	task, err := r.store.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return Outcome{TaskID: taskID, State: StateFailed, Reason: "task not found"}
		}
		return failure(taskID, "", err)
	}

	doc := documentFromTask(task)

	if task.RemoteID == nil {
		remoteID := r.replica.AllocateID()
		if err := r.replica.Put(ctx, remoteID, doc); err != nil {
			return failure(taskID, "", err)
		}
		task.RemoteID = &remoteID
		if err := r.store.Upsert(ctx, task); err != nil {
			return failure(taskID, remoteID, fmt.Errorf("remote copy written but id not recorded: %w", err))
		}
		return Outcome{TaskID: taskID, RemoteID: remoteID, State: StateSynced}
	}

	if err := r.replica.Put(ctx, *task.RemoteID, doc); err != nil {
		return failure(taskID, *task.RemoteID, err)
	}
	return Outcome{TaskID: taskID, RemoteID: *task.RemoteID, State: StateSynced}
}

// PushAll mirrors every local task, completed ones included, a few at a time.
func (r *Reconciler) PushAll(ctx context.Context) ([]Outcome, error) {
	tasks, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for push: %w", err)
	}

	var (
		wg        sync.WaitGroup
		resultMu  sync.Mutex
		semaphore = make(chan struct{}, maxSyncWorkers)
	)
	outcomes := make([]Outcome, 0, len(tasks))

	for _, task := range tasks {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(taskID int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcome := r.PushTask(ctx, taskID)
			resultMu.Lock()
			outcomes = append(outcomes, outcome)
			resultMu.Unlock()
		}(task.TaskID)
	}
	wg.Wait()

	return outcomes, nil
}

// PullAll overwrites local tasks from the replica, joining on remote id.
// Documents with no local match become new tasks. Every document yields an
// outcome; only a failure to read the collection itself is an error.
func (r *Reconciler) PullAll(ctx context.Context) ([]Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	remote, err := r.replica.GetAll(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		return nil, fmt.Errorf("failed to fetch remote tasks: %w", err)
	}

	outcomes := make([]Outcome, 0, len(remote))
	for _, rt := range remote {
		outcomes = append(outcomes, r.pullOne(ctx, rt))
	}
	return outcomes, nil
}

func (r *Reconciler) pullOne(ctx context.Context, rt storage.RemoteTask) Outcome {
	local, err := r.store.GetByRemoteID(ctx, rt.RemoteID)
	switch {
	case err == nil:
		if !r.acquire(local.TaskID) {
			return skipped(local.TaskID, rt.RemoteID, ErrConcurrentAccess.Error())
		}
		defer r.release(local.TaskID)

		applyDocument(local, rt.Doc)
		if err := r.store.Upsert(ctx, local); err != nil {
			return failure(local.TaskID, rt.RemoteID, err)
		}
		return Outcome{TaskID: local.TaskID, RemoteID: rt.RemoteID, State: StateSynced}

	case errors.Is(err, storage.ErrTaskNotFound):
		fresh := taskFromDocument(rt.RemoteID, rt.Doc)
		if err := r.store.Upsert(ctx, fresh); err != nil {
			return failure(0, rt.RemoteID, err)
		}
		return Outcome{TaskID: fresh.TaskID, RemoteID: rt.RemoteID, State: StateSynced}

	default:
		return failure(0, rt.RemoteID, err)
	}
}

// DeleteRemote removes the remote copy of an already locally deleted task
// and cleans up its image. The asset delete is best effort: a failure lands
// in Warnings without changing the state.
func (r *Reconciler) DeleteRemote(ctx context.Context, task *model.Tasks) Outcome {
	if !r.acquire(task.TaskID) {
		return skipped(task.TaskID, "", ErrConcurrentAccess.Error())
	}
	defer r.release(task.TaskID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var outcome Outcome
	if task.RemoteID != nil {
		if err := r.replica.Delete(ctx, *task.RemoteID); err != nil {
			outcome = failure(task.TaskID, *task.RemoteID, err)
		} else {
			outcome = Outcome{TaskID: task.TaskID, RemoteID: *task.RemoteID, State: StateSynced}
		}
	} else {
		outcome = skipped(task.TaskID, "", "no remote copy")
	}

	if task.ImagePath != nil && *task.ImagePath != "" {
		if err := r.assets.Delete(ctx, *task.ImagePath); err != nil {
			outcome.Warnings = append(outcome.Warnings,
				fmt.Sprintf("failed to delete image %s: %v", *task.ImagePath, err))
		}
	}
	return outcome
}

// AttachImage uploads a new image for the task, swaps the locator and pushes
// the result. The replaced asset is deleted best effort.
func (r *Reconciler) AttachImage(ctx context.Context, taskID int, data []byte, filename string) Outcome {
	if !r.acquire(taskID) {
		return skipped(taskID, "", ErrConcurrentAccess.Error())
	}
	defer r.release(taskID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task, err := r.store.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return Outcome{TaskID: taskID, State: StateFailed, Reason: "task not found"}
		}
		return failure(taskID, "", err)
	}

	locator, err := r.assets.Upload(ctx, data, filename)
	if err != nil {
		return failure(taskID, "", err)
	}

	var warnings []string
	if task.ImagePath != nil && *task.ImagePath != "" && *task.ImagePath != locator {
		if err := r.assets.Delete(ctx, *task.ImagePath); err != nil {
			warnings = append(warnings,
				fmt.Sprintf("failed to delete replaced image %s: %v", *task.ImagePath, err))
		}
	}

	task.ImagePath = &locator
	if err := r.store.Upsert(ctx, task); err != nil {
		outcome := failure(taskID, "", err)
		outcome.Warnings = warnings
		return outcome
	}

	outcome := r.push(ctx, taskID)
	outcome.Warnings = append(warnings, outcome.Warnings...)
	return outcome
}

// DetachImage removes the task's image, clears the locator and pushes.
func (r *Reconciler) DetachImage(ctx context.Context, taskID int) Outcome {
	if !r.acquire(taskID) {
		return skipped(taskID, "", ErrConcurrentAccess.Error())
	}
	defer r.release(taskID)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task, err := r.store.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return Outcome{TaskID: taskID, State: StateFailed, Reason: "task not found"}
		}
		return failure(taskID, "", err)
	}

	if task.ImagePath == nil || *task.ImagePath == "" {
		return skipped(taskID, "", "no image attached")
	}

	var warnings []string
	if err := r.assets.Delete(ctx, *task.ImagePath); err != nil {
		warnings = append(warnings,
			fmt.Sprintf("failed to delete image %s: %v", *task.ImagePath, err))
	}

	task.ImagePath = nil
	if err := r.store.Upsert(ctx, task); err != nil {
		outcome := failure(taskID, "", err)
		outcome.Warnings = warnings
		return outcome
	}

	outcome := r.push(ctx, taskID)
	outcome.Warnings = append(warnings, outcome.Warnings...)
	return outcome
}
