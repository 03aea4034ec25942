package deadline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"duekeeper/model"

	"github.com/robfig/cron/v3"
)

// DefaultInterval is the evaluation cadence used when none is configured.
const DefaultInterval = time.Hour

// TaskSource feeds the scheduler the tasks still worth warning about.
type TaskSource interface {
	ListOpenTasks(ctx context.Context) ([]model.Tasks, error)
}

// Notifier delivers a rendered alert for one task.
type Notifier interface {
	Notify(ctx context.Context, taskID int, title, body string, tier Tier) error
}

// TickResult summarizes one evaluation pass.
type TickResult struct {
	Message      string `json:"message"`
	CurrentTime  string `json:"current_time"`
	TotalCount   int    `json:"total_count"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
}

// Scheduler periodically classifies open tasks and notifies on escalations.
// It remembers the last tier sent per task, so an unchanged state is silent
// and a de-escalation is recorded without notifying. Records live in memory
// only; after a restart each task notifies at most once more.
type Scheduler struct {
	source   TaskSource
	notifier Notifier
	interval time.Duration

	cron *cron.Cron

	// tickMu serializes ticks; the cron chain only covers cron-started runs,
	// not the manual trigger.
	tickMu sync.Mutex

	mu       sync.Mutex
	lastTier map[int]Tier
}

func NewScheduler(source TaskSource, notifier Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		source:   source,
		notifier: notifier,
		interval: interval,
		lastTier: make(map[int]Tier),
	}
}

// Start launches the recurring evaluation job. Ticks never overlap: a tick
// that is still running makes the next one skip.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		log.Println("🔔 Running deadline check job...")
		result, err := s.RunTick(context.Background())
		if err != nil {
			log.Printf("❌ Deadline check error: %v", err)
			return
		}
		log.Printf("✅ Deadline check completed - Notified: %d, Errors: %d, Total: %d",
			result.SuccessCount, result.ErrorCount, result.TotalCount)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron = c
	c.Start()
	log.Printf("Scheduler started (every %s)", s.interval)
	return nil
}

// Stop halts new ticks and waits for the in-flight one, giving up when the
// context expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		log.Println("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunTick evaluates every open task once. A task failing to notify is logged
// and counted, never fatal; its record stays put so the next tick retries.
func (s *Scheduler) RunTick(ctx context.Context) (*TickResult, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	now := time.Now().UTC()

	tasks, err := s.source.ListOpenTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open tasks: %w", err)
	}

	result := &TickResult{
		Message:     "Deadline check completed",
		CurrentTime: now.Format(time.RFC3339),
		TotalCount:  len(tasks),
	}

	open := make(map[int]struct{}, len(tasks))
	for _, task := range tasks {
		open[task.TaskID] = struct{}{}

		tier := Classify(task.Deadline, now, task.IsCompleted)
		if !s.escalated(task.TaskID, tier) {
			s.record(task.TaskID, tier)
			continue
		}

		title, body := alertMessage(task, tier)
		if err := s.notifier.Notify(ctx, task.TaskID, title, body, tier); err != nil {
			log.Printf("⚠️ Failed to notify for task %d: %v", task.TaskID, err)
			result.ErrorCount++
			continue
		}
		s.record(task.TaskID, tier)
		result.SuccessCount++
	}

	s.sweep(open)
	return result, nil
}

// Forget drops the notification record for a task. Called when a task is
// completed or deleted so a reused state starts clean.
func (s *Scheduler) Forget(taskID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastTier, taskID)
}

// escalated reports whether tier is strictly more urgent than the last tier
// notified for the task. Absent records count as TierNone.
func (s *Scheduler) escalated(taskID int, tier Tier) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tier != TierNone && tier > s.lastTier[taskID]
}

func (s *Scheduler) record(taskID int, tier Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tier == TierNone {
		delete(s.lastTier, taskID)
		return
	}
	s.lastTier[taskID] = tier
}

// sweep purges records of tasks that left the open set, covering completion
// and deletion that happened outside Forget.
func (s *Scheduler) sweep(open map[int]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for taskID := range s.lastTier {
		if _, ok := open[taskID]; !ok {
			delete(s.lastTier, taskID)
		}
	}
}
