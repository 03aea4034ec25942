package deadline

import (
	"fmt"
	"time"

	"duekeeper/model"
)

// alertMessage renders the notification text for a task at the given tier.
// The sink only delivers what is rendered here.
func alertMessage(task model.Tasks, tier Tier) (title, body string) {
	due := task.Deadline.Format(time.RFC1123)
	switch tier {
	case TierOverdue:
		title = "Task overdue"
		body = fmt.Sprintf("'%s' was due %s", task.TaskName, due)
	case TierNear:
		title = "Deadline approaching"
		body = fmt.Sprintf("'%s' is due within 24 hours (%s)", task.TaskName, due)
	case TierUpcoming:
		title = "Upcoming deadline"
		body = fmt.Sprintf("'%s' is due in the next 3 days (%s)", task.TaskName, due)
	}
	return title, body
}
