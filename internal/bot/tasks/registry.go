package tasks

import "context"

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names double as the keys of the scheduler.tasks config section.
const (
	TaskDailyNotifications = "daily_notifications"
	TaskFeedPublish        = "feed_publish"
	TaskSQLMaintenance     = "sql_maintenance"
)

// RegisterAllTasks initializes and returns a map of all registered
// scheduled tasks, keyed by their config names.
func RegisterAllTasks(deps Deps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		TaskDailyNotifications: NewDailyNotificationsTask(deps),
		TaskFeedPublish:        NewFeedPublishTask(deps),
		TaskSQLMaintenance:     newSQLMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
