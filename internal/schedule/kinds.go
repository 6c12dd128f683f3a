package schedule

// TaskKind tags a due task with the kind of care it calls for. The string
// values double as template keys in the presentation layer and as type
// tags in the notification feed.
type TaskKind string

const (
	TaskDeworming      TaskKind = "deworming"
	TaskVitamins       TaskKind = "vitamins"
	TaskCoccidiosis    TaskKind = "coccidiosis"
	TaskSanitization   TaskKind = "sanitization"
	TaskWaterStation   TaskKind = "water_station"
	TaskWeeklyCleaning TaskKind = "weekly_cleaning"
	TaskSoilTurning    TaskKind = "soil_turning"
	TaskVentilation    TaskKind = "ventilation"
	TaskFeederCleaning TaskKind = "feeder_cleaning"
	TaskFertilizer     TaskKind = "fertilizer"

	TaskPipeChangeWater TaskKind = "pipe_waterer_change_water"
	TaskPipeRinse       TaskKind = "pipe_waterer_rinse"
	TaskPipeSanitize    TaskKind = "pipe_waterer_sanitize"
	TaskPipeDeepClean   TaskKind = "pipe_waterer_deep_clean"
)

// PipeTaskKind maps a pipe-waterer sub-kind to its task kind tag.
func PipeTaskKind(p PipeTask) TaskKind {
	switch p {
	case PipeChangeWater:
		return TaskPipeChangeWater
	case PipeRinse:
		return TaskPipeRinse
	case PipeSanitize:
		return TaskPipeSanitize
	case PipeDeepClean:
		return TaskPipeDeepClean
	default:
		return TaskKind("pipe_waterer_" + string(p))
	}
}

// DueTask is the engine's raw verdict for one due task on one date,
// before the agenda builder attaches timing and priority.
type DueTask struct {
	Kind TaskKind

	// Deworming.
	Drug string

	// Vitamins and coccidiosis.
	Reason Reason

	// Fertilization.
	Tree       string
	Fertilizer string
	AmountKg   float64
}
