package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrTarget = "target"
)

// Fetch targets.
const (
	TargetSchedule = "schedule"
	TargetDetail   = "detail"
)
