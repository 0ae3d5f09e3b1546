package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGamesRecorded()
	IncGamesSimulated()
	IncGamesUndone()
	IncChannelResets()
	IncRecordFailed()
	ObserveRecordDuration(duration float64)
	IncSlashCommand(command string)
	IncSlashCommandFailed(command string)
	IncEventsPublished(event string)
	SetStartupTime(duration float64)
}
