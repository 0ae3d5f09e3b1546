package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	gamesRecorded       int
	gamesSimulated      int
	gamesUndone         int
	channelResets       int
	recordFailed        int
	recordDurations     []float64
	slashCommands       map[string]int
	slashCommandsFailed map[string]int
	eventsPublished     map[string]int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recordDurations:     make([]float64, 0),
		slashCommands:       make(map[string]int),
		slashCommandsFailed: make(map[string]int),
		eventsPublished:     make(map[string]int),
	}
}

func (m *Mock) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRecorded++
}

func (m *Mock) IncGamesSimulated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesSimulated++
}

func (m *Mock) IncGamesUndone() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesUndone++
}

func (m *Mock) IncChannelResets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelResets++
}

func (m *Mock) IncRecordFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordFailed++
}

func (m *Mock) ObserveRecordDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordDurations = append(m.recordDurations, duration)
}

func (m *Mock) IncSlashCommand(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slashCommands[command]++
}

func (m *Mock) IncSlashCommandFailed(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slashCommandsFailed[command]++
}

func (m *Mock) IncEventsPublished(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[event]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// GamesRecorded returns the number of times IncGamesRecorded was called.
func (m *Mock) GamesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRecorded
}

// GamesSimulated returns the number of times IncGamesSimulated was called.
func (m *Mock) GamesSimulated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesSimulated
}

// GamesUndone returns the number of times IncGamesUndone was called.
func (m *Mock) GamesUndone() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesUndone
}

// ChannelResets returns the number of times IncChannelResets was called.
func (m *Mock) ChannelResets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channelResets
}

// RecordFailed returns the number of times IncRecordFailed was called.
func (m *Mock) RecordFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordFailed
}

// RecordDurations returns every observed record duration.
func (m *Mock) RecordDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.recordDurations...)
}

// SlashCommands returns how often the command was counted.
func (m *Mock) SlashCommands(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slashCommands[command]
}

// SlashCommandsFailed returns how often the command was counted as failed.
func (m *Mock) SlashCommandsFailed(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slashCommandsFailed[command]
}

// EventsPublished returns how often the event was counted as published.
func (m *Mock) EventsPublished(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[event]
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
