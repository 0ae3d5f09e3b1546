package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventGameRecorded EventType = "game-recorded"
	EventGameUndone   EventType = "game-undone"
	EventChannelReset EventType = "channel-reset"
)

// GameEvent is the payload published whenever a channel's ratings change.
type GameEvent struct {
	ID           string        `msgpack:"id"`
	Type         EventType     `msgpack:"type"`
	ChannelID    string        `msgpack:"channel_id"`
	TeamID       string        `msgpack:"team_id,omitempty"`
	GameID       int64         `msgpack:"game_id,omitempty"`
	Timestamp    int64         `msgpack:"timestamp"`
	Players      []EventPlayer `msgpack:"players,omitempty"`
	GamesDeleted int           `msgpack:"games_deleted,omitempty"`
}

type EventPlayer struct {
	UserID       string `msgpack:"user_id"`
	RatingBefore int    `msgpack:"rating_before"`
	RatingAfter  int    `msgpack:"rating_after"`
	Position     int    `msgpack:"position"`
	Gambled      bool   `msgpack:"gambled"`
}

// PushMessage is the JSON envelope Pub/Sub push subscriptions POST to an endpoint.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID         string            `json:"messageId"`
		Data       string            `json:"data"` // base64-encoded message payload
		Attributes map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
}
