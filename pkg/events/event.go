package events

import "time"

// Event defines the contract for all system events published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHAT_TURN_LOGGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by this service.
const (
	TypeChatTurnLogged    = "CHAT_TURN_LOGGED"
	TypeDocumentProcessed = "DOCUMENT_PROCESSED"
	TypeGenerationFailed  = "GENERATION_FAILED"
)

// ChatTurnLogged reports a persisted conversation turn.
func ChatTurnLogged(sessionID, modelTag string) Event {
	return BaseEvent{
		Type: TypeChatTurnLogged,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"model_tag":  modelTag,
		},
		OccurredAt: time.Now(),
	}
}

// DocumentProcessed reports a knowledge file reaching a terminal ingest state.
func DocumentProcessed(fileID, filename, status string, chunks int) Event {
	return BaseEvent{
		Type: TypeDocumentProcessed,
		Data: map[string]interface{}{
			"file_id":  fileID,
			"filename": filename,
			"status":   status,
			"chunks":   chunks,
		},
		OccurredAt: time.Now(),
	}
}

// GenerationFailed reports a model or persistence failure that was hidden
// from the end user behind the fallback answer.
func GenerationFailed(sessionID, stage, reason string) Event {
	return BaseEvent{
		Type: TypeGenerationFailed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"stage":      stage,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
