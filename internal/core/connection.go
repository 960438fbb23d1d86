package core

//go:generate mockgen -source=connection.go -destination=mocks/connection_mock.go -package=mocks

// Frame is an encoded outbound payload.
type Frame []byte

// ConnectionID is the transport-assigned identity of one live session.
type ConnectionID string

// Connection abstracts a real-time messaging transport.
// Owned by the adapter; TrySend must never block and Close must be idempotent.
type Connection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []ConnectionID
}
