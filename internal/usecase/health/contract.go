package health

import "context"

// EngineProbe reports search engine availability.
type EngineProbe interface {
	Health(ctx context.Context) bool
}

// Pinger checks an optional dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
