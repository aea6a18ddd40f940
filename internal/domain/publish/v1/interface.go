package publishv1

import "context"

// TickPublisher defines the interface for publishing merged tick events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=publishv1_mock
type TickPublisher interface {
	// PublishTickEvent publishes a tick event to the configured topic.
	PublishTickEvent(ctx context.Context, event *TickEvent) error
}
