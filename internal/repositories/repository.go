package repositories

import "context"

// Repository aggregates the per-entity repository interfaces.
type Repository interface {
	User() UserRepository
	Availability() AvailabilityRepository
	Student() StudentRepository
	VisitLog() VisitLogRepository
	Todo() TodoRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn with a Repository bound to a single database
	// transaction; any error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
