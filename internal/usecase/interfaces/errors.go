package interfaces

import "errors"

// Errors a repository may return from IOrderRepository.Create.
var (
	// ErrInvalidReference means the order points at a vehicle or a service
	// key that does not exist. Nothing was persisted.
	ErrInvalidReference = errors.New("order references a missing vehicle or service")
	// ErrTooManyLines is returned by stores with a bounded transaction size.
	ErrTooManyLines = errors.New("order has too many lines for a single transaction")
)
