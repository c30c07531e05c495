package service

import "github.com/gofiber/fiber/v2"

// serviceError carries an HTTP status so the error middleware can map it
// without string matching.
type serviceError struct {
	status  int
	message string
}

func (e *serviceError) Error() string {
	return e.message
}

func (e *serviceError) StatusCode() int {
	return e.status
}

var (
	// ErrNotReady means the model backends have not finished warming up.
	ErrNotReady = &serviceError{status: fiber.StatusServiceUnavailable, message: "model backends not ready, try again shortly"}

	// ErrSessionBusy means a pipeline run is already in flight for the session.
	ErrSessionBusy = &serviceError{status: fiber.StatusTooManyRequests, message: "a request is already in progress for this session"}
)
