package distributor

import "fmt"

// ErrQueueFull is returned by SubmitPacket when the ingress queue is at
// capacity. The HTTP layer maps this to 503.
var ErrQueueFull = fmt.Errorf("ingress queue is full")

// ValidationError wraps a packet schema violation. The HTTP layer maps
// this to 422.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
