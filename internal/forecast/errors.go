package forecast

import "fmt"

// ValidationError reports bad caller input. It is returned before any call
// to the prediction service is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid forecast request: %s %s", e.Field, e.Reason)
}

// GatewayError reports a non-2xx response from the prediction service.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("prediction service returned status %d", e.Status)
}

// MalformedResponseError reports a prediction response missing its required
// shape.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed prediction response: %s", e.Reason)
}
