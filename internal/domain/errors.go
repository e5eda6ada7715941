package domain

import "strings"

// ValidationError blocks a launch before any network call when required
// campaign fields are empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ConfigurationError blocks a launch when the selected channel has no
// stored credentials. Checked just-in-time, after field validation.
type ConfigurationError struct {
	Channel Channel
}

func (e *ConfigurationError) Error() string {
	return e.Channel.DisplayName() + " configuration missing"
}

// DispatchError wraps a provider error thrown during the batch send.
// The provider message is surfaced verbatim to the operator.
type DispatchError struct {
	Channel Channel
	Err     error
}

func (e *DispatchError) Error() string { return e.Err.Error() }
func (e *DispatchError) Unwrap() error { return e.Err }
