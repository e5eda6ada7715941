package httpserver

const (
	ErrInvalidJSON    = "invalid json"
	ErrUnknownChannel = "unknown channel"
	ErrDependency     = "dependency error"
)
