package bff

// resolverError carries a GraphQL extension code. Downstream failures are
// always re-wrapped into one of these; raw upstream error bodies never
// reach the client.
type resolverError struct {
	message string
	code    string
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.code,
	}
}

func errUnauthorized() error {
	return &resolverError{message: "Unauthorized", code: "UNAUTHORIZED"}
}

func errForbidden() error {
	return &resolverError{message: "Forbidden", code: "FORBIDDEN"}
}

func errInternal(message string) error {
	return &resolverError{message: message, code: "INTERNAL_SERVER_ERROR"}
}
