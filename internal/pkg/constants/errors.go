package constants

import "net/http"

// CodedError is an error carrying the HTTP status it should surface as.
// The central echo error handler unwraps to the first CodedError in a chain.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string { return e.msg }
func (e *CodedError) Code() int     { return e.code }

var (
	ErrInvalidRequest = NewCodedError(http.StatusBadRequest, "InvalidRequest: weight must be positive and priority one of cost|speed|carbon|balanced")
	ErrNoRoutesFound  = NewCodedError(http.StatusNotFound, "NoRoutesFound: route discovery returned no candidates")
	ErrNoViableRoutes = NewCodedError(http.StatusBadGateway, "NoViableRoutes: emissions estimation failed for every candidate")
	ErrSourceTimeout  = NewCodedError(http.StatusGatewayTimeout, "SourceTimeout: external source call exceeded its deadline")

	ErrDBNotFound = NewCodedError(http.StatusNotFound, "not found")
)
