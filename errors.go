package newsdesk

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	msgBadRequest     = "Bad request"
	msgInvalidURL     = "Invalid URL"
	msgInternalError  = "Internal server error"
	msgMethodNotAllow = "Method not allowed"
)

// ErrorResponder is implemented by errors that know how to answer the request that
// caused them.
type ErrorResponder interface {
	RespondError(w http.ResponseWriter, r *http.Request) bool
}

// Kind names the entity a NotFoundError refers to.
type Kind string

const (
	KindArticle Kind = "article"
	KindComment Kind = "comment"
	KindTopic   Kind = "topic"
	KindUser    Kind = "user"
)

// Message returns the user facing message for a missing entity of that kind.
func (k Kind) Message() string {
	switch k {
	case KindArticle:
		return "Article not found"
	case KindComment:
		return "Comment not found"
	case KindTopic:
		return "Topic not found"
	case KindUser:
		return "User not found"
	default:
		return "Not found"
	}
}

// InvalidParameterError responds with bad request status code, for malformed or out of
// range query parameters.
type InvalidParameterError struct {
	name string
	err  error
}

func InvalidParameter(name string, err error) *InvalidParameterError {
	return &InvalidParameterError{name: name, err: err}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("InvalidParameter: %v: %v", e.name, e.err)
}

func (e *InvalidParameterError) Unwrap() error { return e.err }

func (e *InvalidParameterError) RespondError(w http.ResponseWriter, r *http.Request) bool {
	respondMsg(w, http.StatusBadRequest, msgBadRequest)
	return true
}

// InvalidIdentifierError responds with bad request status code, for path identifiers
// that are not positive integers.
type InvalidIdentifierError struct {
	raw string
}

func InvalidIdentifier(raw string) *InvalidIdentifierError {
	return &InvalidIdentifierError{raw: raw}
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("InvalidIdentifier: %q", e.raw)
}

func (e *InvalidIdentifierError) RespondError(w http.ResponseWriter, r *http.Request) bool {
	respondMsg(w, http.StatusBadRequest, msgBadRequest)
	return true
}

// InvalidPayloadError responds with bad request status code, listing internally the
// fields that are missing or invalid.
type InvalidPayloadError struct {
	fieldNames []string
	err        error
}

func InvalidPayload(err error, fieldNames ...string) *InvalidPayloadError {
	return &InvalidPayloadError{
		err:        err,
		fieldNames: fieldNames,
	}
}

func (e *InvalidPayloadError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("InvalidPayload: error %v, %v", e.err, e.fieldNames)
	}
	return fmt.Sprintf("InvalidPayload: %v", e.fieldNames)
}

func (e *InvalidPayloadError) Unwrap() error { return e.err }

// Fields returns the names of the offending fields.
func (e *InvalidPayloadError) Fields() []string { return e.fieldNames }

func (e *InvalidPayloadError) RespondError(w http.ResponseWriter, r *http.Request) bool {
	respondMsg(w, http.StatusBadRequest, msgBadRequest)
	return true
}

// NotFoundError responds with not found status code and a message naming the missing
// entity.
type NotFoundError struct {
	Kind Kind
}

func NotFound(kind Kind) *NotFoundError {
	return &NotFoundError{Kind: kind}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("NotFound: %v", e.Kind)
}

// Is matches any NotFoundError of the same kind, so callers can write
// errors.Is(err, NotFound(KindArticle)).
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t.Kind == e.Kind
}

func (e *NotFoundError) RespondError(w http.ResponseWriter, r *http.Request) bool {
	respondMsg(w, http.StatusNotFound, e.Kind.Message())
	return true
}

// StorageError wraps a failure of the underlying database. Its details are logged but
// never sent to the client.
type StorageError struct {
	err error
}

func Storage(err error) *StorageError {
	return &StorageError{err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("StorageError: %v", e.err)
}

func (e *StorageError) Unwrap() error { return e.err }

func (e *StorageError) RespondError(w http.ResponseWriter, r *http.Request) bool {
	respondMsg(w, http.StatusInternalServerError, msgInternalError)
	return true
}

// isDomainError reports whether err already belongs to the taxonomy above.
func isDomainError(err error) bool {
	var responder ErrorResponder
	return errors.As(err, &responder)
}

// storageErr wraps err as a StorageError unless it is already a domain error.
func storageErr(err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return Storage(err)
}
