package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeLeadNotFound = "LEAD_NOT_FOUND"
)

func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeLeadNotFound
}

func IsValidationError(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeValidation
}
