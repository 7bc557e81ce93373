package errors

// ErrorResponse is the standardized error body returned by the API.
// Details carries field-level messages for validation failures.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// Stable machine-readable error codes.
const (
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// New builds an ErrorResponse from a message and code.
func New(message, code string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}

// NewValidation builds a validation ErrorResponse carrying per-rule details.
func NewValidation(message string, details []string) ErrorResponse {
	return ErrorResponse{Error: message, Code: CodeValidationFailed, Details: details}
}
