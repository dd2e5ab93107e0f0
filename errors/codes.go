package errors

// ErrorCode identifies an application-level error class.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_FORBIDDEN        ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1006

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = 2001
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 2002

	// Upload / validation
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE ErrorCode = 3000
	ErrorCode_UPLOAD_TOO_LARGE        ErrorCode = 3001
	ErrorCode_UPLOAD_MISSING_FILE     ErrorCode = 3002

	// Pipeline
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 4000
	ErrorCode_PERSISTENCE_FAILED   ErrorCode = 4001

	// Insight generation
	ErrorCode_GENERATION_FAILED    ErrorCode = 5000
	ErrorCode_TRANSCRIPT_EMPTY     ErrorCode = 5001

	// Storage / integration
	ErrorCode_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_DB_FAILED      ErrorCode = 6001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_FORBIDDEN:                "FORBIDDEN",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS: "AUTH_INVALID_CREDENTIALS",
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE:  "UPLOAD_UNSUPPORTED_TYPE",
	ErrorCode_UPLOAD_TOO_LARGE:         "UPLOAD_TOO_LARGE",
	ErrorCode_UPLOAD_MISSING_FILE:      "UPLOAD_MISSING_FILE",
	ErrorCode_TRANSCRIPTION_FAILED:     "TRANSCRIPTION_FAILED",
	ErrorCode_PERSISTENCE_FAILED:       "PERSISTENCE_FAILED",
	ErrorCode_GENERATION_FAILED:        "GENERATION_FAILED",
	ErrorCode_TRANSCRIPT_EMPTY:         "TRANSCRIPT_EMPTY",
	ErrorCode_STORAGE_FAILED:           "STORAGE_FAILED",
	ErrorCode_DB_FAILED:                "DB_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
