package validation

// Error messages
const (
	ErrMsgSchemaValidation   = "schema validation failed"
	ErrMsgFailedToLoadSchema = "failed to load schema"
	ErrMsgFailedToParseData  = "failed to parse document"
	ErrMsgFailedToReadData   = "failed to read document"
)

// Location used when a violation is on the document root
const rootLocation = "(root)"
