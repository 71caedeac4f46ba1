package errs

// Usecase-level sentinel errors shared by the command, query and worker layers.
// Handlers map these onto response codes.
var (
	// Validation errors
	ErrValidation = New("validation failed")

	// Not-found errors
	ErrSlotNotFound    = New("slot not found")
	ErrPolicyNotFound  = New("operating policy not found")
	ErrRequestNotFound = New("request not found")

	// Conflict errors
	ErrSlotConflict   = New("slot conflict")
	ErrPolicyConflict = New("operating policy already exists")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
