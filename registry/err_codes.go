package registry

// Error codes for registry operations.
const (
	// CodeHandlerNotFound is returned when no handler is registered for a contract.
	CodeHandlerNotFound = "HANDLER_NOT_FOUND"

	// CodeNilHandler is returned by Build when a nil handler or factory was registered.
	CodeNilHandler = "NIL_HANDLER"

	// CodeDuplicateHandler is returned by Build when a contract got more than one handler.
	CodeDuplicateHandler = "DUPLICATE_HANDLER"

	// CodeAmbiguousShape is returned by Build when a message type declares several shapes.
	CodeAmbiguousShape = "AMBIGUOUS_MESSAGE_SHAPE"

	// CodeMessageTypeMismatch is returned when a handler is invoked with a message of another type.
	CodeMessageTypeMismatch = "MESSAGE_TYPE_MISMATCH"

	// CodeInvalidHandler is returned when a stored instance does not implement its contract.
	CodeInvalidHandler = "INVALID_HANDLER"
)
