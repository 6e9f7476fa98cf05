package dispatch

// Error codes for dispatch operations.
const (
	// CodeHandlerResolution is returned by Send when no handler could be resolved.
	CodeHandlerResolution = "HANDLER_RESOLUTION_FAILED"

	// CodeInvalidMessageShape is returned by Send for values that are not queries or commands.
	CodeInvalidMessageShape = "INVALID_MESSAGE_SHAPE"

	// CodeInvalidHandlerContract is returned when a resolved handler has the wrong type.
	CodeInvalidHandlerContract = "INVALID_HANDLER_CONTRACT"

	// CodeResultTypeMismatch is returned by Send in strict mode when the handler's
	// result type differs from the requested one.
	CodeResultTypeMismatch = "RESULT_TYPE_MISMATCH"

	// CodeEventHandlerFailed is returned when at least one event handler failed.
	CodeEventHandlerFailed = "EVENT_HANDLER_FAILED"
)
