package wrapper

// CodePanicRecovered is the code of failures produced from a handler panic.
const CodePanicRecovered = "PANIC_RECOVERED"
