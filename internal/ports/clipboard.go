package ports

// Best-effort sink for copying text to the platform clipboard.
type ClipboardSink interface {
	// Copy text; a non-nil error means nothing was copied.
	WriteText(text string) error
}
