package ports

// Native share mechanism (e.g. a platform share sheet).
type ShareTarget interface {
	// Present the share UI. An error means the mechanism is unavailable
	// and callers fall back to plain links.
	Share(title, text, url string) error
}
