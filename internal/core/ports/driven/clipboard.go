package driven

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	// ReadText returns the clipboard contents.
	ReadText() (string, error)

	// WriteText replaces the clipboard contents.
	WriteText(text string) error
}
