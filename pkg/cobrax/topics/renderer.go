package topics

// Renderer formats topic content for the terminal.
type Renderer interface {
	// Render formats content loaded from a file with the given extension.
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, _ string) string {
	return content
}
