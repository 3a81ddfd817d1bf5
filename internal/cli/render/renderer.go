package render

// Renderer writes a use case result to the user
type Renderer[T any] interface {
	Render(result T) error
}
