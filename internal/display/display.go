package display

// Viewer presents a decoded image resource in a window.
type Viewer interface {
	Run() error
}
