package components

// UIState represents the current interaction state of a UI element.
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the pointer is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being pressed or dragged.
	UIClicked
)

// UIComponent tracks the interaction state of a UI element.
// The render system uses it to pick the idle / hover / pressed color of a slider handle.
type UIComponent struct {
	State UIState
}
