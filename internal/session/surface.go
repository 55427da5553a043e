package session

import "github.com/san-kum/periodix/internal/scene"

// Surface is where a session draws.
type Surface interface {
	// Check reports whether the surface can render at all.
	Check() error
	// Size is the current drawable size in cells or pixels. A zero size
	// means the surface has not been laid out yet.
	Size() (w, h int)
	Resize(w, h int)
	Render(root *scene.Node, view *scene.View) error
	// ShowError replaces the visual with a message.
	ShowError(msg string)
	Release()
}
