package domain

// Label is a loose tag shared by notes and tasks. Label ids stored on a
// note or task are cleaned up when the label is deleted.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
