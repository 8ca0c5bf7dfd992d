package core

// History is the undo stack of mesh snapshots.
// Entries are independent deep copies; it is never empty.
type History struct {
	entries []*Mesh
}

// NewHistory creates a history seeded with a copy of the initial mesh.
func NewHistory(initial *Mesh) *History {
	h := &History{}
	h.Reset(initial)
	return h
}

// Push appends a deep copy of m.
func (h *History) Push(m *Mesh) {
	h.entries = append(h.entries, m.Clone())
}

// Undo drops the newest entry and returns a copy of the new top.
// With only the initial state left it returns ErrNothingToUndo.
func (h *History) Undo() (*Mesh, error) {
	if !h.CanUndo() {
		return nil, ErrNothingToUndo
	}
	h.entries[len(h.entries)-1] = nil
	h.entries = h.entries[:len(h.entries)-1]
	return h.Current(), nil
}

// Reset clears the history and reseeds it with the initial mesh.
func (h *History) Reset(initial *Mesh) {
	h.entries = []*Mesh{initial.Clone()}
}

// CanUndo reports whether there is a fold to undo.
func (h *History) CanUndo() bool {
	return len(h.entries) > 1
}

// Depth returns the number of snapshots, including the initial one.
func (h *History) Depth() int {
	return len(h.entries)
}

// Current returns a copy of the newest snapshot.
func (h *History) Current() *Mesh {
	return h.entries[len(h.entries)-1].Clone()
}
