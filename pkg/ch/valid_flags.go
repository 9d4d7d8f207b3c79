package ch

// ValidFlags gives O(1) amortized "reset all" semantics for a per-node
// scratch array without zeroing memory proportional to the number of
// nodes on every query: each slot stores the epoch it was last touched in,
// and a slot is valid only if its stamp matches the current epoch.
type ValidFlags struct {
	epoch  uint32
	stamps []uint32
}

// NewValidFlags allocates flags for numNodes nodes, all initially invalid.
func NewValidFlags(numNodes int) *ValidFlags {
	return &ValidFlags{epoch: 1, stamps: make([]uint32, numNodes)}
}

// IsValid reports whether node was marked valid since the last InvalidateAll.
func (f *ValidFlags) IsValid(node int) bool {
	return f.stamps[node] == f.epoch
}

// SetValid marks node valid for the current epoch.
func (f *ValidFlags) SetValid(node int) {
	f.stamps[node] = f.epoch
}

// InvalidateAll marks every node invalid again. It is O(1) except for the
// rare epoch wraparound, where stamps are reinitialized once.
func (f *ValidFlags) InvalidateAll() {
	f.epoch++
	if f.epoch == 0 {
		for i := range f.stamps {
			f.stamps[i] = 0
		}
		f.epoch = 1
	}
}
