package resource

// AllFiles is the file filter value that matches every entry.
const AllFiles = "All files"

// Predicate decides whether an entry is part of a view.
type Predicate func(*Entry) bool

// ByFile matches entries loaded from the file with the given identifier, or
// every entry when id is AllFiles.
func ByFile(id string) Predicate {
	if id == AllFiles {
		return func(*Entry) bool { return true }
	}
	return func(e *Entry) bool { return e.SourceFile() == id }
}

// ByName matches entries named exactly name, in any file.
func ByName(name string) Predicate {
	return func(e *Entry) bool { return e.Name == name }
}

// Source is anything that exposes an ordered entry collection.
type Source interface {
	Entries() []*Entry
}

// Entries adapts a plain slice to Source.
type Entries []*Entry

// Entries returns the slice itself.
func (e Entries) Entries() []*Entry { return e }

// View is a filtered projection over a Source. It stores indices into the
// source rather than copies, so edits made through At are visible everywhere.
// Indices are only recomputed by SetPredicate and Refresh.
type View struct {
	src  Source
	pred Predicate
	idx  []int
}

// NewView creates a view over src. A nil predicate matches everything.
func NewView(src Source, pred Predicate) *View {
	v := &View{src: src}
	v.SetPredicate(pred)
	return v
}

// FilterByFile returns a view of the entries of one file, or all of them.
func FilterByFile(src Source, id string) *View {
	return NewView(src, ByFile(id))
}

// FilterByName returns a view of every entry named name.
func FilterByName(src Source, name string) *View {
	return NewView(src, ByName(name))
}

// SetPredicate replaces the predicate and re-evaluates it over the source.
func (v *View) SetPredicate(pred Predicate) {
	if pred == nil {
		pred = ByFile(AllFiles)
	}
	v.pred = pred
	v.Refresh()
}

// Refresh re-evaluates the current predicate, e.g. after the source reloaded.
func (v *View) Refresh() {
	entries := v.src.Entries()
	v.idx = v.idx[:0]
	for i, e := range entries {
		if v.pred(e) {
			v.idx = append(v.idx, i)
		}
	}
}

// Len returns the number of entries in the view.
func (v *View) Len() int {
	return len(v.idx)
}

// At returns the i-th entry of the view, or nil when out of range.
func (v *View) At(i int) *Entry {
	if i < 0 || i >= len(v.idx) {
		return nil
	}
	entries := v.src.Entries()
	if v.idx[i] >= len(entries) {
		return nil
	}
	return entries[v.idx[i]]
}

// Entries returns the entries currently in the view.
func (v *View) Entries() []*Entry {
	entries := v.src.Entries()
	out := make([]*Entry, 0, len(v.idx))
	for _, i := range v.idx {
		if i < len(entries) {
			out = append(out, entries[i])
		}
	}
	return out
}

// IndexOf returns the position of e in the view, or -1.
func (v *View) IndexOf(e *Entry) int {
	entries := v.src.Entries()
	for pos, i := range v.idx {
		if i < len(entries) && entries[i] == e {
			return pos
		}
	}
	return -1
}
