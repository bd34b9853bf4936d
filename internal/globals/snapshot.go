package globals

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Snapshot is an immutable copy of the buffers, in first-insertion order.
type Snapshot struct {
	Declarations    []string
	Libraries       []Library
	BuildFlags      []string
	Defines         []Define
	PlatformOptions []Option
}

// Snapshot copies the current contents of every buffer.
func (b *Buffers) Snapshot() Snapshot {
	var s Snapshot
	for p := b.declarations.Oldest(); p != nil; p = p.Next() {
		s.Declarations = append(s.Declarations, p.Value)
	}
	for p := b.libraries.Oldest(); p != nil; p = p.Next() {
		s.Libraries = append(s.Libraries, p.Value)
	}
	s.BuildFlags = keys(b.buildFlags)
	for p := b.defines.Oldest(); p != nil; p = p.Next() {
		s.Defines = append(s.Defines, Define{Name: p.Key, Value: p.Value})
	}
	for p := b.options.Oldest(); p != nil; p = p.Next() {
		s.PlatformOptions = append(s.PlatformOptions, Option{Key: p.Key, Value: p.Value})
	}
	return s
}

func keys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	out := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}
