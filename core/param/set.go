package param

import (
	"sort"
	"sync"
)

// Source resolves parameter tables by name.
type Source interface {
	Table(name string) (Reader, bool)
}

// Sink resolves gradient tables by name.
type Sink interface {
	Accumulator(name string) (Accumulator, bool)
}

// Set is a named collection of dense tables. It serves as both a parameter
// Source and a gradient Sink.
type Set map[string]*Dense

func (s Set) Table(name string) (Reader, bool) {
	t, ok := s[name]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func (s Set) Accumulator(name string) (Accumulator, bool) {
	t, ok := s[name]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// Names returns the table names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ZerosLike returns a set with a zeroed table of identical shape per entry.
func ZerosLike(s Set) Set {
	out := make(Set, len(s))
	for k, t := range s {
		out[k] = NewDense(k, t.Shape()...)
	}
	return out
}

// Clone deep-copies every table.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, t := range s {
		out[k] = t.Clone()
	}
	return out
}

// Merge adds every table of o into the same-named table of s. Tables only in
// o are copied in.
func (s Set) Merge(o Set) error {
	for _, k := range o.Names() {
		src := o[k]
		dst, ok := s[k]
		if !ok {
			s[k] = src.Clone()
			continue
		}
		if err := dst.AddDense(src); err != nil {
			return err
		}
	}
	return nil
}

// Zero clears every table.
func (s Set) Zero() {
	for _, t := range s {
		t.Zero()
	}
}

// Locked serializes every Add made through the returned Sink with one mutex,
// so a single gradient set can be shared by concurrent counters.
func Locked(sink Sink) Sink {
	return &lockedSink{sink: sink}
}

type lockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func (l *lockedSink) Accumulator(name string) (Accumulator, bool) {
	a, ok := l.sink.Accumulator(name)
	if !ok {
		return nil, false
	}
	return lockedAcc{mu: &l.mu, acc: a}, true
}

type lockedAcc struct {
	mu  *sync.Mutex
	acc Accumulator
}

func (a lockedAcc) Shape() []int { return a.acc.Shape() }

func (a lockedAcc) Add(v float64, idx ...int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acc.Add(v, idx...)
}
