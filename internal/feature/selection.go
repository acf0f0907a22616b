package feature

import (
	"fmt"
	"sort"
)

// Selection is a set of chosen ingredients with quantities plus a
// preparation method.
type Selection struct {
	Quantities map[string]int
	Method     Method
}

func NewSelection(method Method) Selection {
	return Selection{Quantities: make(map[string]int), Method: method}
}

// Add sets the quantity of an ingredient. Quantities must be positive.
func (s *Selection) Add(name string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity for %s must be positive, got %d", name, qty)
	}
	if s.Quantities == nil {
		s.Quantities = make(map[string]int)
	}
	s.Quantities[name] = qty
	return nil
}

func (s *Selection) Remove(name string) bool {
	if _, ok := s.Quantities[name]; !ok {
		return false
	}
	delete(s.Quantities, name)
	return true
}

func (s *Selection) Clear() {
	s.Quantities = make(map[string]int)
}

func (s Selection) Len() int {
	return len(s.Quantities)
}

// IsEmpty reports whether no ingredient has a positive quantity. Entries
// set directly on Quantities with zero or negative amounts do not count.
func (s Selection) IsEmpty() bool {
	for _, qty := range s.Quantities {
		if qty > 0 {
			return false
		}
	}
	return true
}

// Names returns the selected ingredient names sorted alphabetically.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s.Quantities))
	for name := range s.Quantities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy that shares no state with s.
func (s Selection) Clone() Selection {
	q := make(map[string]int, len(s.Quantities))
	for k, v := range s.Quantities {
		q[k] = v
	}
	return Selection{Quantities: q, Method: s.Method}
}
