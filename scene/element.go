package scene

import (
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Element is an addressable node in a scene with a datum, a colour and
// a set of numeric attributes.
type Element struct {
	ID    string
	Datum interface{}

	mu     sync.RWMutex
	colour colorful.Color
	attrs  map[string]float64
}

// NewElement creates an Element instance.
func NewElement(id string, datum interface{}, colour colorful.Color) *Element {
	e := new(Element)
	e.ID = id
	e.Datum = datum
	e.colour = colour
	e.attrs = make(map[string]float64)
	return e
}

// Colour returns the current colour of the element.
func (e *Element) Colour() colorful.Color {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.colour
}

// SetColour replaces the colour of the element.
func (e *Element) SetColour(c colorful.Color) {
	e.mu.Lock()
	e.colour = c
	e.mu.Unlock()
}

// Attr returns a numeric attribute, zero if it was never set.
func (e *Element) Attr(name string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}

func (e *Element) SetAttr(name string, v float64) {
	e.mu.Lock()
	e.attrs[name] = v
	e.mu.Unlock()
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]float64, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// AttrNames returns the attribute names in sorted order.
func (e *Element) AttrNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
