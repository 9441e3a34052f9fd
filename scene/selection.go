package scene

// Node is the evaluation context handed to tween factories and tween
// functions: the element, its datum and its index in the selection.
type Node struct {
	Element *Element
	Datum   interface{}
	Index   int
}

// A Selection is an ordered set of elements.
type Selection []*Element

// Each calls fn for every element in order.
func (s Selection) Each(fn func(n Node)) {
	for i, e := range s {
		fn(Node{Element: e, Datum: e.Datum, Index: i})
	}
}

// EachErr is Each but stops at the first error.
func (s Selection) EachErr(fn func(n Node) error) error {
	for i, e := range s {
		if err := fn(Node{Element: e, Datum: e.Datum, Index: i}); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the element with the given id.
func (s Selection) Find(id string) (*Element, bool) {
	for _, e := range s {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// IDs lists the element ids in selection order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s))
	for i, e := range s {
		ids[i] = e.ID
	}
	return ids
}
