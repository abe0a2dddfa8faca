package fastview

import "html/template"

// EleUpdate addresses one element of the client page by id and carries the
// operations to apply to it.
type EleUpdate struct {
	EleId string `json:"ele_id"`
	Ops   []Op   `json:"ops"`
}

// Op is a single mutation of an element: Key is an attribute name, or the
// reserved string "textContent" to replace the element's inner text.
type Op struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ViewComponent is a self-describing page fragment: it parses its template
// into a parent document and emits element updates as its input stream
// advances.
type ViewComponent interface {
	// Parse adds the component's template to t and returns the name by
	// which the page can reference it. Avoid hyphens in template names.
	Parse(t *template.Template) (name string, err error)
	// Updates exposes the component's outgoing element updates.
	Updates() <-chan []EleUpdate
}
