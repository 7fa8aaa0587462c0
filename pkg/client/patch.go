package client

import "fmt"

// Patch builds a partial-update payload out of explicitly enabled fields.
// Fields never enabled are absent from the payload, so the server leaves them
// untouched.
type Patch struct {
	order   []string
	payload map[string]any
	old     map[string]any
}

func NewPatch() *Patch {
	return &Patch{
		payload: map[string]any{},
		old:     map[string]any{},
	}
}

// Enable includes a field in the outgoing payload, recording its previous
// value for the change summary.
func (p *Patch) Enable(field string, oldValue, newValue any) *Patch {
	if _, seen := p.payload[field]; !seen {
		p.order = append(p.order, field)
	}
	p.payload[field] = newValue
	p.old[field] = oldValue
	return p
}

func (p *Patch) Empty() bool {
	return len(p.payload) == 0
}

// Payload is the map to send as the PATCH body.
func (p *Patch) Payload() map[string]any {
	return p.payload
}

// Summary renders one human-readable line per enabled field, in the order the
// fields were enabled.
func (p *Patch) Summary() []string {
	lines := make([]string, 0, len(p.order))
	for _, field := range p.order {
		lines = append(lines, fmt.Sprintf(
			"Se cambiará el campo %s de %v a %v",
			field, p.old[field], p.payload[field],
		))
	}
	return lines
}
