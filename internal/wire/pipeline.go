package wire

import (
	"errors"
	"image/color"
	"log"

	"gatos/internal/circuit"
)

// Outcome describes what happened to one pending wire during a Step.
type Outcome struct {
	Wire     circuit.Handle
	Nodes    int            // route length after the pass
	Done     bool           // the wire left the pending set
	Artifact circuit.Handle // set when Done and rasterized
	Err      error          // set when Done and dropped
}

// Pipeline drives pending wires through normalization and rasterization,
// one normalization pass per wire per Step.
type Pipeline struct {
	Pitch float64
	Color color.Color
}

// NewPipeline creates a pipeline with the default wire colour.
func NewPipeline(pitch float64) *Pipeline {
	return &Pipeline{Pitch: pitch, Color: Color}
}

// Step runs one pass over every pending wire of c. Wires that converge are
// rasterized in the same step and released from the arena; the rest keep
// their longer route and wait for the next step.
func (p *Pipeline) Step(c *circuit.Circuit) []Outcome {
	pending := c.Pending()
	outcomes := make([]Outcome, 0, len(pending))

	for _, h := range pending {
		w, ok := c.Wires.Get(h)
		if !ok {
			c.ClearPending(h)
			continue
		}

		route, converged := Normalize(c.NodePositions(h), p.Pitch)
		if !converged {
			nodes := make([]circuit.Handle, len(route))
			for i, n := range route {
				if n.IsVia() {
					nodes[i] = c.AddNode(n.Position)
				} else {
					nodes[i] = w.Nodes[n.Source]
				}
			}
			c.SetRoute(h, nodes)
			outcomes = append(outcomes, Outcome{Wire: h, Nodes: len(nodes)})
			continue
		}

		out := Outcome{Wire: h, Nodes: len(route), Done: true}
		art, err := Rasterize(Positions(route), p.Pitch, p.Color)
		c.ReleaseWire(h)
		if err != nil {
			if errors.Is(err, ErrDegenerateWire) {
				log.Printf("Wire: dropping wire %d: %v", h, err)
			}
			out.Err = err
		} else {
			out.Artifact = c.AddArtifact(art)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}
