// Package deadlock analyzes a process/resource snapshot for deadlock:
// cycle detection on the resource-allocation graph and the Banker's safety check.
package deadlock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/ossim/sim"
)

// Count is the number of units of one resource.
type Count struct {
	Resource sim.PID
	Units    int64
}

// Counts maps resource ids to unit counts, keeping the key order of the source
// document. Graph traversal follows this order, so results are reproducible.
// A repeated key keeps its first position and takes the last value.
type Counts []Count

// Get returns the count for resource, or 0 when absent.
func (c Counts) Get(resource sim.PID) int64 {
	for _, e := range c {
		if e.Resource == resource {
			return e.Units
		}
	}
	return 0
}

func (c *Counts) set(resource sim.PID, units int64) {
	for i := range *c {
		if (*c)[i].Resource == resource {
			(*c)[i].Units = units
			return
		}
	}
	*c = append(*c, Count{Resource: resource, Units: units})
}

func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("resource counts must be an object, got %v", tok)
	}
	out := Counts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("resource %q: %w", key, err)
		}
		units, err := n.Int64()
		if err != nil {
			return fmt.Errorf("resource %q: count must be an integer: %w", key, err)
		}
		out.set(sim.PID(key), units)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Resource))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(e.Units, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Counts) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*c = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: resource counts must be a mapping", node.Line)
	}
	out := Counts{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var units int64
		if err := node.Content[i+1].Decode(&units); err != nil {
			return fmt.Errorf("line %d: resource %q: %w", node.Content[i+1].Line, key, err)
		}
		out.set(sim.PID(key), units)
	}
	*c = out
	return nil
}

// Resource is a resource type with a fixed number of instances.
type Resource struct {
	ID        *sim.PID `json:"id" yaml:"id"`
	Instances *int64   `json:"instances" yaml:"instances"`
}

// Process is a process node of the deadlock model.
// Request feeds cycle detection; Max feeds the Banker's algorithm.
type Process struct {
	ID         *sim.PID `json:"id" yaml:"id"`
	Request    Counts   `json:"request,omitempty" yaml:"request,omitempty"`
	Allocation Counts   `json:"allocation,omitempty" yaml:"allocation,omitempty"`
	Max        Counts   `json:"max,omitempty" yaml:"max,omitempty"`
}

// Request is the transport-agnostic input of both deadlock analyses.
type Request struct {
	Processes []Process  `json:"processes" yaml:"processes"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// Validate checks that every process and resource has an id, ids are unique
// per kind, and every resource declares its instances.
// Allocation exceeding instances is accepted.
func (r Request) Validate() error {
	seen := make(map[sim.PID]bool, len(r.Processes))
	for i, p := range r.Processes {
		field := "processes[" + strconv.Itoa(i) + "].id"
		if p.ID == nil || *p.ID == "" {
			return &sim.ValidationError{Field: field, Reason: "required"}
		}
		if seen[*p.ID] {
			return &sim.ValidationError{Field: field, Reason: fmt.Sprintf("duplicate process id %q", *p.ID)}
		}
		seen[*p.ID] = true
	}
	seen = make(map[sim.PID]bool, len(r.Resources))
	for i, res := range r.Resources {
		prefix := "resources[" + strconv.Itoa(i) + "]"
		if res.ID == nil || *res.ID == "" {
			return &sim.ValidationError{Field: prefix + ".id", Reason: "required"}
		}
		if seen[*res.ID] {
			return &sim.ValidationError{Field: prefix + ".id", Reason: fmt.Sprintf("duplicate resource id %q", *res.ID)}
		}
		seen[*res.ID] = true
		if res.Instances == nil {
			return &sim.ValidationError{Field: prefix + ".instances", Reason: "required"}
		}
	}
	return nil
}
