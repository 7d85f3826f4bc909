package deadlock

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ossim/sim"
)

// NodeKind distinguishes process and resource vertices of the allocation graph.
type NodeKind int

const (
	ProcessNode NodeKind = iota
	ResourceNode
)

// Node is a vertex of the resource-allocation graph.
// Processes and resources live in separate namespaces, so "1" the process and
// "1" the resource are different vertices.
type Node struct {
	Kind NodeKind
	ID   sim.PID
}

// Graph is a directed resource-allocation graph.
type Graph struct {
	order []Node // vertices with outgoing edges, in first-insertion order
	edges map[Node][]Node
}

// BuildGraph adds a request edge P→R for every positive request count and an
// allocation edge R→P for every positive allocation count.
func BuildGraph(procs []Process) *Graph {
	g := &Graph{edges: make(map[Node][]Node)}
	for _, p := range procs {
		pn := Node{Kind: ProcessNode, ID: *p.ID}
		for _, c := range p.Request {
			if c.Units > 0 {
				g.addEdge(pn, Node{Kind: ResourceNode, ID: c.Resource})
			}
		}
		for _, c := range p.Allocation {
			if c.Units > 0 {
				g.addEdge(Node{Kind: ResourceNode, ID: c.Resource}, pn)
			}
		}
	}
	return g
}

func (g *Graph) addEdge(from, to Node) {
	if _, ok := g.edges[from]; !ok {
		g.order = append(g.order, from)
	}
	g.edges[from] = append(g.edges[from], to)
}

// Neighbors returns the successors of n in insertion order.
func (g *Graph) Neighbors(n Node) []Node {
	return g.edges[n]
}

type frame struct {
	node Node
	next int // index of the next neighbor to explore
}

// FindCycle runs a depth-first traversal from every unvisited vertex in
// insertion order and stops at the first back edge into the traversal path.
// It returns every vertex on the path from the traversal root down to the
// back edge, which contains the cycle but may also include the path leading
// into it. Returns nil when the graph is acyclic.
func (g *Graph) FindCycle() []Node {
	seen := make(map[Node]bool, len(g.order))
	onPath := make(map[Node]bool)
	for _, root := range g.order {
		if seen[root] {
			continue
		}
		seen[root] = true
		onPath[root] = true
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.edges[top.node]
			if top.next >= len(succ) {
				onPath[top.node] = false
				stack = stack[:len(stack)-1]
				continue
			}
			nb := succ[top.next]
			top.next++
			if onPath[nb] {
				path := make([]Node, len(stack))
				for i, f := range stack {
					path[i] = f.node
				}
				return path
			}
			if seen[nb] {
				continue
			}
			seen[nb] = true
			onPath[nb] = true
			stack = append(stack, frame{node: nb})
		}
	}
	return nil
}

// CycleResult is the outcome of cycle detection.
type CycleResult struct {
	HasCycle   bool      `json:"hasCycle"`
	CycleNodes []sim.PID `json:"cycleNodes"`
}

// DetectCycle validates the request and reports whether its allocation graph has a cycle.
func DetectCycle(req Request) (*CycleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	g := BuildGraph(req.Processes)
	path := g.FindCycle()
	res := &CycleResult{HasCycle: path != nil, CycleNodes: make([]sim.PID, 0, len(path))}
	for _, n := range path {
		res.CycleNodes = append(res.CycleNodes, n.ID)
	}
	logrus.Debugf("rag: %d vertices with edges, hasCycle=%v, cycleNodes=%v", len(g.order), res.HasCycle, res.CycleNodes)
	return res, nil
}
