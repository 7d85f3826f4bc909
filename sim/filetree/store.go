// Package filetree holds the in-memory directory tree shown alongside the
// simulators. The Store is the only owner of the tree; callers receive copies.
package filetree

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Kind is the node type.
type Kind string

const (
	Dir  Kind = "dir"
	File Kind = "file"
)

var (
	ErrInvalidParent = errors.New("invalid parent directory")
	ErrNameExists    = errors.New("name already exists")
	ErrDeleteRoot    = errors.New("cannot delete root")
	ErrInvalidPath   = errors.New("invalid path")
	ErrInvalidNode   = errors.New("invalid node")
)

// Node is a directory or file. Only directories have children.
type Node struct {
	Type     Kind
	Name     string
	Children []*Node
}

func (n *Node) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type     Kind     `json:"type"`
		Name     string   `json:"name"`
		Children *[]*Node `json:"children,omitempty"`
	}
	w := wire{Type: n.Type, Name: n.Name}
	if n.Type == Dir {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		w.Children = &children
	}
	return json.Marshal(w)
}

func (n *Node) clone() *Node {
	c := &Node{Type: n.Type, Name: n.Name}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}

func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// DefaultTree returns a fresh copy of the tree a Store starts with and resets to.
func DefaultTree() *Node {
	return &Node{Type: Dir, Name: "/", Children: []*Node{
		{Type: Dir, Name: "home", Children: []*Node{{Type: File, Name: "readme.txt"}}},
		{Type: Dir, Name: "var", Children: []*Node{}},
		{Type: File, Name: "boot.log"},
	}}
}

// Store guards the tree with a mutex; it is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	root *Node
}

// NewStore creates a Store holding DefaultTree().
func NewStore() *Store {
	return &Store{root: DefaultTree()}
}

// Snapshot returns a deep copy of the current tree.
func (s *Store) Snapshot() *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root.clone()
}

// lookup walks path from the root through directories only.
func (s *Store) lookup(path []string) *Node {
	n := s.root
	for _, part := range path {
		if n.Type != Dir {
			return nil
		}
		n = n.child(part)
		if n == nil {
			return nil
		}
	}
	return n
}

// Create adds a node named name under the directory at path and returns the new tree.
func (s *Store) Create(path []string, name string, kind Kind) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidNode)
	}
	if kind == "" {
		kind = File
	}
	if kind != Dir && kind != File {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidNode, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.lookup(path)
	if parent == nil || parent.Type != Dir {
		return nil, ErrInvalidParent
	}
	if parent.child(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrNameExists, name)
	}
	node := &Node{Type: kind, Name: name}
	if kind == Dir {
		node.Children = []*Node{}
	}
	parent.Children = append(parent.Children, node)
	return s.root.clone(), nil
}

// Delete removes the node at path (last element is the name) and returns the new tree.
// Removing a name that does not exist under a valid parent is a no-op.
func (s *Store) Delete(path []string) (*Node, error) {
	if len(path) == 0 {
		return nil, ErrDeleteRoot
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.lookup(path[:len(path)-1])
	if parent == nil || parent.Type != Dir {
		return nil, ErrInvalidPath
	}
	name := path[len(path)-1]
	kept := parent.Children[:0]
	for _, c := range parent.Children {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	parent.Children = kept
	return s.root.clone(), nil
}

// Reset restores DefaultTree() and returns it.
func (s *Store) Reset() *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = DefaultTree()
	return s.root.clone()
}
