package renderer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// Slots carries the attachment textures resolved for this frame: the
// swapchain color target and the shared depth buffer, keyed by slot name.
type Slots map[metadata.AttachmentSlot]metadata.TextureID

// Node is one render graph node, executed once per frame in dependency
// order.
type Node interface {
	// Name identifies the node inside the graph. Must be unique.
	Name() string
	// Execute runs the node against the live attachments.
	Execute(ctx ResourceContext, slots Slots) error
}

// Graph is a minimal render graph: named nodes plus "runs after" edges.
// Node registration is idempotent so plugins can be registered twice
// without duplicating work.
type Graph struct {
	mu    sync.Mutex
	nodes map[string]Node
	after map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		after: make(map[string][]string),
	}
}

// AddNode registers a node. Returns false when a node with the same name
// is already present; the existing node is kept.
func (g *Graph) AddNode(node Node) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[node.Name()]; exists {
		return false
	}
	g.nodes[node.Name()] = node
	return true
}

// HasNode reports whether a node with the given name is registered.
func (g *Graph) HasNode(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, exists := g.nodes[name]
	return exists
}

// Node returns the registered node with the given name, or nil.
func (g *Graph) Node(name string) Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodes[name]
}

// AddEdge declares that node runs after dependency. Both must exist.
func (g *Graph) AddEdge(dependency, node string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[dependency]; !ok {
		return fmt.Errorf("render graph: unknown node %q", dependency)
	}
	if _, ok := g.nodes[node]; !ok {
		return fmt.Errorf("render graph: unknown node %q", node)
	}
	for _, existing := range g.after[node] {
		if existing == dependency {
			return nil
		}
	}
	g.after[node] = append(g.after[node], dependency)
	return nil
}

// Execute runs every node once, respecting edges. Node order between
// unrelated nodes is name sorted for determinism.
func (g *Graph) Execute(ctx ResourceContext, slots Slots) error {
	order, err := g.order()
	if err != nil {
		return err
	}
	for _, node := range order {
		if err := node.Execute(ctx, slots); err != nil {
			return fmt.Errorf("render graph: node %q: %w", node.Name(), err)
		}
	}
	return nil
}

func (g *Graph) order() ([]Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	var order []Node
	state := make(map[string]int) // 0 unvisited, 1 visiting, 2 done

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 2:
			return nil
		case 1:
			return fmt.Errorf("render graph: cycle through node %q", name)
		}
		state[name] = 1
		deps := append([]string(nil), g.after[name]...)
		sort.Strings(deps)
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = 2
		order = append(order, g.nodes[name])
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
