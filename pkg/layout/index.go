package layout

// SpatialIndex holds the placed bubbles in insertion order with constant-time
// lookup by id. It replaces the pair of manually mirrored structures the
// layout grew from: one collection, one owner, no drift between a render list
// and a lookup map.
type SpatialIndex struct {
	order []string
	nodes map[string]*BubbleNode
}

func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{nodes: make(map[string]*BubbleNode)}
}

func (ix *SpatialIndex) Len() int {
	return len(ix.order)
}

// Insert adds a node, or replaces it in place when the id is already present.
// Replacement keeps the original insertion position.
func (ix *SpatialIndex) Insert(n *BubbleNode) {
	if n == nil || n.ID == "" {
		return
	}
	if _, ok := ix.nodes[n.ID]; !ok {
		ix.order = append(ix.order, n.ID)
	}
	ix.nodes[n.ID] = n
}

func (ix *SpatialIndex) Get(id string) (*BubbleNode, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// ByContact finds the bubble for a contact. Contacts hold at most one bubble,
// so the first match is the only match.
func (ix *SpatialIndex) ByContact(contactID string) (*BubbleNode, bool) {
	for _, id := range ix.order {
		if n := ix.nodes[id]; n.ContactID == contactID {
			return n, true
		}
	}
	return nil, false
}

func (ix *SpatialIndex) Remove(id string) bool {
	if _, ok := ix.nodes[id]; !ok {
		return false
	}
	delete(ix.nodes, id)
	for i, existing := range ix.order {
		if existing == id {
			ix.order = append(ix.order[:i], ix.order[i+1:]...)
			break
		}
	}
	return true
}

// Nodes returns the bubbles in insertion order. The slice is fresh on every
// call; the nodes are shared.
func (ix *SpatialIndex) Nodes() []*BubbleNode {
	out := make([]*BubbleNode, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.nodes[id])
	}
	return out
}
