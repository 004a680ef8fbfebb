package latex

type Kind int

const (
	TextKind Kind = iota
	GroupKind
)

// Node is a group tree: either a text without independent groups, or a sequence of groups found in Data.
type Node struct {
	Kind     Kind
	Data     string
	Children []*Node
}

// Len returns number of top level groups, text node has none.
func (n *Node) Len() int {
	if n == nil || n.Kind == TextKind {
		return 0
	}

	return len(n.Children)
}
