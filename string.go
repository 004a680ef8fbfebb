package latex

// String returns text of a node: the text itself for text nodes and the source of the decomposed text for groups.
func String(node *Node) string {
	if node == nil {
		return ""
	}

	return node.Data
}
