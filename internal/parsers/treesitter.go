// Package parsers extracts structural item trees from Rust and Python
// sources using tree-sitter grammars. Docstrings are parsed into their
// structured form at extraction time; everything downstream works on
// the model types only.
package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// childText extracts the text of a named field child, or "".
func childText(node *sitter.Node, field string, source []byte) string {
	return extractNodeText(node.ChildByFieldName(field), source)
}

// namedChildren collects a node's children of the given kind.
func namedChildren(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}
