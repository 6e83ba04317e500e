package world

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

func extractCOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(c.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkCNode(tree.RootNode(), source, &entries)
	return entries, nil
}

func walkCNode(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "function_definition":
			if e, ok := extractCFunction(child, source); ok {
				*entries = append(*entries, e)
			}
		case "struct_specifier":
			if hasBodyField(child) {
				if e, ok := extractCTagged(child, source, KindStruct); ok {
					*entries = append(*entries, e)
				}
			}
		case "enum_specifier":
			if hasBodyField(child) {
				if e, ok := extractCTagged(child, source, KindEnum); ok {
					*entries = append(*entries, e)
				}
			}
		case "union_specifier":
			if hasBodyField(child) {
				if e, ok := extractCTagged(child, source, KindStruct); ok {
					*entries = append(*entries, e)
				}
			}
		case "type_definition":
			if e, ok := extractCTypedef(child, source); ok {
				*entries = append(*entries, e)
			}
		}
	}
}

func extractCFunction(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return OutlineEntry{}, false
	}
	name, ok := extractCDeclaratorName(declarator, source)
	if !ok {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          KindFunction,
		QualifiedName: name,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
	}, true
}

// extractCDeclaratorName walks a (possibly pointer/array/parenthesized)
// declarator chain down to the identifier it names.
func extractCDeclaratorName(n *sitter.Node, source []byte) (string, bool) {
	switch n.Type() {
	case "identifier", "type_identifier", "field_identifier":
		return n.Content(source), true
	case "function_declarator", "pointer_declarator", "parenthesized_declarator", "array_declarator":
		if inner := n.ChildByFieldName("declarator"); inner != nil {
			return extractCDeclaratorName(inner, source)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if name, ok := extractCDeclaratorName(n.Child(i), source); ok {
				return name, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func extractCTagged(n *sitter.Node, source []byte, kind SemanticKind) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          kind,
		QualifiedName: nameNode.Content(source),
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
	}, true
}

func extractCTypedef(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return OutlineEntry{}, false
	}
	name, ok := extractCDeclaratorName(declarator, source)
	if !ok {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          KindTypeAlias,
		QualifiedName: name,
		Signature:     strings.TrimSpace(n.Content(source)),
		Lines:         nodeLineRange(n),
	}, true
}

func hasBodyField(n *sitter.Node) bool {
	return n.ChildByFieldName("body") != nil
}
