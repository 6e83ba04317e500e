package world

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

func extractRustOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(rust.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkRustNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkRustNode(n *sitter.Node, source []byte, implTypeName string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "function_item":
			if e, ok := extractRustFunction(child, source, implTypeName); ok {
				*entries = append(*entries, e)
			}
		case "struct_item":
			if e, ok := extractRustNamedItem(child, source, KindStruct); ok {
				*entries = append(*entries, e)
			}
		case "enum_item":
			if e, ok := extractRustNamedItem(child, source, KindEnum); ok {
				*entries = append(*entries, e)
			}
		case "trait_item":
			if e, ok := extractRustNamedItem(child, source, KindTrait); ok {
				*entries = append(*entries, e)
			}
		case "impl_item":
			extractRustImpl(child, source, entries)
		}
	}
}

func extractRustFunction(n *sitter.Node, source []byte, implTypeName string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	fnName := nameNode.Content(source)

	kind := KindFunction
	qualifiedName := fnName
	var parent *string
	if implTypeName != "" {
		kind = KindMethod
		qualifiedName = qualify(implTypeName, fnName)
		parent = strPtr(implTypeName)
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractRustNamedItem(n *sitter.Node, source []byte, kind SemanticKind) (OutlineEntry, bool) {
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

func extractRustImpl(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	typeName := "<unknown>"
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		typeName = typeNode.Content(source)
	}

	*entries = append(*entries, OutlineEntry{
		Kind:          KindImpl,
		QualifiedName: typeName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkRustNode(body, source, typeName, entries)
	}
}
