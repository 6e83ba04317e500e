package world

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func extractGoOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(golang.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkGoNode(tree.RootNode(), source, &entries)
	return entries, nil
}

func walkGoNode(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "function_declaration":
			if e, ok := extractGoFunction(child, source); ok {
				*entries = append(*entries, e)
			}
		case "method_declaration":
			if e, ok := extractGoMethod(child, source); ok {
				*entries = append(*entries, e)
			}
		case "type_declaration":
			extractGoTypeDeclaration(child, source, entries)
		case "const_declaration":
			extractGoConstDeclaration(child, source, entries)
		}
	}
}

func extractGoFunction(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          KindFunction,
		QualifiedName: nameNode.Content(source),
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
	}, true
}

func extractGoMethod(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	methodName := nameNode.Content(source)

	receiverType := "<unknown>"
	if recv := n.ChildByFieldName("receiver"); recv != nil {
		if rt, ok := extractGoReceiverType(recv, source); ok {
			receiverType = rt
		}
	}

	return OutlineEntry{
		Kind:          KindMethod,
		QualifiedName: qualify(receiverType, methodName),
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        strPtr(receiverType),
	}, true
}

// extractGoReceiverType pulls the receiver's type out of its
// parameter_list, stripping a leading pointer `*`.
func extractGoReceiverType(n *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "parameter_declaration" {
			continue
		}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			return strings.TrimPrefix(typeNode.Content(source), "*"), true
		}
	}
	return "", false
}

func extractGoTypeDeclaration(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "type_spec" {
			if e, ok := extractGoTypeSpec(child, source); ok {
				*entries = append(*entries, e)
			}
		}
	}
}

func extractGoTypeSpec(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	typeNode := n.ChildByFieldName("type")
	if nameNode == nil || typeNode == nil {
		return OutlineEntry{}, false
	}

	kind := KindTypeAlias
	switch typeNode.Type() {
	case "struct_type":
		kind = KindStruct
	case "interface_type":
		kind = KindInterface
	}

	sig := strings.TrimSpace(n.Content(source))
	if pos := strings.IndexByte(sig, '{'); pos >= 0 {
		sig = strings.TrimSpace(sig[:pos])
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: nameNode.Content(source),
		Signature:     sig,
		Lines:         nodeLineRange(n),
	}, true
}

func extractGoConstDeclaration(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "const_spec" {
			if e, ok := extractGoConstSpec(child, source); ok {
				*entries = append(*entries, e)
			}
		}
	}
}

func extractGoConstSpec(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          KindConst,
		QualifiedName: nameNode.Content(source),
		Signature:     strings.TrimSpace(n.Content(source)),
		Lines:         nodeLineRange(n),
	}, true
}
