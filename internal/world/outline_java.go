package world

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

func extractJavaOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(java.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkJavaNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkJavaNode(n *sitter.Node, source []byte, className string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "class_declaration":
			extractJavaClass(child, source, className, entries)
		case "interface_declaration":
			extractJavaInterface(child, source, className, entries)
		case "enum_declaration":
			if e, ok := extractJavaNamed(child, source, KindEnum, className); ok {
				*entries = append(*entries, e)
			}
		case "record_declaration":
			if e, ok := extractJavaNamed(child, source, KindStruct, className); ok {
				*entries = append(*entries, e)
			}
		case "method_declaration":
			if e, ok := extractJavaMethod(child, source, className); ok {
				*entries = append(*entries, e)
			}
		case "constructor_declaration":
			if e, ok := extractJavaConstructor(child, source, className); ok {
				*entries = append(*entries, e)
			}
		case "program", "class_body", "interface_body", "enum_body":
			// Transparent containers.
			walkJavaNode(child, source, className, entries)
		}
	}
}

func extractJavaClass(n *sitter.Node, source []byte, parentClass string, entries *[]OutlineEntry) {
	raw := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		raw = nameNode.Content(source)
	}
	qualifiedName := qualify(parentClass, raw)

	var parent *string
	if parentClass != "" {
		parent = strPtr(parentClass)
	}
	*entries = append(*entries, OutlineEntry{
		Kind:          KindClass,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkJavaNode(body, source, qualifiedName, entries)
	}
}

func extractJavaInterface(n *sitter.Node, source []byte, parentClass string, entries *[]OutlineEntry) {
	raw := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		raw = nameNode.Content(source)
	}
	qualifiedName := qualify(parentClass, raw)

	var parent *string
	if parentClass != "" {
		parent = strPtr(parentClass)
	}
	*entries = append(*entries, OutlineEntry{
		Kind:          KindInterface,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkJavaNode(body, source, qualifiedName, entries)
	}
}

func extractJavaNamed(n *sitter.Node, source []byte, kind SemanticKind, parentClass string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	raw := nameNode.Content(source)

	var parent *string
	if parentClass != "" {
		parent = strPtr(parentClass)
	}
	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualify(parentClass, raw),
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractJavaMethod(n *sitter.Node, source []byte, className string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	methodName := nameNode.Content(source)

	qualifiedName := methodName
	var parent *string
	if className != "" {
		qualifiedName = qualify(className, methodName)
		parent = strPtr(className)
	}

	return OutlineEntry{
		Kind:          KindMethod,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractJavaConstructor(n *sitter.Node, source []byte, className string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	ctorName := nameNode.Content(source)

	qualifiedName := ctorName
	var parent *string
	if className != "" {
		qualifiedName = qualify(className, ctorName)
		parent = strPtr(className)
	}

	return OutlineEntry{
		Kind:          KindConstructor,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}
