package world

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

func extractCppOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(cpp.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkCppNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkCppNode(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "function_definition":
			if e, ok := extractCppFunction(child, source, enclosing); ok {
				*entries = append(*entries, e)
			}
		case "class_specifier":
			if hasBodyField(child) {
				extractCppClass(child, source, enclosing, entries)
			}
		case "struct_specifier":
			if hasBodyField(child) {
				if e, ok := extractCppTagged(child, source, KindStruct, enclosing); ok {
					*entries = append(*entries, e)
				}
			}
		case "enum_specifier":
			if hasBodyField(child) {
				if e, ok := extractCppTagged(child, source, KindEnum, enclosing); ok {
					*entries = append(*entries, e)
				}
			}
		case "union_specifier":
			if hasBodyField(child) {
				if e, ok := extractCppTagged(child, source, KindStruct, enclosing); ok {
					*entries = append(*entries, e)
				}
			}
		case "namespace_definition":
			extractCppNamespace(child, source, enclosing, entries)
		case "template_declaration":
			// Transparent: descend into the templated declaration.
			walkCppNode(child, source, enclosing, entries)
		case "type_definition":
			if e, ok := extractCppTypedef(child, source); ok {
				*entries = append(*entries, e)
			}
		case "alias_declaration":
			if e, ok := extractCppAlias(child, source); ok {
				*entries = append(*entries, e)
			}
		}
	}
}

func extractCppFunction(n *sitter.Node, source []byte, enclosing string) (OutlineEntry, bool) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return OutlineEntry{}, false
	}
	name, ok := extractCDeclaratorName(declarator, source)
	if !ok {
		return OutlineEntry{}, false
	}

	kind := KindFunction
	qualifiedName := name
	var parent *string
	if enclosing != "" {
		if isCppConstructor(enclosing, name) {
			kind = KindConstructor
		} else {
			kind = KindMethod
		}
		qualifiedName = qualify(enclosing, name)
		parent = strPtr(enclosing)
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractCppClass(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
	raw := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		raw = nameNode.Content(source)
	}
	qualifiedName := qualify(enclosing, raw)

	var parent *string
	if enclosing != "" {
		parent = strPtr(enclosing)
	}
	*entries = append(*entries, OutlineEntry{
		Kind:          KindClass,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkCppNode(body, source, qualifiedName, entries)
	}
}

func extractCppTagged(n *sitter.Node, source []byte, kind SemanticKind, enclosing string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	raw := nameNode.Content(source)

	var parent *string
	if enclosing != "" {
		parent = strPtr(enclosing)
	}
	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualify(enclosing, raw),
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractCppNamespace(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
	raw := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		raw = nameNode.Content(source)
	}
	qualifiedName := qualify(enclosing, raw)

	var parent *string
	if enclosing != "" {
		parent = strPtr(enclosing)
	}
	*entries = append(*entries, OutlineEntry{
		Kind:          KindNamespace,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkCppNode(body, source, qualifiedName, entries)
	}
}

func extractCppTypedef(n *sitter.Node, source []byte) (OutlineEntry, bool) {
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

func extractCppAlias(n *sitter.Node, source []byte) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	return OutlineEntry{
		Kind:          KindTypeAlias,
		QualifiedName: nameNode.Content(source),
		Signature:     strings.TrimSpace(n.Content(source)),
		Lines:         nodeLineRange(n),
	}, true
}

// isCppConstructor reports whether fnName equals enclosing's last
// `::`-separated segment. It is applied only to function definitions nested
// in a class or namespace body, where enclosing is set.
func isCppConstructor(enclosing, fnName string) bool {
	segs := strings.Split(enclosing, "::")
	return fnName == segs[len(segs)-1]
}
