package world

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extractTSOutline covers TypeScript, TSX, JavaScript and JSX: one walker,
// grammar chosen per lang. tree-sitter-typescript's grammar is a superset of
// JS, but the corpus exposes a distinct javascript grammar package, so
// plain JS/JSX get their own grammar rather than reusing the TS one.
func extractTSOutline(source []byte, lang Language) ([]OutlineEntry, error) {
	var grammar *sitter.Language
	switch lang {
	case LangTSX:
		grammar = tsx.GetLanguage()
	case LangTypeScript:
		grammar = typescript.GetLanguage()
	case LangJSX, LangJavaScript:
		grammar = javascript.GetLanguage()
	}

	tree, err := parseTree(grammar, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkTSNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkTSNode(n *sitter.Node, source []byte, className string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "function_declaration", "generator_function_declaration":
			if e, ok := extractTSFunction(child, source); ok {
				*entries = append(*entries, e)
			}
		case "class_declaration":
			extractTSClass(child, source, entries)
		case "interface_declaration":
			if e, ok := extractTSNamed(child, source, KindInterface); ok {
				*entries = append(*entries, e)
			}
		case "enum_declaration":
			if e, ok := extractTSNamed(child, source, KindEnum); ok {
				*entries = append(*entries, e)
			}
		case "type_alias_declaration":
			if e, ok := extractTSNamed(child, source, KindTypeAlias); ok {
				*entries = append(*entries, e)
			}
		case "export_statement":
			// Transparent: descend into the exported declaration.
			walkTSNode(child, source, className, entries)
		case "lexical_declaration":
			extractTSArrowFunctions(child, source, entries)
		case "method_definition":
			if e, ok := extractTSMethod(child, source, className); ok {
				*entries = append(*entries, e)
			}
		case "public_field_definition":
			if hasArrowFunctionValue(child) {
				if e, ok := extractTSMethod(child, source, className); ok {
					*entries = append(*entries, e)
				}
			}
		}
	}
}

func extractTSFunction(n *sitter.Node, source []byte) (OutlineEntry, bool) {
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

func extractTSNamed(n *sitter.Node, source []byte, kind SemanticKind) (OutlineEntry, bool) {
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

func extractTSClass(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	name := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(source)
	}

	*entries = append(*entries, OutlineEntry{
		Kind:          KindClass,
		QualifiedName: name,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkTSNode(body, source, name, entries)
	}
}

func extractTSMethod(n *sitter.Node, source []byte, className string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	methodName := nameNode.Content(source)

	kind := KindMethod
	qualifiedName := methodName
	var parent *string
	if className != "" {
		parent = strPtr(className)
		qualifiedName = qualify(className, methodName)
	}
	if methodName == "constructor" {
		kind = KindConstructor
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualifiedName,
		Signature:     signatureUpTo(n, source, '{'),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractTSArrowFunctions(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil || value.Type() != "arrow_function" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		*entries = append(*entries, OutlineEntry{
			Kind:          KindFunction,
			QualifiedName: nameNode.Content(source),
			Signature:     signatureUpTo(n, source, '{'),
			Lines:         nodeLineRange(n),
		})
	}
}

func hasArrowFunctionValue(n *sitter.Node) bool {
	value := n.ChildByFieldName("value")
	return value != nil && value.Type() == "arrow_function"
}
