package world

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func extractPythonOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(python.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkPythonNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkPythonNode(n *sitter.Node, source []byte, className string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "function_definition":
			if e, ok := extractPythonFunction(child, source, className); ok {
				*entries = append(*entries, e)
			}
		case "class_definition":
			extractPythonClass(child, source, entries)
		case "decorated_definition":
			extractPythonDecorated(child, source, className, entries)
		}
	}
}

func extractPythonFunction(n *sitter.Node, source []byte, className string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	fnName := nameNode.Content(source)

	kind := KindFunction
	var parent *string
	qualifiedName := fnName
	if className != "" {
		if fnName == "__init__" {
			kind = KindConstructor
		} else {
			kind = KindMethod
		}
		qualifiedName = qualify(className, fnName)
		parent = strPtr(className)
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualifiedName,
		Signature:     extractPythonSignature(n, source),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractPythonClass(n *sitter.Node, source []byte, entries *[]OutlineEntry) {
	name := "<anonymous>"
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(source)
	}

	*entries = append(*entries, OutlineEntry{
		Kind:          KindClass,
		QualifiedName: name,
		Signature:     extractPythonSignature(n, source),
		Lines:         nodeLineRange(n),
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkPythonNode(body, source, name, entries)
	}
}

// extractPythonDecorated reports the inner definition using the outer
// (decorated) line range, per spec.md 4.1's decorator-transparency rule.
func extractPythonDecorated(n *sitter.Node, source []byte, className string, entries *[]OutlineEntry) {
	outerLines := nodeLineRange(n)
	definition := n.ChildByFieldName("definition")
	if definition == nil {
		return
	}

	switch definition.Type() {
	case "function_definition":
		if e, ok := extractPythonFunction(definition, source, className); ok {
			e.Lines = outerLines
			*entries = append(*entries, e)
		}
	case "class_definition":
		name := "<anonymous>"
		if nameNode := definition.ChildByFieldName("name"); nameNode != nil {
			name = nameNode.Content(source)
		}
		*entries = append(*entries, OutlineEntry{
			Kind:          KindClass,
			QualifiedName: name,
			Signature:     extractPythonSignature(definition, source),
			Lines:         outerLines,
		})
		if body := definition.ChildByFieldName("body"); body != nil {
			walkPythonNode(body, source, name, entries)
		}
	}
}

// extractPythonSignature is the node's text up to the colon preceding its
// body, falling back to the first colon when no body field is present.
func extractPythonSignature(n *sitter.Node, source []byte) string {
	fullText := n.Content(source)
	if body := n.ChildByFieldName("body"); body != nil {
		bodyOffset := int(body.StartByte()) - int(n.StartByte())
		if bodyOffset > 0 && bodyOffset <= len(fullText) {
			before := strings.TrimSpace(fullText[:bodyOffset])
			return strings.TrimSpace(strings.TrimSuffix(before, ":"))
		}
	}
	if idx := strings.IndexByte(fullText, ':'); idx >= 0 {
		return strings.TrimSpace(fullText[:idx])
	}
	return strings.TrimSpace(fullText)
}
