package world

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

func extractRubyOutline(source []byte) ([]OutlineEntry, error) {
	tree, err := parseTree(ruby.GetLanguage(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entries []OutlineEntry
	walkRubyNode(tree.RootNode(), source, "", &entries)
	return entries, nil
}

func walkRubyNode(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if shouldSkipNode(child) {
			continue
		}
		switch child.Type() {
		case "method":
			if e, ok := extractRubyMethod(child, source, enclosing); ok {
				*entries = append(*entries, e)
			}
		case "singleton_method":
			if e, ok := extractRubySingletonMethod(child, source, enclosing); ok {
				*entries = append(*entries, e)
			}
		case "class":
			extractRubyClass(child, source, enclosing, entries)
		case "module":
			extractRubyModule(child, source, enclosing, entries)
		}
	}
}

func extractRubyMethod(n *sitter.Node, source []byte, enclosing string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	methodName := nameNode.Content(source)

	kind := KindFunction
	qualifiedName := methodName
	var parent *string
	if enclosing != "" {
		if methodName == "initialize" {
			kind = KindConstructor
		} else {
			kind = KindMethod
		}
		qualifiedName = qualify(enclosing, methodName)
		parent = strPtr(enclosing)
	}

	return OutlineEntry{
		Kind:          kind,
		QualifiedName: qualifiedName,
		Signature:     rubyFirstLine(n, source),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractRubySingletonMethod(n *sitter.Node, source []byte, enclosing string) (OutlineEntry, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return OutlineEntry{}, false
	}
	methodName := nameNode.Content(source)

	qualifiedName := methodName
	var parent *string
	if enclosing != "" {
		qualifiedName = qualify(enclosing, methodName)
		parent = strPtr(enclosing)
	}

	return OutlineEntry{
		Kind:          KindMethod,
		QualifiedName: qualifiedName,
		Signature:     rubyFirstLine(n, source),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	}, true
}

func extractRubyClass(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
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
		Signature:     rubyFirstLine(n, source),
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkRubyNode(body, source, qualifiedName, entries)
	}
}

func extractRubyModule(n *sitter.Node, source []byte, enclosing string, entries *[]OutlineEntry) {
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
		Kind:          KindModule,
		QualifiedName: qualifiedName,
		Signature:     "module " + raw,
		Lines:         nodeLineRange(n),
		Parent:        parent,
	})

	if body := n.ChildByFieldName("body"); body != nil {
		walkRubyNode(body, source, qualifiedName, entries)
	}
}

// rubyFirstLine is the node's first source line, trimmed — Ruby method and
// class signatures (`def name(args)`, `class Name < Super`) are one-liners.
func rubyFirstLine(n *sitter.Node, source []byte) string {
	text := n.Content(source)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
