package world

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/schema"
)

// parseTree runs a fresh parser for one extraction call. Extractors are
// called per-file, not held open across a batch, so there is no benefit to
// pooling parsers the way a long-lived language server would.
func parseTree(lang *sitter.Language, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, chronicleerr.AstTreeSitterErr(err.Error())
	}
	if tree == nil {
		return nil, chronicleerr.AstParseFailedErr("<input>", "tree-sitter returned no tree")
	}
	return tree, nil
}

func nodeLineRange(n *sitter.Node) schema.LineRange {
	return schema.LineRange{
		Start: n.StartPoint().Row + 1,
		End:   n.EndPoint().Row + 1,
	}
}

// signatureUpTo returns the node's source text from its start up to the
// first occurrence of delim, trimmed. Nodes without delim in their text
// (e.g. bodyless declarations) return the full trimmed text.
func signatureUpTo(n *sitter.Node, source []byte, delim byte) string {
	text := n.Content(source)
	if idx := strings.IndexByte(text, delim); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}

// shouldSkipNode drops tree-sitter's structural noise (comments) from a
// walk without erroring.
func shouldSkipNode(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment":
		return true
	default:
		return false
	}
}
