package world

import (
	"regexp"
	"strings"

	"github.com/codenerd/chronicle/internal/schema"
)

// extractSwiftOutline is a hand-written lexical scanner, not a tree-sitter
// walker: the corpus's go-tree-sitter distribution has no Swift grammar
// subpackage. It reproduces the ten-language reference's class/struct/enum/
// extension/protocol/init/typealias qualification rules over a brace-depth
// scope stack instead of a concrete syntax tree. Documented as a grounded
// deviation rather than a silent gap.
var (
	swiftTypeRe      = regexp.MustCompile(`^(?:[\w@]+\s+)*(class|struct|enum|actor)\s+(\w+)`)
	swiftExtensionRe = regexp.MustCompile(`^(?:[\w@]+\s+)*extension\s+(\w+)`)
	swiftProtocolRe  = regexp.MustCompile(`^(?:[\w@]+\s+)*protocol\s+(\w+)`)
	swiftFuncRe      = regexp.MustCompile(`^(?:[\w@]+\s+)*func\s+(\w+)`)
	swiftInitRe      = regexp.MustCompile(`^(?:[\w@]+\s+)*init\s*[(?!]`)
	swiftTypealiasRe = regexp.MustCompile(`^(?:[\w@]+\s+)*typealias\s+(\w+)\s*=`)
)

type swiftScope struct {
	name  string
	depth int // brace depth at which this scope's body begins
}

func extractSwiftOutline(source []byte) ([]OutlineEntry, error) {
	lines := strings.Split(string(source), "\n")
	var entries []OutlineEntry
	var stack []swiftScope
	depth := 0

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := uint32(i + 1)
		ctx := ""
		if len(stack) > 0 {
			ctx = stack[len(stack)-1].name
		}

		switch {
		case swiftProtocolRe.MatchString(line):
			m := swiftProtocolRe.FindStringSubmatch(line)
			qualifiedName := qualify(ctx, m[1])
			var parent *string
			if ctx != "" {
				parent = strPtr(ctx)
			}
			entries = append(entries, OutlineEntry{
				Kind: KindInterface, QualifiedName: qualifiedName,
				Signature: swiftSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
				Parent:    parent,
			})
			if strings.Contains(line, "{") {
				stack = append(stack, swiftScope{name: qualifiedName, depth: depth})
			}

		case swiftExtensionRe.MatchString(line):
			m := swiftExtensionRe.FindStringSubmatch(line)
			qualifiedName := qualify(ctx, m[1])
			var parent *string
			if ctx != "" {
				parent = strPtr(ctx)
			}
			entries = append(entries, OutlineEntry{
				Kind: KindExtension, QualifiedName: qualifiedName,
				Signature: swiftSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
				Parent:    parent,
			})
			if strings.Contains(line, "{") {
				stack = append(stack, swiftScope{name: qualifiedName, depth: depth})
			}

		case swiftTypeRe.MatchString(line):
			m := swiftTypeRe.FindStringSubmatch(line)
			declKind, raw2 := m[1], m[2]
			kind := KindClass
			switch declKind {
			case "struct":
				kind = KindStruct
			case "enum":
				kind = KindEnum
			}
			qualifiedName := qualify(ctx, raw2)
			var parent *string
			if ctx != "" {
				parent = strPtr(ctx)
			}
			entries = append(entries, OutlineEntry{
				Kind: kind, QualifiedName: qualifiedName,
				Signature: swiftSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
				Parent:    parent,
			})
			if strings.Contains(line, "{") {
				stack = append(stack, swiftScope{name: qualifiedName, depth: depth})
			}

		case swiftInitRe.MatchString(line) && ctx != "":
			entries = append(entries, OutlineEntry{
				Kind:          KindConstructor,
				QualifiedName: ctx + "::init",
				Signature:     swiftSignature(raw),
				Lines:         schema.LineRange{Start: lineNo, End: lineNo},
				Parent:        strPtr(ctx),
			})

		case swiftFuncRe.MatchString(line):
			m := swiftFuncRe.FindStringSubmatch(line)
			fnName := m[1]
			kind := KindFunction
			qualifiedName := fnName
			var parent *string
			if ctx != "" {
				kind = KindMethod
				qualifiedName = qualify(ctx, fnName)
				parent = strPtr(ctx)
			}
			entries = append(entries, OutlineEntry{
				Kind: kind, QualifiedName: qualifiedName,
				Signature: swiftSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
				Parent:    parent,
			})

		case swiftTypealiasRe.MatchString(line):
			m := swiftTypealiasRe.FindStringSubmatch(line)
			qualifiedName := qualify(ctx, m[1])
			var parent *string
			if ctx != "" {
				parent = strPtr(ctx)
			}
			entries = append(entries, OutlineEntry{
				Kind: KindTypeAlias, QualifiedName: qualifiedName,
				Signature: strings.TrimSpace(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
				Parent:    parent,
			})
		}

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")
		depth += opens - closes
		for len(stack) > 0 && depth <= stack[len(stack)-1].depth {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for idx := range entries {
				if entries[idx].QualifiedName == top.name && entries[idx].Lines.End == entries[idx].Lines.Start {
					entries[idx].Lines.End = lineNo
				}
			}
		}
	}

	return entries, nil
}

func swiftSignature(raw string) string {
	text := strings.TrimSpace(raw)
	end := len(text)
	if idx := strings.IndexByte(text, '{'); idx >= 0 && idx < end {
		end = idx
	}
	return strings.TrimSpace(text[:end])
}
