package world

import (
	"regexp"
	"strings"

	"github.com/codenerd/chronicle/internal/schema"
)

// extractObjCOutline is a hand-written lexical scanner, not a tree-sitter
// walker: the corpus's go-tree-sitter distribution has no Objective-C
// grammar subpackage (unlike the ten-language reference, which binds
// tree-sitter-objc directly). It reproduces the same qualification rules
// (selector assembly, class/category/protocol detection) line-by-line
// instead of over a concrete syntax tree. Documented as a grounded
// deviation rather than a silent gap.
var (
	objcInterfaceRe      = regexp.MustCompile(`^@interface\s+(\w+)(?:\s*\(\s*(\w*)\s*\))?`)
	objcImplementationRe = regexp.MustCompile(`^@implementation\s+(\w+)(?:\s*\(\s*(\w*)\s*\))?`)
	objcProtocolRe       = regexp.MustCompile(`^@protocol\s+(\w+)`)
	objcEndRe            = regexp.MustCompile(`^@end\b`)
	objcMethodRe         = regexp.MustCompile(`^([-+])\s*\(([^)]*)\)\s*(.*)$`)
	objcKeywordPartRe    = regexp.MustCompile(`(\w+):`)
	objcFreeFuncRe       = regexp.MustCompile(`^[A-Za-z_][\w\s*]*?(\w+)\s*\(([^)]*)\)\s*\{`)
)

type objcScope struct {
	kind SemanticKind
	name string // bare class/protocol name, used for method parent
}

func extractObjCOutline(source []byte) ([]OutlineEntry, error) {
	lines := strings.Split(string(source), "\n")
	var entries []OutlineEntry
	var stack []objcScope
	var scopeStartLine []int

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := uint32(i + 1)

		switch {
		case objcProtocolRe.MatchString(line):
			if strings.HasSuffix(line, ";") {
				continue // forward declaration
			}
			m := objcProtocolRe.FindStringSubmatch(line)
			stack = append(stack, objcScope{kind: KindInterface, name: m[1]})
			scopeStartLine = append(scopeStartLine, i+1)

		case objcInterfaceRe.MatchString(line):
			m := objcInterfaceRe.FindStringSubmatch(line)
			className, category := m[1], m[2]
			name := className
			kind := KindClass
			if strings.Contains(line, "(") {
				kind = KindExtension
				name = className + "(" + category + ")"
			}
			entries = append(entries, OutlineEntry{
				Kind: kind, QualifiedName: name,
				Signature: objcSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
			})
			stack = append(stack, objcScope{kind: kind, name: className})
			scopeStartLine = append(scopeStartLine, i+1)

		case objcImplementationRe.MatchString(line):
			m := objcImplementationRe.FindStringSubmatch(line)
			className, category := m[1], m[2]
			name := className
			kind := KindClass
			if strings.Contains(line, "(") {
				kind = KindExtension
				name = className + "(" + category + ")"
			}
			entries = append(entries, OutlineEntry{
				Kind: kind, QualifiedName: name,
				Signature: objcSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
			})
			stack = append(stack, objcScope{kind: kind, name: className})
			scopeStartLine = append(scopeStartLine, i+1)

		case objcEndRe.MatchString(line) && len(stack) > 0:
			top := stack[len(stack)-1]
			start := scopeStartLine[len(scopeStartLine)-1]
			stack = stack[:len(stack)-1]
			scopeStartLine = scopeStartLine[:len(scopeStartLine)-1]
			if top.kind == KindInterface {
				// Protocol: retroactively record now that its extent (and
				// hence guaranteed non-forward-decl status) is known.
				entries = append(entries, OutlineEntry{
					Kind: KindInterface, QualifiedName: top.name,
					Signature: "@protocol " + top.name,
					Lines:     schema.LineRange{Start: uint32(start), End: lineNo},
				})
			}

		case len(stack) > 0 && objcMethodRe.MatchString(line):
			m := objcMethodRe.FindStringSubmatch(line)
			prefix, rest := m[1], m[3]
			selector := objcSelector(rest)
			if selector == "" {
				continue
			}
			parent := stack[len(stack)-1].name
			entries = append(entries, OutlineEntry{
				Kind:          KindMethod,
				QualifiedName: parent + "::" + prefix + selector,
				Signature:     objcSignature(raw),
				Lines:         schema.LineRange{Start: lineNo, End: lineNo},
				Parent:        strPtr(parent),
			})

		case len(stack) == 0 && objcFreeFuncRe.MatchString(line):
			m := objcFreeFuncRe.FindStringSubmatch(line)
			entries = append(entries, OutlineEntry{
				Kind: KindFunction, QualifiedName: m[1],
				Signature: objcSignature(raw),
				Lines:     schema.LineRange{Start: lineNo, End: lineNo},
			})
		}
	}

	return entries, nil
}

// objcSelector assembles a method selector from the declaration text
// following its return-type parenthetical: keyword parts (`name:`) are
// collected in order; a lone identifier with no colon is a simple selector.
func objcSelector(rest string) string {
	if kws := objcKeywordPartRe.FindAllStringSubmatch(rest, -1); len(kws) > 0 {
		var b strings.Builder
		for _, kw := range kws {
			b.WriteString(kw[1])
			b.WriteByte(':')
		}
		return b.String()
	}
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ';' || r == '{' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func objcSignature(raw string) string {
	text := strings.TrimSpace(raw)
	end := len(text)
	if idx := strings.IndexByte(text, '{'); idx >= 0 && idx < end {
		end = idx
	}
	if idx := strings.IndexByte(text, ';'); idx >= 0 && idx < end {
		end = idx
	}
	return strings.TrimSpace(text[:end])
}
