// Package world extracts a semantic outline from source text and resolves
// free-text anchors against it. One extractor per supported language, built
// on go-tree-sitter except Objective-C and Swift, which use hand-written line
// scanners, with a three-tier resolver (exact, qualified suffix, fuzzy) on top.
package world

import (
	"path/filepath"
	"strings"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/schema"
)

// SemanticKind classifies one outline entry.
type SemanticKind string

const (
	KindFunction    SemanticKind = "function"
	KindMethod      SemanticKind = "method"
	KindClass       SemanticKind = "class"
	KindStruct      SemanticKind = "struct"
	KindEnum        SemanticKind = "enum"
	KindInterface   SemanticKind = "interface"
	KindTrait       SemanticKind = "trait"
	KindImpl        SemanticKind = "impl"
	KindConst       SemanticKind = "const"
	KindStatic      SemanticKind = "static"
	KindTypeAlias   SemanticKind = "type_alias"
	KindModule      SemanticKind = "module"
	KindNamespace   SemanticKind = "namespace"
	KindExtension   SemanticKind = "extension"
	KindConstructor SemanticKind = "constructor"
)

// FromLooseString maps an anchor's free-text unit_type to a SemanticKind,
// accepting the short aliases spec.md documents (fn, mod, type, ctor, ...).
func FromLooseString(s string) (SemanticKind, bool) {
	switch s {
	case "function", "fn":
		return KindFunction, true
	case "method":
		return KindMethod, true
	case "class":
		return KindClass, true
	case "struct":
		return KindStruct, true
	case "enum":
		return KindEnum, true
	case "interface":
		return KindInterface, true
	case "trait":
		return KindTrait, true
	case "impl":
		return KindImpl, true
	case "const":
		return KindConst, true
	case "static":
		return KindStatic, true
	case "type_alias", "type":
		return KindTypeAlias, true
	case "module", "mod":
		return KindModule, true
	case "namespace":
		return KindNamespace, true
	case "extension":
		return KindExtension, true
	case "constructor", "ctor":
		return KindConstructor, true
	default:
		return "", false
	}
}

// OutlineEntry is one semantic unit extracted from source text.
type OutlineEntry struct {
	Kind          SemanticKind
	QualifiedName string
	Signature     string
	Lines         schema.LineRange
	Parent        *string
}

// Language is a supported (or explicitly unsupported) source language.
type Language string

const (
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangJSX        Language = "jsx"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangRuby       Language = "ruby"
	LangObjC       Language = "objc"
	LangSwift      Language = "swift"
	LangUnsupported Language = "unsupported"
)

// DetectLanguage maps a file extension to a Language via a closed table.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".rs":
		return LangRust
	case ".tsx":
		return LangTSX
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	case ".jsx":
		return LangJSX
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".py", ".pyi":
		return LangPython
	case ".go":
		return LangGo
	case ".java":
		return LangJava
	case ".c", ".h":
		return LangC
	case ".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx":
		return LangCPP
	case ".rb", ".rake", ".gemspec":
		return LangRuby
	case ".m", ".mm":
		return LangObjC
	case ".swift":
		return LangSwift
	default:
		return LangUnsupported
	}
}

// ExtractOutline dispatches to the per-language extractor for source.
func ExtractOutline(source []byte, lang Language) ([]OutlineEntry, error) {
	switch lang {
	case LangGo:
		return extractGoOutline(source)
	case LangPython:
		return extractPythonOutline(source)
	case LangTypeScript, LangJavaScript, LangTSX, LangJSX:
		return extractTSOutline(source, lang)
	case LangRust:
		return extractRustOutline(source)
	case LangJava:
		return extractJavaOutline(source)
	case LangC:
		return extractCOutline(source)
	case LangCPP:
		return extractCppOutline(source)
	case LangRuby:
		return extractRubyOutline(source)
	case LangObjC:
		return extractObjCOutline(source)
	case LangSwift:
		return extractSwiftOutline(source)
	default:
		return nil, chronicleerr.AstUnsupportedLanguageErr(string(lang))
	}
}

func qualify(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "::" + name
}

func strPtr(s string) *string { return &s }
