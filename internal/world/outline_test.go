package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	cases := map[string]Language{
		"server.go":     LangGo,
		"main.rs":       LangRust,
		"app.tsx":       LangTSX,
		"index.ts":      LangTypeScript,
		"widget.jsx":    LangJSX,
		"script.js":     LangJavaScript,
		"tool.py":       LangPython,
		"Main.java":     LangJava,
		"util.c":        LangC,
		"util.hpp":      LangCPP,
		"thing.rb":      LangRuby,
		"AppDelegate.m": LangObjC,
		"Shape.swift":   LangSwift,
		"README.md":     LangUnsupported,
	}
	for path, want := range cases {
		assert.Equal(t, want, DetectLanguage(path), path)
	}
}

func TestExtractOutline_UnsupportedLanguage(t *testing.T) {
	_, err := ExtractOutline([]byte("whatever"), LangUnsupported)
	require.Error(t, err)
}

func TestExtractGoOutline(t *testing.T) {
	src := `package server

type Server struct {
	addr string
}

func (s *Server) Start() error {
	return nil
}

func New(addr string) *Server {
	return &Server{addr: addr}
}

const DefaultPort = 8080
`
	entries, err := ExtractOutline([]byte(src), LangGo)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, string(e.Kind)+":"+e.QualifiedName)
	}
	assert.Contains(t, names, "struct:Server")
	assert.Contains(t, names, "method:Server::Start")
	assert.Contains(t, names, "function:New")
	assert.Contains(t, names, "const:DefaultPort")
}

func TestExtractPythonOutline(t *testing.T) {
	src := `class Widget:
    def __init__(self, name):
        self.name = name

    def render(self):
        return self.name


def helper():
    return 1
`
	entries, err := ExtractOutline([]byte(src), LangPython)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, string(e.Kind)+":"+e.QualifiedName)
	}
	assert.Contains(t, names, "class:Widget")
	assert.Contains(t, names, "constructor:Widget::__init__")
	assert.Contains(t, names, "method:Widget::render")
	assert.Contains(t, names, "function:helper")
}

func TestExtractObjCOutline(t *testing.T) {
	src := `@interface Shape : NSObject
- (void)draw;
- (CGFloat)areaWithScale:(CGFloat)scale;
@end

@implementation Shape
- (void)draw {
}
@end

int freeFunction(int x) {
	return x * 2;
}
`
	entries, err := extractObjCOutline([]byte(src))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, string(e.Kind)+":"+e.QualifiedName)
	}
	assert.Contains(t, names, "class:Shape")
	assert.Contains(t, names, "method:Shape::-draw")
	assert.Contains(t, names, "method:Shape::-areaWithScale:")
	assert.Contains(t, names, "function:freeFunction")
}

func TestExtractSwiftOutline(t *testing.T) {
	src := `protocol Drawable {
    func draw()
}

class Shape: NSObject, Drawable {
    init(name: String) {
        self.name = name
    }

    func draw() {
        print(name)
    }
}

struct Point {
    func distance() -> Double {
        return 0
    }
}

extension Shape {
    func description() -> String {
        return "shape"
    }
}

typealias Coordinate = (Double, Double)

func freeFunction(x: Int) -> Int {
    return x * 2
}
`
	entries, err := extractSwiftOutline([]byte(src))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, string(e.Kind)+":"+e.QualifiedName)
	}
	assert.Contains(t, names, "interface:Drawable")
	assert.Contains(t, names, "class:Shape")
	assert.Contains(t, names, "constructor:Shape::init")
	assert.Contains(t, names, "method:Shape::draw")
	assert.Contains(t, names, "struct:Point")
	assert.Contains(t, names, "method:Point::distance")
	assert.Contains(t, names, "extension:Shape")
	assert.Contains(t, names, "method:Shape::description")
	assert.Contains(t, names, "type_alias:Coordinate")
	assert.Contains(t, names, "function:freeFunction")
}
