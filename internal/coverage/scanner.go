package coverage

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// ScanTestFile parses a Go source file and returns the names of its declared
// test functions in source order. A test function is a top-level func with no
// receiver, a name beginning with "Test" and a single *testing.T parameter.
func ScanTestFile(path string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("parse test file: %w", err)
	}

	var tests []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		if !strings.HasPrefix(fn.Name.Name, "Test") {
			continue
		}
		if !hasTestingTParam(fn) {
			continue
		}
		tests = append(tests, fn.Name.Name)
	}
	return tests, nil
}

// hasTestingTParam reports whether fn takes exactly one *testing.T argument.
func hasTestingTParam(fn *ast.FuncDecl) bool {
	params := fn.Type.Params
	if params == nil || len(params.List) != 1 {
		return false
	}
	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "T" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing"
}
