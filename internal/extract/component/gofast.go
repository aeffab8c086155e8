package component

import (
	"strings"

	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/parser"

	"github.com/sinocarta/hanzi-extract/internal/extract/script"
)

// renderFunctionLiterals compiles a Vue 2 render-function body — plain ES5,
// the one subset go-fAST documents support for (no ES6 modules, no
// TypeScript) — and returns every string literal it contains that has
// Chinese in it. Variant A then re-locates each returned string inside the
// original template text (§4.3: "search the original template text to
// recover every occurrence position").
func renderFunctionLiterals(renderSrc string) ([]string, error) {
	program, err := parser.ParseFile(renderSrc)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := map[string]bool{}
	for _, stmt := range program.Body {
		collectStringLiterals(stmt.Stmt, &out, seen)
	}
	return out, nil
}

func collectStringLiterals(stmt ast.Stmt, out *[]string, seen map[string]bool) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		collectExprLiterals(exprOf(s.Expression), out, seen)
	case *ast.ReturnStatement:
		collectExprLiterals(exprOf(s.Argument), out, seen)
	case *ast.IfStatement:
		collectExprLiterals(exprOf(s.Test), out, seen)
		collectStringLiterals(s.Consequent.Stmt, out, seen)
		collectStringLiterals(s.Alternate.Stmt, out, seen)
	case *ast.BlockStatement:
		for _, bodyStmt := range s.List {
			collectStringLiterals(bodyStmt.Stmt, out, seen)
		}
	case *ast.VariableStatement:
		for _, decl := range s.List {
			if decl.Initializer.Expr != nil {
				collectExprLiterals(decl.Initializer.Expr, out, seen)
			}
		}
	}
}

func exprOf(e *ast.Expression) ast.Expr {
	if e == nil {
		return nil
	}
	return e.Expr
}

func collectExprLiterals(expr ast.Expr, out *[]string, seen map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.StringLiteral:
		if script.HasChinese(e.Value) && !seen[e.Value] {
			seen[e.Value] = true
			*out = append(*out, e.Value)
		}
	case *ast.CallExpression:
		collectExprLiterals(exprOf(e.Callee), out, seen)
		for _, arg := range e.ArgumentList {
			collectExprLiterals(exprOf(&arg), out, seen)
		}
	case *ast.ConditionalExpression:
		collectExprLiterals(exprOf(e.Test), out, seen)
		collectExprLiterals(exprOf(e.Consequent), out, seen)
		collectExprLiterals(exprOf(e.Alternate), out, seen)
	case *ast.BinaryExpression:
		collectExprLiterals(exprOf(e.Left), out, seen)
		collectExprLiterals(exprOf(e.Right), out, seen)
	case *ast.AwaitExpression:
		collectExprLiterals(exprOf(e.Argument), out, seen)
	}
}

// findOccurrences returns every byte offset in haystack where needle occurs.
func findOccurrences(haystack, needle string) []int {
	var out []int
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx == -1 {
			break
		}
		out = append(out, from+idx)
		from += idx + len(needle)
	}
	return out
}
