package source

import (
	"go/ast"
	"strconv"
	"strings"
)

// ClosurePath splits a runtime closure name into the enclosing function and
// the 1-based ordinals of the nested literals. "pkg.homePage.func2.1" gives
// "homePage" and [2 1]; "pkg.(*T).m.func1" gives "T.m" and [1].
func ClosurePath(full string) (string, []int, bool) {
	name := full
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	i := strings.Index(name, ".")
	if i < 0 {
		return "", nil, false
	}
	name = name[i+1:]
	if strings.ContainsAny(name, "[]") {
		return "", nil, false
	}

	parts := strings.Split(name, ".")
	at := -1
	for i, part := range parts {
		if strings.HasPrefix(part, "func") {
			if _, err := strconv.Atoi(part[len("func"):]); err == nil {
				at = i
				break
			}
		}
	}
	if at < 1 {
		return "", nil, false
	}

	var ordinals []int
	for i, part := range parts[at:] {
		if i == 0 {
			part = part[len("func"):]
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return "", nil, false
		}
		ordinals = append(ordinals, n)
	}

	decl := strings.Join(parts[:at], ".")
	decl = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(decl)
	return decl, ordinals, true
}

// resolveClosure finds the literal named by a runtime closure name. The
// compiler numbers the literals of a function in source order, each nested
// level from 1.
func resolveClosure(tree *ast.File, full string) *ast.FuncLit {
	decl, ordinals, ok := ClosurePath(full)
	if !ok {
		return nil
	}

	fn := findDecl(tree, decl)
	if fn == nil && strings.Contains(decl, ".") {
		// A closure of an inlined function is named after its caller too.
		fn = findDecl(tree, decl[strings.LastIndex(decl, ".")+1:])
	}
	if fn == nil || fn.Body == nil {
		return nil
	}

	var node ast.Node = fn.Body
	var lit *ast.FuncLit
	for _, n := range ordinals {
		lits := directFuncLits(node)
		if n > len(lits) {
			return nil
		}
		lit = lits[n-1]
		node = lit.Body
	}
	return lit
}

func findDecl(tree *ast.File, name string) *ast.FuncDecl {
	for _, d := range tree.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if declName(fn) == name {
			return fn
		}
	}
	return nil
}

func declName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	typ := fn.Recv.List[0].Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	if ident, ok := typ.(*ast.Ident); ok {
		return ident.Name + "." + fn.Name.Name
	}
	return fn.Name.Name
}

// directFuncLits lists the literals inside root that are not nested in
// another literal, in source order.
func directFuncLits(root ast.Node) []*ast.FuncLit {
	var lits []*ast.FuncLit
	ast.Inspect(root, func(n ast.Node) bool {
		if lit, ok := n.(*ast.FuncLit); ok {
			lits = append(lits, lit)
			return false
		}
		return true
	})
	return lits
}
