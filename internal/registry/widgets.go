package registry

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"sort"
	"strings"
)

// WidgetsUsed lists the exported functions of package qualifier that a
// snippet body calls, such as "Button" for ui.Button(p, "X"). Bodies that
// do not parse on their own are scanned line by line instead.
func WidgetsUsed(body, qualifier string) []string {
	found := make(map[string]bool)

	src := "package snippet\n\nfunc _() {\n" + body + "\n}\n"
	file, err := parser.ParseFile(token.NewFileSet(), "snippet.go", src, parser.SkipObjectResolution)
	if err == nil {
		ast.Walk(&widgetVisitor{qualifier: qualifier, found: found}, file)
	} else {
		scanWidgets(body, qualifier, found)
	}

	result := make([]string, 0, len(found))
	for name := range found {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func scanWidgets(body, qualifier string, found map[string]bool) {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(qualifier) + `\.([A-Z][a-zA-Z0-9_]*)\s*\(`)
	for _, line := range strings.Split(body, "\n") {
		// Skip comment lines
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, match := range pattern.FindAllStringSubmatch(line, -1) {
			found[match[1]] = true
		}
	}
}

type widgetVisitor struct {
	qualifier string
	found     map[string]bool
}

func (v *widgetVisitor) Visit(node ast.Node) ast.Visitor {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return v
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return v
	}
	if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == v.qualifier && ast.IsExported(sel.Sel.Name) {
		v.found[sel.Sel.Name] = true
	}
	return v
}

// Using returns the examples whose snippets call widget.
func (r *ExampleRegistry) Using(widget string) []*ExampleInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []*ExampleInfo
	for _, example := range r.examples {
		for _, w := range example.Widgets {
			if w == widget {
				result = append(result, example)
				break
			}
		}
	}
	sortExamples(result)
	return result
}

// WidgetIndex maps every widget to the IDs of the examples calling it.
func (r *ExampleRegistry) WidgetIndex() map[string][]string {
	index := make(map[string][]string)
	for _, example := range r.GetAll() {
		for _, w := range example.Widgets {
			index[w] = append(index[w], example.ID)
		}
	}
	return index
}
