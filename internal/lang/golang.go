package lang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// Go analyzes Go source using the standard library parser.
type Go struct{}

// NewGo creates the Go language.
func NewGo() *Go { return &Go{} }

func (*Go) Name() string { return "go" }

func (*Go) Suffixes() []string { return []string{".go"} }

var goIgnoreDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

var goIgnoreSuffixes = []string{".exe", ".a", ".o", ".so"}

func (*Go) IgnoreDir(name string) bool {
	return strings.HasPrefix(name, ".") || goIgnoreDirs[name]
}

func (*Go) IgnoreSuffix(name string) bool {
	for _, s := range goIgnoreSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// ExtractFunctions parses source and returns every function and method
// with its body statements. Methods are named "Receiver.Method" so they
// stay distinguishable across types.
func (*Go) ExtractFunctions(source string) ([]FunctionInfo, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", source, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(source, "\n")

	var funcs []FunctionInfo
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		ex := &stmtExtractor{fset: fset, lines: lines}
		ex.block(fd.Body)
		if len(ex.stmts) > 0 {
			funcs = append(funcs, FunctionInfo{Name: funcName(fd), Statements: ex.stmts})
		}
	}
	return funcs, nil
}

// ExtractNames returns top-level function, method, and type names.
func (*Go) ExtractNames(source string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", source, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			names = append(names, funcName(d))
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					names = append(names, ts.Name.Name)
				}
			}
		}
	}
	return names, nil
}

func funcName(fd *ast.FuncDecl) string {
	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		if t := receiverType(fd.Recv.List[0].Type); t != "" {
			return t + "." + fd.Name.Name
		}
	}
	return fd.Name.Name
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	}
	return ""
}

// stmtExtractor walks a function body and collects statements as source
// text. Compound statements contribute their header line and recurse into
// their bodies; leaf statements contribute their full source span.
type stmtExtractor struct {
	fset  *token.FileSet
	lines []string
	stmts []string
}

func (e *stmtExtractor) block(b *ast.BlockStmt) {
	for _, s := range b.List {
		e.visit(s)
	}
}

func (e *stmtExtractor) visit(s ast.Stmt) {
	switch t := s.(type) {
	case *ast.IfStmt:
		e.header(t.Pos())
		e.block(t.Body)
		switch el := t.Else.(type) {
		case *ast.BlockStmt:
			e.block(el)
		case *ast.IfStmt:
			e.visit(el)
		}
	case *ast.ForStmt:
		e.header(t.Pos())
		e.block(t.Body)
	case *ast.RangeStmt:
		e.header(t.Pos())
		e.block(t.Body)
	case *ast.SwitchStmt:
		e.header(t.Pos())
		e.clauses(t.Body)
	case *ast.TypeSwitchStmt:
		e.header(t.Pos())
		e.clauses(t.Body)
	case *ast.SelectStmt:
		e.header(t.Pos())
		e.clauses(t.Body)
	case *ast.BlockStmt:
		e.block(t)
	case *ast.LabeledStmt:
		e.visit(t.Stmt)
	case *ast.BranchStmt, *ast.EmptyStmt:
		// break/continue/goto carry no signal on their own
	default:
		e.leaf(s)
	}
}

func (e *stmtExtractor) clauses(b *ast.BlockStmt) {
	for _, c := range b.List {
		switch cc := c.(type) {
		case *ast.CaseClause:
			e.header(cc.Pos())
			for _, s := range cc.Body {
				e.visit(s)
			}
		case *ast.CommClause:
			e.header(cc.Pos())
			for _, s := range cc.Body {
				e.visit(s)
			}
		}
	}
}

// header records the single source line a compound statement starts on.
func (e *stmtExtractor) header(pos token.Pos) {
	line := e.fset.Position(pos).Line - 1
	if line < 0 || line >= len(e.lines) {
		return
	}
	text := strings.TrimSpace(e.lines[line])
	if text != "" && !trivialStmt(text) {
		e.stmts = append(e.stmts, text)
	}
}

// leaf records a statement's full source span.
func (e *stmtExtractor) leaf(s ast.Stmt) {
	start := e.fset.Position(s.Pos()).Line - 1
	end := e.fset.Position(s.End()).Line
	if start < 0 || start >= len(e.lines) {
		return
	}
	if end > len(e.lines) {
		end = len(e.lines)
	}
	text := strings.TrimSpace(strings.Join(e.lines[start:end], "\n"))
	if text != "" && !trivialStmt(text) {
		e.stmts = append(e.stmts, text)
	}
}

// trivialStmt filters statements too generic to identify any function.
func trivialStmt(text string) bool {
	switch text {
	case "return", "return nil", "return err", "return nil, nil",
		"default:", "} else {", "{", "}":
		return true
	}
	return false
}
