package parser

import (
	"strings"
	"testing"

	"github.com/mamba-lang/mamba/internal/ast"
	"github.com/mamba-lang/mamba/internal/token"
)

func parseModule(t *testing.T, source string) (*ast.Module, *Parser) {
	t.Helper()
	p := New(source, "test.mamba")
	if len(p.LexErrors()) > 0 {
		t.Fatalf("unexpected lex errors: %v", p.LexErrors())
	}
	return p.Parse(), p
}

func parseClean(t *testing.T, source string) *ast.Module {
	t.Helper()
	module, p := parseModule(t, source)
	if p.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", source, p.Errors())
	}
	return module
}

func singleStatement(t *testing.T, source string) ast.Statement {
	t.Helper()
	module := parseClean(t, source)
	if len(module.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(module.Statements))
	}
	return module.Statements[0]
}

func exprOf(t *testing.T, source string) ast.Expression {
	t.Helper()
	stmt, ok := singleStatement(t, source).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement for %q", source)
	}
	return stmt.X
}

// ----------------------------------------------------------------------------
// Assignments
// ----------------------------------------------------------------------------

func TestSimpleAssignment(t *testing.T) {
	stmt, ok := singleStatement(t, "x = 5\n").(*ast.AssignStmt)
	if !ok {
		t.Fatal("expected assignment")
	}
	if len(stmt.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(stmt.Targets))
	}
	target, ok := stmt.Targets[0].(*ast.Identifier)
	if !ok || target.Name != "x" {
		t.Errorf("target mismatch: %v", stmt.Targets[0])
	}
	value, ok := stmt.Value.(*ast.IntLit)
	if !ok || value.Value != 5 || value.Base != 10 {
		t.Errorf("value mismatch: %v", stmt.Value)
	}
}

func TestChainedAssignment(t *testing.T) {
	stmt := singleStatement(t, "x = y = 5\n").(*ast.AssignStmt)
	if len(stmt.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(stmt.Targets))
	}
}

func TestTupleUnpacking(t *testing.T) {
	stmt := singleStatement(t, "a, b = pair\n").(*ast.AssignStmt)
	tuple, ok := stmt.Targets[0].(*ast.TupleExpr)
	if !ok || len(tuple.Elements) != 2 {
		t.Fatalf("expected tuple target, got %v", stmt.Targets[0])
	}
}

func TestStarredUnpacking(t *testing.T) {
	stmt := singleStatement(t, "head, *tail = items\n").(*ast.AssignStmt)
	tuple := stmt.Targets[0].(*ast.TupleExpr)
	if _, ok := tuple.Elements[1].(*ast.StarredExpr); !ok {
		t.Errorf("expected starred element, got %v", tuple.Elements[1])
	}
}

func TestMultipleStarredRejected(t *testing.T) {
	_, p := parseModule(t, "*a, *b = items\n")
	if !p.HasErrors() {
		t.Fatal("expected an error for two starred targets")
	}
	if p.Errors()[0].Kind != StarredMisuse {
		t.Errorf("kind mismatch: got %v", p.Errors()[0].Kind)
	}
}

func TestInvalidAssignmentTargets(t *testing.T) {
	tests := []string{
		"5 = x\n",
		`"s" = x` + "\n",
		"f() = x\n",
		"a + b = x\n",
	}

	for _, source := range tests {
		_, p := parseModule(t, source)
		if !p.HasErrors() {
			t.Errorf("source %q: expected an error", source)
			continue
		}
		err := p.Errors()[0]
		if err.Kind != InvalidAssignTarget {
			t.Errorf("source %q: kind mismatch: got %v", source, err.Kind)
		}
		if !strings.Contains(err.Message, "Cannot assign") {
			t.Errorf("source %q: message mismatch: %q", source, err.Message)
		}
	}
}

func TestAugmentedAssignment(t *testing.T) {
	stmt := singleStatement(t, "x += 1\n").(*ast.AugAssignStmt)
	if stmt.Op != token.PLUS_ASSIGN {
		t.Errorf("op mismatch: %s", stmt.Op)
	}

	_, p := parseModule(t, "a + b += 1\n")
	if !p.HasErrors() {
		t.Fatal("expected an error for an operator target")
	}
}

func TestAnnotatedAssignment(t *testing.T) {
	stmt := singleStatement(t, "x: int = 5\n").(*ast.AnnAssignStmt)
	if ann, ok := stmt.Annotation.(*ast.Identifier); !ok || ann.Name != "int" {
		t.Errorf("annotation mismatch: %v", stmt.Annotation)
	}
	if stmt.Value == nil {
		t.Error("expected a value")
	}

	// Annotation without value, and generic annotations.
	noValue := singleStatement(t, "names: dict[str, int]\n").(*ast.AnnAssignStmt)
	if noValue.Value != nil {
		t.Error("expected no value")
	}
	sub, ok := noValue.Annotation.(*ast.SubscriptExpr)
	if !ok {
		t.Fatalf("expected subscript annotation, got %v", noValue.Annotation)
	}
	if _, ok := sub.Index.(*ast.TupleExpr); !ok {
		t.Errorf("expected tuple index for dict[str, int], got %v", sub.Index)
	}
}

// ----------------------------------------------------------------------------
// Precedence
// ----------------------------------------------------------------------------

func TestArithmeticPrecedence(t *testing.T) {
	expr := exprOf(t, "a + b * c\n").(*ast.BinaryExpr)
	if expr.Op != token.PLUS {
		t.Fatalf("root op mismatch: %s", expr.Op)
	}
	right, ok := expr.Right.(*ast.BinaryExpr)
	if !ok || right.Op != token.STAR {
		t.Errorf("right operand should be b * c, got %v", expr.Right)
	}
}

func TestPowerRightAssociative(t *testing.T) {
	expr := exprOf(t, "a ** b ** c\n").(*ast.BinaryExpr)
	if expr.Op != token.DOUBLE_STAR {
		t.Fatalf("root op mismatch: %s", expr.Op)
	}
	right, ok := expr.Right.(*ast.BinaryExpr)
	if !ok || right.Op != token.DOUBLE_STAR {
		t.Errorf("expected a ** (b ** c), got %v", expr)
	}
	if _, ok := expr.Left.(*ast.Identifier); !ok {
		t.Errorf("left should be a bare identifier, got %v", expr.Left)
	}
}

func TestUnaryInPower(t *testing.T) {
	expr := exprOf(t, "2 ** -1\n").(*ast.BinaryExpr)
	if _, ok := expr.Right.(*ast.UnaryExpr); !ok {
		t.Errorf("expected unary right operand, got %v", expr.Right)
	}
}

func TestChainedComparison(t *testing.T) {
	expr := exprOf(t, "a < b < c\n").(*ast.CompareExpr)
	if len(expr.Ops) != 2 {
		t.Fatalf("expected 2 operators in one chain, got %d", len(expr.Ops))
	}
	if expr.Ops[0] != ast.CmpLt || expr.Ops[1] != ast.CmpLt {
		t.Errorf("ops mismatch: %v", expr.Ops)
	}
}

func TestCompoundComparisonOperators(t *testing.T) {
	tests := []struct {
		source string
		op     ast.CmpOp
	}{
		{"a in b\n", ast.CmpIn},
		{"a not in b\n", ast.CmpNotIn},
		{"a is b\n", ast.CmpIs},
		{"a is not b\n", ast.CmpIsNot},
	}

	for _, tt := range tests {
		expr := exprOf(t, tt.source).(*ast.CompareExpr)
		if len(expr.Ops) != 1 || expr.Ops[0] != tt.op {
			t.Errorf("source %q: ops mismatch: %v", tt.source, expr.Ops)
		}
	}
}

func TestBoolOpCollectsRuns(t *testing.T) {
	expr := exprOf(t, "a and b and c or d\n").(*ast.BoolOpExpr)
	if expr.Op != token.OR || len(expr.Values) != 2 {
		t.Fatalf("expected top-level or with 2 operands, got %v", expr)
	}
	inner, ok := expr.Values[0].(*ast.BoolOpExpr)
	if !ok || inner.Op != token.AND || len(inner.Values) != 3 {
		t.Errorf("expected 3-operand and run, got %v", expr.Values[0])
	}
}

func TestNotPrecedence(t *testing.T) {
	expr := exprOf(t, "not a == b\n").(*ast.UnaryExpr)
	if expr.Op != token.NOT {
		t.Fatalf("expected not, got %s", expr.Op)
	}
	if _, ok := expr.Operand.(*ast.CompareExpr); !ok {
		t.Errorf("not should wrap the comparison, got %v", expr.Operand)
	}
}

func TestTernary(t *testing.T) {
	expr := exprOf(t, "a if cond else b\n").(*ast.TernaryExpr)
	if _, ok := expr.Cond.(*ast.Identifier); !ok {
		t.Errorf("cond mismatch: %v", expr.Cond)
	}
}

func TestWalrus(t *testing.T) {
	module := parseClean(t, "if (n := read()) > 0:\n    pass\n")
	ifStmt := module.Statements[0].(*ast.IfStmt)
	cmp := ifStmt.Branches[0].Cond.(*ast.CompareExpr)
	walrus, ok := cmp.Left.(*ast.WalrusExpr)
	if !ok || walrus.Target.Name != "n" {
		t.Fatalf("expected walrus on the left, got %v", cmp.Left)
	}

	_, p := parseModule(t, "x = (5 := 2)\n")
	if !p.HasErrors() || p.Errors()[0].Kind != InvalidAssignTarget {
		t.Error("expected an invalid walrus target error")
	}
}

// ----------------------------------------------------------------------------
// Postfix chains
// ----------------------------------------------------------------------------

func TestPostfixChain(t *testing.T) {
	expr := exprOf(t, "obj.items[0].name(1, 2)\n").(*ast.CallExpr)
	attr, ok := expr.Func.(*ast.AttributeExpr)
	if !ok || attr.Attr.Name != "name" {
		t.Fatalf("callee mismatch: %v", expr.Func)
	}
	sub, ok := attr.Target.(*ast.SubscriptExpr)
	if !ok {
		t.Fatalf("expected subscript below the attribute, got %v", attr.Target)
	}
	if _, ok := sub.Target.(*ast.AttributeExpr); !ok {
		t.Errorf("expected obj.items at the bottom, got %v", sub.Target)
	}
	if len(expr.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(expr.Args))
	}
}

func TestCallWithStarredArg(t *testing.T) {
	expr := exprOf(t, "f(a, *rest)\n").(*ast.CallExpr)
	if _, ok := expr.Args[1].(*ast.StarredExpr); !ok {
		t.Errorf("expected starred argument, got %v", expr.Args[1])
	}
}

// ----------------------------------------------------------------------------
// Collections and comprehensions
// ----------------------------------------------------------------------------

func TestParenForms(t *testing.T) {
	if tup := exprOf(t, "()\n").(*ast.TupleExpr); len(tup.Elements) != 0 {
		t.Error("() should be the empty tuple")
	}
	if _, ok := exprOf(t, "(x)\n").(*ast.Identifier); !ok {
		t.Error("(x) should be transparent grouping")
	}
	if tup := exprOf(t, "(x,)\n").(*ast.TupleExpr); len(tup.Elements) != 1 {
		t.Error("(x,) should be a one-element tuple")
	}
	if tup := exprOf(t, "(a, b)\n").(*ast.TupleExpr); len(tup.Elements) != 2 {
		t.Error("(a, b) should be a two-element tuple")
	}
	if _, ok := exprOf(t, "(i for i in xs)\n").(*ast.GeneratorExpr); !ok {
		t.Error("(i for i in xs) should be a generator expression")
	}
}

func TestBraceForms(t *testing.T) {
	if d := exprOf(t, "{}\n").(*ast.DictExpr); len(d.Entries) != 0 {
		t.Error("{} should be the empty dict")
	}
	if s := exprOf(t, "{1, 2}\n").(*ast.SetExpr); len(s.Elements) != 2 {
		t.Error("{1, 2} should be a set")
	}
	if d := exprOf(t, "{1: 2, 3: 4}\n").(*ast.DictExpr); len(d.Entries) != 2 {
		t.Error("{1: 2, 3: 4} should be a dict")
	}
	if _, ok := exprOf(t, "{x for x in xs}\n").(*ast.SetCompExpr); !ok {
		t.Error("expected a set comprehension")
	}
	if _, ok := exprOf(t, "{k: v for k in xs}\n").(*ast.DictCompExpr); !ok {
		t.Error("expected a dict comprehension")
	}
}

func TestListComprehension(t *testing.T) {
	expr := exprOf(t, "[i*2 for i in xs if i > 0]\n").(*ast.ListCompExpr)

	if _, ok := expr.Elt.(*ast.BinaryExpr); !ok {
		t.Errorf("element mismatch: %v", expr.Elt)
	}
	if len(expr.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(expr.Clauses))
	}
	clause := expr.Clauses[0]
	if target, ok := clause.Target.(*ast.Identifier); !ok || target.Name != "i" {
		t.Errorf("target mismatch: %v", clause.Target)
	}
	if iter, ok := clause.Iter.(*ast.Identifier); !ok || iter.Name != "xs" {
		t.Errorf("iter mismatch: %v", clause.Iter)
	}
	if len(clause.Ifs) != 1 {
		t.Errorf("expected 1 condition, got %d", len(clause.Ifs))
	}
}

func TestNestedComprehensionClauses(t *testing.T) {
	expr := exprOf(t, "[x for row in grid for x in row if x]\n").(*ast.ListCompExpr)
	if len(expr.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(expr.Clauses))
	}
	if len(expr.Clauses[1].Ifs) != 1 {
		t.Errorf("second clause should carry the filter")
	}
}

func TestSubscriptTupleIndex(t *testing.T) {
	expr := exprOf(t, "matrix[i, j]\n").(*ast.SubscriptExpr)
	index, ok := expr.Index.(*ast.TupleExpr)
	if !ok || len(index.Elements) != 2 {
		t.Errorf("expected tuple index, got %v", expr.Index)
	}
}

// ----------------------------------------------------------------------------
// Control flow
// ----------------------------------------------------------------------------

func TestIfElifElse(t *testing.T) {
	source := "" +
		"if x > 0:\n" +
		"    y = 1\n" +
		"elif x < 0:\n" +
		"    y = -1\n" +
		"else:\n" +
		"    y = 0\n"

	stmt := singleStatement(t, source).(*ast.IfStmt)
	if len(stmt.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(stmt.Branches))
	}
	if stmt.Else == nil || len(stmt.Else) != 1 {
		t.Fatalf("expected a one-statement else block")
	}
	first := stmt.Branches[0].Cond.(*ast.CompareExpr)
	if first.Ops[0] != ast.CmpGt {
		t.Errorf("first condition mismatch: %v", first.Ops)
	}
}

func TestWhileWithElse(t *testing.T) {
	source := "while x:\n    x = step()\nelse:\n    done()\n"
	stmt := singleStatement(t, source).(*ast.WhileStmt)
	if stmt.Else == nil {
		t.Error("expected an else block")
	}
}

func TestForLoop(t *testing.T) {
	source := "for k, v in items:\n    use(k, v)\nelse:\n    pass\n"
	stmt := singleStatement(t, source).(*ast.ForStmt)
	target, ok := stmt.Target.(*ast.TupleExpr)
	if !ok || len(target.Elements) != 2 {
		t.Fatalf("target mismatch: %v", stmt.Target)
	}
	if stmt.Else == nil {
		t.Error("expected an else block")
	}
}

func TestSingleLineSuite(t *testing.T) {
	stmt := singleStatement(t, "if x: pass\n").(*ast.IfStmt)
	if len(stmt.Branches[0].Body) != 1 {
		t.Fatalf("expected one body statement")
	}

	two := singleStatement(t, "while x: a = 1; b = 2\n").(*ast.WhileStmt)
	if len(two.Body) != 2 {
		t.Errorf("expected two body statements, got %d", len(two.Body))
	}
}

func TestSemicolonSeparatedStatements(t *testing.T) {
	module := parseClean(t, "a = 1; b = 2\n")
	if len(module.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(module.Statements))
	}
}

func TestMissingIndentedBlock(t *testing.T) {
	_, p := parseModule(t, "if x:\ny = 1\n")
	if !p.HasErrors() {
		t.Fatal("expected an error for the missing block")
	}
	if !strings.Contains(p.Errors()[0].Message, "indented block") {
		t.Errorf("message mismatch: %q", p.Errors()[0].Message)
	}
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func TestFunctionDef(t *testing.T) {
	source := "def f(a, b=1, *, c, **kw) -> int:\n    return a + b + c\n"
	stmt := singleStatement(t, source).(*ast.FunctionDef)

	if stmt.Name.Name != "f" || stmt.Async {
		t.Fatalf("header mismatch: %v", stmt)
	}

	params := stmt.Params.Params
	if len(params) != 4 {
		t.Fatalf("expected 4 named parameters, got %d", len(params))
	}
	if params[0].Kind != ast.ParamRegular || params[0].Default != nil {
		t.Errorf("param a mismatch: %v", params[0])
	}
	if params[1].Kind != ast.ParamRegular || params[1].Default == nil {
		t.Errorf("param b mismatch: %v", params[1])
	}
	if !stmt.Params.HasStar {
		t.Error("expected a bare * separator")
	}
	if params[2].Kind != ast.ParamKwOnly {
		t.Errorf("param c should be keyword-only, got %v", params[2].Kind)
	}
	if params[3].Kind != ast.ParamVarKwargs {
		t.Errorf("param kw should be **kwargs, got %v", params[3].Kind)
	}

	if rt, ok := stmt.ReturnType.(*ast.Identifier); !ok || rt.Name != "int" {
		t.Errorf("return type mismatch: %v", stmt.ReturnType)
	}

	ret, ok := stmt.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("body mismatch: %v", stmt.Body[0])
	}
	if _, ok := ret.Value.(*ast.BinaryExpr); !ok {
		t.Errorf("return value should be a chained addition, got %v", ret.Value)
	}
}

func TestPositionalOnlyParams(t *testing.T) {
	source := "def f(a, b, /, c, *, d):\n    pass\n"
	stmt := singleStatement(t, source).(*ast.FunctionDef)

	kinds := []ast.ParamKind{}
	for _, p := range stmt.Params.Params {
		kinds = append(kinds, p.Kind)
	}
	want := []ast.ParamKind{
		ast.ParamPositionalOnly, ast.ParamPositionalOnly,
		ast.ParamRegular, ast.ParamKwOnly,
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("param %d kind mismatch: got %v, want %v", i, kinds[i], want[i])
		}
	}
	if !stmt.Params.HasSlash {
		t.Error("expected the / marker")
	}
}

func TestParamAnnotations(t *testing.T) {
	source := "def f(a: int, b: str = \"x\", *args: int, **kw: int) -> None:\n    pass\n"
	stmt := singleStatement(t, source).(*ast.FunctionDef)
	for i, p := range stmt.Params.Params {
		if p.Annotation == nil {
			t.Errorf("param %d should carry an annotation", i)
		}
	}
}

func TestParamOrderViolations(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{"def f(a=1, b):\n    pass\n", "default"},
		{"def f(*a, *b):\n    pass\n", "Duplicate '*'"},
		{"def f(a, /, b, /):\n    pass\n", "Duplicate '/'"},
		{"def f(*a, /):\n    pass\n", "'/' must come before '*'"},
		{"def f(**kw, a):\n    pass\n", "after '**'"},
		{"def f(**kw, **kv):\n    pass\n", "Duplicate '**'"},
	}

	for _, tt := range tests {
		_, p := parseModule(t, tt.source)
		if !p.HasErrors() {
			t.Errorf("source %q: expected an error", tt.source)
			continue
		}
		err := p.Errors()[0]
		if err.Kind != ParamOrder {
			t.Errorf("source %q: kind mismatch: got %v", tt.source, err.Kind)
		}
		if !strings.Contains(err.Message, tt.message) {
			t.Errorf("source %q: message %q should contain %q", tt.source, err.Message, tt.message)
		}
	}
}

func TestDefaultAfterSlashResets(t *testing.T) {
	// A default before / does not constrain the regular group.
	parseClean(t, "def f(a=1, /, b, c=2):\n    pass\n")
}

func TestAsyncDef(t *testing.T) {
	stmt := singleStatement(t, "async def fetch(url):\n    pass\n").(*ast.FunctionDef)
	if !stmt.Async {
		t.Error("expected an async function")
	}

	_, p := parseModule(t, "async x = 1\n")
	if !p.HasErrors() || p.Errors()[0].Kind != AsyncWithoutDef {
		t.Error("expected the async-without-def error")
	}
	if !strings.Contains(p.Errors()[0].Message, "'def'") {
		t.Errorf("message mismatch: %q", p.Errors()[0].Message)
	}
}

func TestDecorators(t *testing.T) {
	source := "@cached\n@app.route(\"/x\")\ndef handler():\n    pass\n"
	stmt := singleStatement(t, source).(*ast.FunctionDef)
	if len(stmt.Decorators) != 2 {
		t.Fatalf("expected 2 decorators, got %d", len(stmt.Decorators))
	}
	if _, ok := stmt.Decorators[1].(*ast.CallExpr); !ok {
		t.Errorf("second decorator should be a call, got %v", stmt.Decorators[1])
	}
}

func TestLambda(t *testing.T) {
	expr := exprOf(t, "lambda a, b=1: a + b\n").(*ast.LambdaExpr)
	if len(expr.Params.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(expr.Params.Params))
	}
	if expr.Params.Params[1].Default == nil {
		t.Error("second param should have a default")
	}

	empty := exprOf(t, "lambda: 42\n").(*ast.LambdaExpr)
	if len(empty.Params.Params) != 0 {
		t.Error("expected no params")
	}
}

// ----------------------------------------------------------------------------
// Classes
// ----------------------------------------------------------------------------

func TestClassWithMetaclass(t *testing.T) {
	source := "" +
		"class C(Base, metaclass=Meta):\n" +
		"    pass\n" +
		"class D(metaclass=M1, metaclass=M2): pass\n"

	module, p := parseModule(t, source)

	if len(module.Statements) != 2 {
		t.Fatalf("both classes must survive, got %d statements", len(module.Statements))
	}

	first := module.Statements[0].(*ast.ClassDef)
	if len(first.Bases) != 1 || len(first.Keywords) != 1 {
		t.Errorf("class C header mismatch: bases=%d keywords=%d", len(first.Bases), len(first.Keywords))
	}
	if first.Metaclass() == nil {
		t.Error("class C should expose its metaclass")
	}

	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(p.Errors()), p.Errors())
	}
	err := p.Errors()[0]
	if err.Kind != ClassHeader || !strings.Contains(err.Message, "metaclass") {
		t.Errorf("error mismatch: %v", err)
	}
}

func TestBaseAfterKeywordRejected(t *testing.T) {
	_, p := parseModule(t, "class C(metaclass=M, Base):\n    pass\n")
	if !p.HasErrors() || p.Errors()[0].Kind != ClassHeader {
		t.Error("expected the base-after-keyword error")
	}
}

func TestClassForms(t *testing.T) {
	plain := singleStatement(t, "class C:\n    pass\n").(*ast.ClassDef)
	if len(plain.Bases) != 0 {
		t.Error("plain class should have no bases")
	}

	empty := singleStatement(t, "class C():\n    pass\n").(*ast.ClassDef)
	if len(empty.Bases) != 0 {
		t.Error("empty parens should mean no bases")
	}

	deco := singleStatement(t, "@register\nclass C(A, B):\n    x = 1\n").(*ast.ClassDef)
	if len(deco.Decorators) != 1 || len(deco.Bases) != 2 {
		t.Errorf("decorated class mismatch: %v", deco)
	}
}

// ----------------------------------------------------------------------------
// Imports and other simple statements
// ----------------------------------------------------------------------------

func TestImports(t *testing.T) {
	stmt := singleStatement(t, "import os, os.path as p\n").(*ast.ImportStmt)
	if len(stmt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stmt.Items))
	}
	if stmt.Items[1].Name != "os.path" || stmt.Items[1].Alias == nil {
		t.Errorf("second item mismatch: %v", stmt.Items[1])
	}
}

func TestFromImports(t *testing.T) {
	stmt := singleStatement(t, "from os.path import join as j, split\n").(*ast.FromImportStmt)
	if stmt.Module != "os.path" || len(stmt.Items) != 2 {
		t.Fatalf("from-import mismatch: %v", stmt)
	}

	wild := singleStatement(t, "from os import *\n").(*ast.FromImportStmt)
	if !wild.Wildcard {
		t.Error("expected a wildcard import")
	}

	wrapped := singleStatement(t, "from os import (getcwd, sep,)\n").(*ast.FromImportStmt)
	if len(wrapped.Items) != 2 {
		t.Errorf("parenthesized list mismatch: %d items", len(wrapped.Items))
	}
}

func TestSimpleStatements(t *testing.T) {
	module := parseClean(t, ""+
		"pass\n"+
		"x = 0\n"+
		"del x\n"+
		"global a, b\n"+
		"nonlocal c\n"+
		"assert cond, \"message\"\n"+
		"raise Error(\"boom\") from cause\n"+
		"return_value = None\n")

	if len(module.Statements) != 8 {
		t.Fatalf("expected 8 statements, got %d", len(module.Statements))
	}

	assertStmt := module.Statements[5].(*ast.AssertStmt)
	if assertStmt.Msg == nil {
		t.Error("assert should carry its message")
	}
	raiseStmt := module.Statements[6].(*ast.RaiseStmt)
	if raiseStmt.Exc == nil || raiseStmt.Cause == nil {
		t.Error("raise ... from ... should carry both expressions")
	}
}

func TestReturnForms(t *testing.T) {
	source := "def f():\n    return\n\ndef g():\n    return 1, 2\n"
	module := parseClean(t, source)

	bare := module.Statements[0].(*ast.FunctionDef).Body[0].(*ast.ReturnStmt)
	if bare.Value != nil {
		t.Error("bare return should have no value")
	}

	tuple := module.Statements[1].(*ast.FunctionDef).Body[0].(*ast.ReturnStmt)
	if _, ok := tuple.Value.(*ast.TupleExpr); !ok {
		t.Errorf("return 1, 2 should build a tuple, got %v", tuple.Value)
	}
}

// ----------------------------------------------------------------------------
// Error recovery and reporting
// ----------------------------------------------------------------------------

func TestRecoveryKeepsSurroundingStatements(t *testing.T) {
	module, p := parseModule(t, "x = 1\ny = = 2\nz = 3\n")

	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one error")
	}
	if len(module.Statements) != 2 {
		t.Fatalf("both valid statements must survive, got %d", len(module.Statements))
	}
}

func TestCascadingErrorsSuppressed(t *testing.T) {
	_, p := parseModule(t, "if\nwhile\nfor\n")
	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error (cascade suppressed), got %d: %v", len(p.Errors()), p.Errors())
	}
}

func TestRecoveryAfterMissingColon(t *testing.T) {
	module, p := parseModule(t, "if x == 5\n    go()\nok()\n")

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(p.Errors()), p.Errors())
	}
	if !strings.Contains(p.Errors()[0].Message, "Expected ':'") {
		t.Errorf("message mismatch: %q", p.Errors()[0].Message)
	}

	// The trailing valid statement still parses.
	last := module.Statements[len(module.Statements)-1].(*ast.ExprStmt)
	call := last.X.(*ast.CallExpr)
	if call.Func.(*ast.Identifier).Name != "ok" {
		t.Errorf("trailing statement mismatch: %v", last.X)
	}
}

func TestErrorPositionNamesOperator(t *testing.T) {
	_, p := parseModule(t, "x = 1 +\ny = 2\n")
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error")
	}
	// The error is reported at the operator, not at the newline.
	err := p.Errors()[0]
	if err.Pos.Line != 1 || err.Pos.Column != 7 {
		t.Errorf("error position: got %d:%d, want 1:7", err.Pos.Line, err.Pos.Column)
	}
}

func TestUnsupportedStatements(t *testing.T) {
	tests := []string{
		"try:\n    pass\n",
		"with open(f) as fh:\n    pass\n",
		"match x:\n    pass\n",
	}

	for _, source := range tests {
		_, p := parseModule(t, source)
		if len(p.Errors()) == 0 {
			t.Errorf("source %q: expected an error", source)
			continue
		}
		if p.Errors()[0].Kind != Unsupported {
			t.Errorf("source %q: kind mismatch: got %v", source, p.Errors()[0].Kind)
		}
	}
}

func TestDepthLimit(t *testing.T) {
	source := "x = " + strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + "\n"

	_, p := parseModule(t, source)
	if len(p.Errors()) == 0 {
		t.Fatal("expected a nesting error")
	}
	found := false
	for _, err := range p.Errors() {
		if err.Kind == NestingTooDeep {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a NestingTooDeep error, got %v", p.Errors())
	}
}

func TestErrorLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("x = 1\n")
		sb.WriteString("5 = x\n")
	}

	_, p := parseModule(t, sb.String())
	if len(p.Errors()) > maxParseErrors+1 {
		t.Errorf("error list should be capped, got %d", len(p.Errors()))
	}
}

func TestPositionsWithinSource(t *testing.T) {
	source := "def f(a):\n    return a + 1\n\nx = f(2)\n"
	module := parseClean(t, source)

	for _, stmt := range module.Statements {
		pos := stmt.Pos()
		if pos.Offset < 0 || pos.Offset >= len(source) {
			t.Errorf("statement position %v outside the source", pos)
		}
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	source := "value = other\n"
	module := parseClean(t, source)

	assign := module.Statements[0].(*ast.AssignStmt)
	for _, node := range []ast.Expression{assign.Targets[0], assign.Value} {
		ident := node.(*ast.Identifier)
		start := ident.Pos().Offset
		end := start + len(ident.Name)
		if source[start:end] != ident.Name {
			t.Errorf("identifier %q does not match source at offset %d", ident.Name, start)
		}
	}
}

// ----------------------------------------------------------------------------
// Typo suggestions
// ----------------------------------------------------------------------------

func TestKeywordTypoSuggestions(t *testing.T) {
	tests := []struct {
		source     string
		mention    string
		suggestion string
	}{
		{"elseif x:\n    pass\n", "elseif", "elif"},
		{"elsif x:\n    pass\n", "elsif", "elif"},
		{"define foo():\n    pass\n", "define", "def"},
		{"function bar():\n    pass\n", "function", "def"},
		{"func baz():\n    pass\n", "func", "def"},
		{"cls Foo:\n    pass\n", "cls", "class"},
		{"switch x:\n    pass\n", "switch", "match"},
		{"foreach item in items:\n    pass\n", "foreach", "for"},
		{"until x > 10:\n    pass\n", "until", "while not"},
		{"unless x:\n    pass\n", "unless", "if not"},
	}

	for _, tt := range tests {
		_, p := parseModule(t, tt.source)
		if len(p.Errors()) == 0 {
			t.Errorf("source %q: expected an error", tt.source)
			continue
		}
		err := p.Errors()[0]
		if !strings.Contains(err.Message, tt.mention) {
			t.Errorf("source %q: message %q should mention %q", tt.source, err.Message, tt.mention)
		}
		if !strings.Contains(err.Suggestion, tt.suggestion) {
			t.Errorf("source %q: suggestion %q should contain %q", tt.source, err.Suggestion, tt.suggestion)
		}
	}
}

func TestElseifAfterIf(t *testing.T) {
	source := "if x == 5:\n    pass\nelseif x == 6:\n    pass\n"
	_, p := parseModule(t, source)
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error")
	}
	if !strings.Contains(p.Errors()[0].Suggestion, "elif") {
		t.Errorf("suggestion mismatch: %q", p.Errors()[0].Suggestion)
	}
}

func TestThenSuggestion(t *testing.T) {
	_, p := parseModule(t, "if x == 5 then:\n    pass\n")
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error")
	}
	err := p.Errors()[0]
	if !strings.Contains(err.Message, "then") {
		t.Errorf("message mismatch: %q", err.Message)
	}
	if !strings.Contains(err.Suggestion, "Remove") {
		t.Errorf("suggestion mismatch: %q", err.Suggestion)
	}
}

func TestMisspelledKeywordNearMiss(t *testing.T) {
	_, p := parseModule(t, "whlie x:\n    pass\n")
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error")
	}
	if !strings.Contains(p.Errors()[0].Suggestion, "while") {
		t.Errorf("suggestion mismatch: %q", p.Errors()[0].Suggestion)
	}
}

func TestTypoTableLeavesExpressionsAlone(t *testing.T) {
	// Identifiers from the typo table are fine outside block headers.
	module := parseClean(t, "until = 5\ncls = until + 1\nfunc = cls\n")
	if len(module.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(module.Statements))
	}
}
