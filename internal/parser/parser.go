// Package parser builds the Mamba AST from a token stream.
//
// The parser is recursive descent with one token of lookahead (two for
// the "not in" / "is not" compound operators). Errors never abort the
// parse: each error is recorded, the parser enters panic mode, skips
// ahead to a synchronization point (a line boundary, a block boundary,
// or a statement-start keyword) and resumes. A panic episode suppresses
// further errors until at least one statement has parsed cleanly, so a
// single mistake never produces a cascade.
package parser

import (
	"fmt"

	"github.com/mamba-lang/mamba/internal/ast"
	"github.com/mamba-lang/mamba/internal/errors"
	"github.com/mamba-lang/mamba/internal/i18n"
	"github.com/mamba-lang/mamba/internal/lexer"
	"github.com/mamba-lang/mamba/internal/token"
)

// Parser parses one source file.
type Parser struct {
	lexer    *lexer.Lexer
	tokens   []token.Token
	current  int
	errors   []Error
	filename string

	panicMode bool // the statement being parsed has failed
	suppress  bool // a panic episode is active: record nothing new
	limitHit  bool // maxParseErrors reached

	exprDepth  int
	blockDepth int
}

// maxNestingDepth bounds recursive descent so adversarial input cannot
// overflow the goroutine stack.
const maxNestingDepth = 200

// maxParseErrors bounds the error list on pathological input.
const maxParseErrors = 50

// ============================================================================
// Errors
// ============================================================================

// ErrorKind is the stable tag of a parse error.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	MissingDelimiter
	ExpectedExpression
	InvalidAssignTarget
	StarredMisuse
	ParamOrder
	AsyncWithoutDef
	ClassHeader
	Unsupported
	UnexpectedEOF
	NestingTooDeep
)

// Code returns the diagnostic code of the kind.
func (k ErrorKind) Code() string {
	switch k {
	case UnexpectedToken:
		return "E0100"
	case MissingDelimiter:
		return "E0101"
	case ExpectedExpression:
		return "E0102"
	case InvalidAssignTarget:
		return "E0103"
	case StarredMisuse:
		return "E0104"
	case ParamOrder:
		return "E0105"
	case AsyncWithoutDef:
		return "E0106"
	case ClassHeader:
		return "E0107"
	case Unsupported:
		return "E0108"
	case UnexpectedEOF:
		return "E0109"
	case NestingTooDeep:
		return "E0110"
	}
	return "E0099"
}

// Error is a parse error with its position and an optional suggestion.
type Error struct {
	Pos        token.Position
	Kind       ErrorKind
	Message    string
	Suggestion string
}

func (e Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Pos, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ============================================================================
// Construction
// ============================================================================

// New lexes the source eagerly and prepares a parser over the token
// vector. Lexical errors are reachable through LexErrors.
func New(source, filename string) *Parser {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	return &Parser{
		lexer:    l,
		tokens:   tokens,
		filename: filename,
	}
}

// ============================================================================
// Public API
// ============================================================================

// Parse parses the whole file. A module is always returned; callers must
// treat a non-empty Errors() as failure even though the module holds
// everything that was recoverable.
func (p *Parser) Parse() *ast.Module {
	module := &ast.Module{Filename: p.filename}

	for !p.isAtEnd() {
		if p.match(token.NEWLINE) {
			continue
		}
		// A DEDENT at module level is the tail of a block whose header
		// failed to parse; the error is already on record.
		if p.match(token.DEDENT) {
			continue
		}

		p.panicMode = false
		stmt := p.parseStatement()
		if p.panicMode {
			p.synchronize()
			continue
		}

		// A clean statement ends the current panic episode.
		p.suppress = false
		if stmt != nil {
			module.Statements = append(module.Statements, stmt)
		}
	}

	return module
}

// Errors returns the collected parse errors in discovery order.
func (p *Parser) Errors() []Error {
	return p.errors
}

// HasErrors reports whether parsing recorded any error.
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// LexErrors returns the lexical errors found while tokenizing.
func (p *Parser) LexErrors() []lexer.Error {
	return p.lexer.Errors()
}

// Tokens exposes the scanned token vector (used by the CLI dump flag).
func (p *Parser) Tokens() []token.Token {
	return p.tokens
}

// ============================================================================
// Cursor helpers
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) checkAny(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// ============================================================================
// Error recording
// ============================================================================

// record appends an error unless a panic episode suppresses it. An error
// at the same line and column as the previous one is dropped, and the
// list is capped.
func (p *Parser) record(pos token.Position, kind ErrorKind, message, suggestion string) {
	if p.suppress || p.limitHit {
		return
	}
	if len(p.errors) > 0 {
		last := p.errors[len(p.errors)-1]
		if last.Pos.Line == pos.Line && last.Pos.Column == pos.Column {
			return
		}
	}
	if len(p.errors) >= maxParseErrors {
		p.errors = append(p.errors, Error{
			Pos:     pos,
			Kind:    kind,
			Message: i18n.T(i18n.ErrTooManyErrors),
		})
		p.limitHit = true
		return
	}
	p.errors = append(p.errors, Error{
		Pos:        pos,
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	})
	p.suppress = true
}

// error records a hard error at the current token and enters panic mode.
func (p *Parser) error(kind ErrorKind, message string) {
	p.errorAt(p.peek().Pos, kind, message)
}

func (p *Parser) errorAt(pos token.Position, kind ErrorKind, message string) {
	if !p.panicMode {
		p.record(pos, kind, message, "")
	}
	p.panicMode = true
}

// errorWithSuggestion is the hard-error form carrying a hint.
func (p *Parser) errorWithSuggestion(pos token.Position, kind ErrorKind, message, suggestion string) {
	if !p.panicMode {
		p.record(pos, kind, message, suggestion)
	}
	p.panicMode = true
}

// softError records a validation error without aborting the statement:
// the construct is syntactically parseable, just not legal.
func (p *Parser) softError(pos token.Position, kind ErrorKind, message string) {
	p.record(pos, kind, message, "")
}

// expected reports "Expected <what>, found <current>" as a hard error.
func (p *Parser) expected(kind ErrorKind, what string) {
	p.error(kind, i18n.T(i18n.ErrExpected, what, p.peek().Describe()))
}

// consume advances over the expected token or reports a hard error.
func (p *Parser) consume(t token.Type, what string) token.Token {
	if p.peek().Type == t {
		return p.advance()
	}
	p.expected(p.delimiterKind(), what)
	return token.Token{}
}

// consumeAfter is consume with "after <context>" in the message, so the
// error names the construct rather than just the missing token.
func (p *Parser) consumeAfter(t token.Type, what, after string) token.Token {
	if p.peek().Type == t {
		return p.advance()
	}
	p.error(p.delimiterKind(), i18n.T(i18n.ErrExpectedAfter, what, after, p.peek().Describe()))
	return token.Token{}
}

func (p *Parser) delimiterKind() ErrorKind {
	if p.isAtEnd() {
		return UnexpectedEOF
	}
	return MissingDelimiter
}

// consumeIdentAfter consumes an identifier and wraps it in an AST node.
func (p *Parser) consumeIdentAfter(what, after string) *ast.Identifier {
	tok := p.consumeAfter(token.IDENT, what, after)
	if p.panicMode {
		return nil
	}
	return &ast.Identifier{Token: tok, Name: tok.Literal}
}

// ============================================================================
// Panic-mode recovery
// ============================================================================

// synchronize skips tokens until a point where the grammar restarts: the
// end of the current logical line, a block boundary, or a token that can
// begin a statement. It always consumes at least one token so recovery
// makes progress.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		switch p.previous().Type {
		case token.NEWLINE, token.DEDENT:
			return
		}

		switch p.peek().Type {
		case token.DEF, token.CLASS, token.IF, token.WHILE, token.FOR,
			token.RETURN, token.IMPORT, token.FROM, token.TRY, token.WITH,
			token.PASS, token.BREAK, token.CONTINUE, token.RAISE, token.DEL,
			token.GLOBAL, token.NONLOCAL, token.ASSERT, token.AT,
			token.DEDENT:
			return
		}

		p.advance()
	}
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.PASS:
		tok := p.advance()
		p.endOfStatement()
		return &ast.PassStmt{Token: tok}

	case token.BREAK:
		tok := p.advance()
		p.endOfStatement()
		return &ast.BreakStmt{Token: tok}

	case token.CONTINUE:
		tok := p.advance()
		p.endOfStatement()
		return &ast.ContinueStmt{Token: tok}

	case token.RETURN:
		return p.parseReturn()
	case token.ASSERT:
		return p.parseAssert()
	case token.DEL:
		return p.parseDel()
	case token.GLOBAL:
		return p.parseNameListStmt(true)
	case token.NONLOCAL:
		return p.parseNameListStmt(false)
	case token.RAISE:
		return p.parseRaise()
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseFromImport()

	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.DEF:
		return p.parseFunctionDef(nil, false)
	case token.CLASS:
		return p.parseClassDef(nil)
	case token.AT:
		return p.parseDecorated()
	case token.ASYNC:
		return p.parseAsync(nil)

	case token.TRY, token.EXCEPT, token.FINALLY, token.WITH, token.MATCH, token.CASE:
		p.error(Unsupported, i18n.T(i18n.ErrStmtNotSupported, p.peek().Literal))
		return nil

	case token.YIELD, token.AWAIT:
		p.error(Unsupported, i18n.T(i18n.ErrExprNotSupported, p.peek().Literal))
		return nil

	case token.INDENT:
		p.error(UnexpectedToken, i18n.T(i18n.ErrUnexpectedIndent))
		return nil

	case token.DEDENT:
		p.error(UnexpectedToken, i18n.T(i18n.ErrUnexpectedDedent))
		return nil

	case token.ELSE, token.ELIF:
		p.expected(UnexpectedToken, "a statement")
		return nil

	case token.IDENT:
		if p.statementTypo() {
			return nil
		}
		return p.parseExprOrAssign()

	default:
		return p.parseExprOrAssign()
	}
}

// endOfStatement terminates a simple statement: a semicolon (optionally
// followed by the line's newline), a newline, a closing dedent, or EOF.
func (p *Parser) endOfStatement() {
	if p.match(token.SEMICOLON) {
		p.match(token.NEWLINE)
		return
	}
	if p.match(token.NEWLINE) {
		return
	}
	if p.isAtEnd() || p.check(token.DEDENT) {
		return
	}
	p.expected(MissingDelimiter, "newline")
}

// ----------------------------------------------------------------------------
// Simple statements
// ----------------------------------------------------------------------------

func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance()

	var value ast.Expression
	if !p.checkAny(token.NEWLINE, token.SEMICOLON, token.DEDENT) && !p.isAtEnd() {
		value = p.parseTupleOrExpr()
		if p.panicMode {
			return nil
		}
	}

	p.endOfStatement()
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) parseAssert() ast.Statement {
	tok := p.advance()

	cond := p.parseExpression()
	if p.panicMode {
		return nil
	}

	var msg ast.Expression
	if p.match(token.COMMA) {
		msg = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}

	p.endOfStatement()
	return &ast.AssertStmt{Token: tok, Cond: cond, Msg: msg}
}

func (p *Parser) parseDel() ast.Statement {
	tok := p.advance()

	targets := []ast.Expression{}
	for {
		target := p.parseExpression()
		if p.panicMode {
			return nil
		}
		targets = append(targets, target)

		if !p.match(token.COMMA) {
			break
		}
		if p.checkAny(token.NEWLINE, token.SEMICOLON) || p.isAtEnd() {
			break
		}
	}

	p.endOfStatement()
	return &ast.DelStmt{Token: tok, Targets: targets}
}

// parseNameListStmt parses global and nonlocal.
func (p *Parser) parseNameListStmt(global bool) ast.Statement {
	tok := p.advance()
	keyword := "'" + tok.Literal + "'"

	var names []*ast.Identifier
	for {
		name := p.consumeIdentAfter("identifier", keyword)
		if p.panicMode {
			return nil
		}
		names = append(names, name)

		if !p.match(token.COMMA) {
			break
		}
		if p.checkAny(token.NEWLINE, token.SEMICOLON) || p.isAtEnd() {
			break
		}
	}

	p.endOfStatement()
	if global {
		return &ast.GlobalStmt{Token: tok, Names: names}
	}
	return &ast.NonlocalStmt{Token: tok, Names: names}
}

func (p *Parser) parseRaise() ast.Statement {
	tok := p.advance()

	var exc, cause ast.Expression
	if !p.checkAny(token.NEWLINE, token.SEMICOLON, token.DEDENT) && !p.isAtEnd() {
		exc = p.parseExpression()
		if p.panicMode {
			return nil
		}
		if p.match(token.FROM) {
			cause = p.parseExpression()
			if p.panicMode {
				return nil
			}
		}
	}

	p.endOfStatement()
	return &ast.RaiseStmt{Token: tok, Exc: exc, Cause: cause}
}

// ----------------------------------------------------------------------------
// Imports
// ----------------------------------------------------------------------------

// parseDottedName reads a dotted module path like os.path and returns it
// joined with dots.
func (p *Parser) parseDottedName(after string) (string, token.Position) {
	first := p.consumeAfter(token.IDENT, "module name", after)
	if p.panicMode {
		return "", token.Position{}
	}

	name := first.Literal
	for p.check(token.DOT) && p.peekNext().Type == token.IDENT {
		p.advance()
		part := p.advance()
		name += "." + part.Literal
	}
	return name, first.Pos
}

func (p *Parser) parseImport() ast.Statement {
	tok := p.advance()

	var items []*ast.ImportItem
	for {
		name, namePos := p.parseDottedName("'import'")
		if p.panicMode {
			return nil
		}

		item := &ast.ImportItem{Name: name, NamePos: namePos}
		if p.match(token.AS) {
			item.Alias = p.consumeIdentAfter("identifier", "'as'")
			if p.panicMode {
				return nil
			}
		}
		items = append(items, item)

		if !p.match(token.COMMA) {
			break
		}
		if p.checkAny(token.NEWLINE, token.SEMICOLON) || p.isAtEnd() {
			break
		}
	}

	p.endOfStatement()
	return &ast.ImportStmt{Token: tok, Items: items}
}

func (p *Parser) parseFromImport() ast.Statement {
	tok := p.advance()

	module, _ := p.parseDottedName("'from'")
	if p.panicMode {
		return nil
	}

	p.consumeAfter(token.IMPORT, "'import'", "module name")
	if p.panicMode {
		return nil
	}

	stmt := &ast.FromImportStmt{Token: tok, Module: module}

	if p.check(token.STAR) {
		star := p.advance()
		stmt.Wildcard = true
		if p.check(token.AS) {
			p.softError(star.Pos, UnexpectedToken, i18n.T(i18n.ErrWildcardAlias))
		}
		if p.check(token.COMMA) {
			p.softError(star.Pos, UnexpectedToken, i18n.T(i18n.ErrWildcardCombine))
		}
		p.endOfStatement()
		return stmt
	}

	// The name list may be wrapped in parentheses.
	wrapped := p.match(token.LPAREN)

	for {
		if wrapped && p.check(token.RPAREN) {
			break
		}

		name := p.consumeIdentAfter("identifier", "'import'")
		if p.panicMode {
			return nil
		}

		item := &ast.ImportItem{Name: name.Name, NamePos: name.Pos()}
		if p.match(token.AS) {
			item.Alias = p.consumeIdentAfter("identifier", "'as'")
			if p.panicMode {
				return nil
			}
		}
		stmt.Items = append(stmt.Items, item)

		if !p.match(token.COMMA) {
			break
		}
		if !wrapped && (p.checkAny(token.NEWLINE, token.SEMICOLON) || p.isAtEnd()) {
			break
		}
	}

	if wrapped {
		p.consumeAfter(token.RPAREN, "')'", "import list")
		if p.panicMode {
			return nil
		}
	}

	p.endOfStatement()
	return stmt
}

// ----------------------------------------------------------------------------
// Assignments and expression statements
// ----------------------------------------------------------------------------

// parseExprOrAssign handles everything that starts with an expression:
// plain expression statements, chained assignments, tuple unpacking,
// augmented assignment and annotated assignment. The shape is only known
// after the first expression list has been read.
func (p *Parser) parseExprOrAssign() ast.Statement {
	first := p.parseStarredOrExpr()
	if p.panicMode {
		return nil
	}

	// target: annotation [= value]
	if p.check(token.COLON) {
		return p.parseAnnAssign(first)
	}

	// Unparenthesized tuple: a, b = ... or a, b as an expression.
	if p.check(token.COMMA) {
		elements := []ast.Expression{first}
		for p.match(token.COMMA) {
			if p.checkAny(token.ASSIGN, token.NEWLINE, token.SEMICOLON, token.DEDENT) ||
				token.IsAugAssign(p.peek().Type) || p.isAtEnd() {
				break
			}
			el := p.parseStarredOrExpr()
			if p.panicMode {
				return nil
			}
			elements = append(elements, el)
		}

		tuple := &ast.TupleExpr{Elements: elements}
		if p.match(token.ASSIGN) {
			p.validateTarget(tuple)
			return p.finishAssign([]ast.Expression{tuple})
		}

		p.checkNoStarred(elements)
		p.endOfStatement()
		return &ast.ExprStmt{X: tuple}
	}

	if p.match(token.ASSIGN) {
		p.validateTarget(first)
		return p.finishAssign([]ast.Expression{first})
	}

	if token.IsAugAssign(p.peek().Type) {
		opTok := p.advance()
		p.validateAugTarget(first)
		value := p.parseTupleOrExpr()
		if p.panicMode {
			return nil
		}
		p.endOfStatement()
		return &ast.AugAssignStmt{Target: first, OpToken: opTok, Op: opTok.Type, Value: value}
	}

	if starred, ok := first.(*ast.StarredExpr); ok {
		p.softError(starred.Pos(), StarredMisuse, i18n.T(i18n.ErrStarredHere))
	}
	p.endOfStatement()
	return &ast.ExprStmt{X: first}
}

// finishAssign parses the value of an assignment, accumulating chained
// targets: x = y = value.
func (p *Parser) finishAssign(targets []ast.Expression) ast.Statement {
	for {
		value := p.parseTupleOrExpr()
		if p.panicMode {
			return nil
		}

		if p.match(token.ASSIGN) {
			p.validateTarget(value)
			targets = append(targets, value)
			continue
		}

		p.endOfStatement()
		return &ast.AssignStmt{Targets: targets, Value: value}
	}
}

// parseAnnAssign parses target: annotation [= value]. The target must be
// a single name, attribute or subscript.
func (p *Parser) parseAnnAssign(target ast.Expression) ast.Statement {
	p.advance() // ':'

	switch target.(type) {
	case *ast.Identifier, *ast.AttributeExpr, *ast.SubscriptExpr:
	default:
		p.softError(target.Pos(), InvalidAssignTarget, i18n.T(i18n.ErrAnnTarget))
	}

	annotation := p.parseExpression()
	if p.panicMode {
		return nil
	}

	var value ast.Expression
	if p.match(token.ASSIGN) {
		value = p.parseTupleOrExpr()
		if p.panicMode {
			return nil
		}
	}

	p.endOfStatement()
	return &ast.AnnAssignStmt{Target: target, Annotation: annotation, Value: value}
}

// parseTupleOrExpr parses an expression or an unparenthesized tuple, as
// allowed on the right side of assignments and return statements.
func (p *Parser) parseTupleOrExpr() ast.Expression {
	first := p.parseStarredOrExpr()
	if p.panicMode || !p.check(token.COMMA) {
		return first
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.checkAny(token.ASSIGN, token.NEWLINE, token.SEMICOLON, token.DEDENT) || p.isAtEnd() {
			break
		}
		el := p.parseStarredOrExpr()
		if p.panicMode {
			return nil
		}
		elements = append(elements, el)
	}
	return &ast.TupleExpr{Elements: elements}
}

// parseStarredOrExpr parses *expr where unpacking is permitted.
func (p *Parser) parseStarredOrExpr() ast.Expression {
	if p.check(token.STAR) {
		star := p.advance()
		value := p.parseExpression()
		if p.panicMode {
			return nil
		}
		return &ast.StarredExpr{Star: star, Value: value}
	}
	return p.parseExpression()
}

// ----------------------------------------------------------------------------
// Assignment target validation
// ----------------------------------------------------------------------------

// validateTarget checks the assignment-target law: a target is a name,
// attribute, subscript, or a tuple/list of targets with at most one
// starred element.
func (p *Parser) validateTarget(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.AttributeExpr, *ast.SubscriptExpr:
	case *ast.TupleExpr:
		p.validateTargetList(e.Elements, e.Pos())
	case *ast.ListExpr:
		p.validateTargetList(e.Elements, e.Pos())
	case *ast.StarredExpr:
		// A lone starred target needs a surrounding tuple or list.
		p.softError(e.Pos(), StarredMisuse, i18n.T(i18n.ErrStarredHere))
		p.validateTarget(e.Value)
	default:
		p.softError(expr.Pos(), InvalidAssignTarget,
			i18n.T(i18n.ErrCannotAssign, describeExpr(expr)))
	}
}

func (p *Parser) validateTargetList(elements []ast.Expression, pos token.Position) {
	starred := 0
	for _, el := range elements {
		if s, ok := el.(*ast.StarredExpr); ok {
			starred++
			p.validateTarget(s.Value)
			continue
		}
		p.validateTarget(el)
	}
	if starred > 1 {
		p.softError(pos, StarredMisuse, i18n.T(i18n.ErrMultipleStarred))
	}
}

func (p *Parser) validateAugTarget(expr ast.Expression) {
	switch expr.(type) {
	case *ast.Identifier, *ast.AttributeExpr, *ast.SubscriptExpr:
	default:
		p.softError(expr.Pos(), InvalidAssignTarget, i18n.T(i18n.ErrAugTarget))
	}
}

func (p *Parser) checkNoStarred(elements []ast.Expression) {
	for _, el := range elements {
		if s, ok := el.(*ast.StarredExpr); ok {
			p.softError(s.Pos(), StarredMisuse, i18n.T(i18n.ErrStarredHere))
			return
		}
	}
}

// describeExpr names an expression class for "Cannot assign to ..."
// style messages.
func describeExpr(expr ast.Expression) string {
	switch expr.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.StringLit, *ast.BoolLit,
		*ast.NoneLit, *ast.EllipsisLit:
		return "literal"
	case *ast.CallExpr:
		return "function call"
	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.BoolOpExpr:
		return "operator expression"
	case *ast.CompareExpr:
		return "comparison"
	case *ast.LambdaExpr:
		return "lambda"
	case *ast.TernaryExpr:
		return "conditional expression"
	case *ast.WalrusExpr:
		return "assignment expression"
	case *ast.DictExpr, *ast.DictCompExpr:
		return "dict display"
	case *ast.SetExpr, *ast.SetCompExpr:
		return "set display"
	case *ast.ListCompExpr, *ast.GeneratorExpr:
		return "comprehension"
	default:
		return "expression"
	}
}

// ----------------------------------------------------------------------------
// Keyword typo detection
// ----------------------------------------------------------------------------

// statementTypo fires on identifiers in statement-start position when the
// line looks like a block header (its last token before the newline is a
// colon). It knows the common carried-over spellings (elseif, function,
// foreach, ...) and falls back to edit-distance against the statement
// keywords. Returns true when an error was reported.
func (p *Parser) statementTypo() bool {
	if !p.lineIsBlockHeader() {
		return false
	}

	name := p.peek().Literal
	sugg := errors.KeywordTypo(name)
	if sugg == "" {
		sugg = errors.NearbyKeyword(name)
	}
	if sugg == "" {
		return false
	}

	p.errorWithSuggestion(p.peek().Pos, UnexpectedToken,
		i18n.T(i18n.ErrExpected, "a statement", p.peek().Describe()), sugg)
	return true
}

// lineIsBlockHeader scans ahead on the current logical line and reports
// whether its last token before the newline is a top-level colon.
func (p *Parser) lineIsBlockHeader() bool {
	depth := 0
	lastWasTopColon := false

	for i := p.current; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
			lastWasTopColon = false
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			lastWasTopColon = false
		case token.COLON:
			lastWasTopColon = depth == 0
		case token.NEWLINE, token.EOF:
			return lastWasTopColon
		default:
			lastWasTopColon = false
		}
	}
	return false
}

// checkThen reports the "if x then:" habit with a targeted hint. Fires
// between a condition and the expected colon.
func (p *Parser) checkThen() {
	if p.check(token.IDENT) && p.peek().Literal == "then" {
		p.errorWithSuggestion(p.peek().Pos, UnexpectedToken,
			i18n.T(i18n.ErrUnexpectedThen), i18n.T(i18n.SuggRemoveThen))
	}
}

// ----------------------------------------------------------------------------
// Compound statements
// ----------------------------------------------------------------------------

// parseSuite parses the body of a compound statement after its colon:
// either an indented block, or simple statements on the header line
// ("if x: pass").
func (p *Parser) parseSuite() []ast.Statement {
	if !p.check(token.NEWLINE) {
		return p.parseInlineSuite()
	}

	p.blockDepth++
	defer func() { p.blockDepth-- }()
	if p.blockDepth > maxNestingDepth {
		p.error(NestingTooDeep, i18n.T(i18n.ErrNestingTooDeep, maxNestingDepth))
		return nil
	}

	p.advance() // NEWLINE

	p.consume(token.INDENT, "an indented block")
	if p.panicMode {
		return nil
	}

	var stmts []ast.Statement
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		if p.match(token.NEWLINE) {
			continue
		}

		p.panicMode = false
		stmt := p.parseStatement()
		if p.panicMode {
			p.synchronize()
			p.panicMode = false
			continue
		}

		p.suppress = false
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.consume(token.DEDENT, "dedent")

	if len(stmts) == 0 {
		p.softError(p.previous().Pos, UnexpectedToken, i18n.T(i18n.ErrEmptyBlock))
	}
	return stmts
}

// parseInlineSuite parses the single-line suite form: one or more simple
// statements separated by semicolons on the header line.
func (p *Parser) parseInlineSuite() []ast.Statement {
	var stmts []ast.Statement
	for {
		stmt := p.parseStatement()
		if p.panicMode {
			return stmts
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.previous().Type == token.NEWLINE || p.isAtEnd() || p.check(token.DEDENT) {
			return stmts
		}
	}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.advance()

	cond := p.parseExpression()
	if p.panicMode {
		return nil
	}

	p.checkThen()
	p.consumeAfter(token.COLON, "':'", "if condition")
	if p.panicMode {
		return nil
	}

	body := p.parseSuite()
	if p.panicMode {
		return nil
	}

	stmt := &ast.IfStmt{Token: tok}
	stmt.Branches = append(stmt.Branches, &ast.IfBranch{Cond: cond, Body: body})

	for p.check(token.ELIF) {
		p.advance()
		elifCond := p.parseExpression()
		if p.panicMode {
			return nil
		}
		p.checkThen()
		p.consumeAfter(token.COLON, "':'", "elif condition")
		if p.panicMode {
			return nil
		}
		elifBody := p.parseSuite()
		if p.panicMode {
			return nil
		}
		stmt.Branches = append(stmt.Branches, &ast.IfBranch{Cond: elifCond, Body: elifBody})
	}

	if p.match(token.ELSE) {
		p.consumeAfter(token.COLON, "':'", "'else'")
		if p.panicMode {
			return nil
		}
		stmt.Else = p.parseSuite()
		if p.panicMode {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance()

	cond := p.parseExpression()
	if p.panicMode {
		return nil
	}

	p.checkThen()
	p.consumeAfter(token.COLON, "':'", "while condition")
	if p.panicMode {
		return nil
	}

	body := p.parseSuite()
	if p.panicMode {
		return nil
	}

	stmt := &ast.WhileStmt{Token: tok, Cond: cond, Body: body}

	if p.match(token.ELSE) {
		p.consumeAfter(token.COLON, "':'", "'else'")
		if p.panicMode {
			return nil
		}
		stmt.Else = p.parseSuite()
		if p.panicMode {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	tok := p.advance()

	target := p.parseForTarget()
	if p.panicMode {
		return nil
	}

	p.consumeAfter(token.IN, "'in'", "for target")
	if p.panicMode {
		return nil
	}

	iter := p.parseExpression()
	if p.panicMode {
		return nil
	}

	p.checkThen()
	p.consumeAfter(token.COLON, "':'", "for clause")
	if p.panicMode {
		return nil
	}

	body := p.parseSuite()
	if p.panicMode {
		return nil
	}

	stmt := &ast.ForStmt{Token: tok, Target: target, Iter: iter, Body: body}

	if p.match(token.ELSE) {
		p.consumeAfter(token.COLON, "':'", "'else'")
		if p.panicMode {
			return nil
		}
		stmt.Else = p.parseSuite()
		if p.panicMode {
			return nil
		}
	}

	return stmt
}

// parseForTarget parses the loop variable of for statements and
// comprehension clauses: an identifier or a comma-separated tuple of
// identifiers.
func (p *Parser) parseForTarget() ast.Expression {
	first := p.consumeIdentAfter("identifier", "'for'")
	if p.panicMode {
		return nil
	}

	if !p.check(token.COMMA) {
		return first
	}

	elements := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.check(token.IN) {
			break
		}
		name := p.consumeIdentAfter("identifier", "','")
		if p.panicMode {
			return nil
		}
		elements = append(elements, name)
	}
	return &ast.TupleExpr{Elements: elements}
}

// ----------------------------------------------------------------------------
// Functions, classes, decorators
// ----------------------------------------------------------------------------

func (p *Parser) parseDecorated() ast.Statement {
	var decorators []ast.Expression

	for p.check(token.AT) {
		p.advance()
		deco := p.parsePostfix()
		if p.panicMode {
			return nil
		}
		decorators = append(decorators, deco)
		p.consumeAfter(token.NEWLINE, "newline", "decorator")
		if p.panicMode {
			return nil
		}
	}

	switch p.peek().Type {
	case token.DEF:
		return p.parseFunctionDef(decorators, false)
	case token.ASYNC:
		return p.parseAsync(decorators)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.expected(UnexpectedToken, "'def' or 'class' after decorators")
		return nil
	}
}

func (p *Parser) parseAsync(decorators []ast.Expression) ast.Statement {
	asyncTok := p.advance()

	if !p.check(token.DEF) {
		p.errorAt(asyncTok.Pos, AsyncWithoutDef,
			i18n.T(i18n.ErrAsyncWithoutDef, p.peek().Describe()))
		return nil
	}
	return p.parseFunctionDef(decorators, true)
}

func (p *Parser) parseFunctionDef(decorators []ast.Expression, async bool) ast.Statement {
	def := p.advance() // 'def'

	name := p.consumeIdentAfter("function name", "'def'")
	if p.panicMode {
		return nil
	}

	p.consumeAfter(token.LPAREN, "'('", "function name")
	if p.panicMode {
		return nil
	}

	params := p.parseParamList(token.RPAREN, true)
	if p.panicMode {
		return nil
	}

	p.consumeAfter(token.RPAREN, "')'", "parameters")
	if p.panicMode {
		return nil
	}

	var returnType ast.Expression
	if p.match(token.ARROW) {
		returnType = p.parseExpression()
		if p.panicMode {
			return nil
		}
	}

	p.consumeAfter(token.COLON, "':'", "function signature")
	if p.panicMode {
		return nil
	}

	body := p.parseSuite()
	if p.panicMode {
		return nil
	}

	return &ast.FunctionDef{
		Def:        def,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Decorators: decorators,
		Async:      async,
	}
}

// parseParamList parses the parameter grammar shared by def and lambda,
// tracking the five groups and the / and * separators. term is the token
// that closes the list (')' for def, ':' for lambda); lambdas take no
// annotations.
func (p *Parser) parseParamList(term token.Type, allowAnnotations bool) *ast.ParamList {
	pl := &ast.ParamList{}

	if p.check(term) {
		return pl
	}

	seenDefault := false
	kwOnly := false
	starSeen := false
	kwargsSeen := false

	for {
		switch {
		case p.check(token.SLASH):
			slash := p.advance()
			switch {
			case pl.HasSlash:
				p.softError(slash.Pos, ParamOrder, i18n.T(i18n.ErrDupSlash))
			case kwargsSeen:
				p.softError(slash.Pos, ParamOrder, i18n.T(i18n.ErrSlashAfterKwargs))
			case starSeen:
				p.softError(slash.Pos, ParamOrder, i18n.T(i18n.ErrSlashAfterStar))
			default:
				pl.HasSlash = true
				for _, prm := range pl.Params {
					if prm.Kind == ast.ParamRegular {
						prm.Kind = ast.ParamPositionalOnly
					}
				}
				// Default ordering restarts in the regular group.
				seenDefault = false
			}

		case p.check(token.DOUBLE_STAR):
			dstar := p.advance()
			if kwargsSeen {
				p.softError(dstar.Pos, ParamOrder, i18n.T(i18n.ErrDupKwargs))
			}
			name := p.consumeIdentAfter("parameter name", "'**'")
			if p.panicMode {
				return pl
			}
			param := &ast.Param{Name: name, Kind: ast.ParamVarKwargs}
			if allowAnnotations && p.match(token.COLON) {
				param.Annotation = p.parseExpression()
				if p.panicMode {
					return pl
				}
			}
			pl.Params = append(pl.Params, param)
			kwargsSeen = true

		case p.check(token.STAR):
			star := p.advance()
			if starSeen {
				p.softError(star.Pos, ParamOrder, i18n.T(i18n.ErrDupStar))
			}
			if kwargsSeen {
				p.softError(star.Pos, ParamOrder, i18n.T(i18n.ErrStarAfterKwargs))
			}
			starSeen = true
			kwOnly = true

			if p.check(token.COMMA) || p.check(term) {
				// Bare *: keyword-only marker.
				pl.HasStar = true
			} else {
				name := p.consumeIdentAfter("parameter name", "'*'")
				if p.panicMode {
					return pl
				}
				param := &ast.Param{Name: name, Kind: ast.ParamVarArgs}
				if allowAnnotations && p.match(token.COLON) {
					param.Annotation = p.parseExpression()
					if p.panicMode {
						return pl
					}
				}
				pl.Params = append(pl.Params, param)
			}

		default:
			if kwargsSeen {
				p.softError(p.peek().Pos, ParamOrder, i18n.T(i18n.ErrParamAfterKwargs))
			}

			nameTok := p.consume(token.IDENT, "parameter name")
			if p.panicMode {
				return pl
			}
			name := &ast.Identifier{Token: nameTok, Name: nameTok.Literal}

			param := &ast.Param{Name: name, Kind: ast.ParamRegular}
			if kwOnly {
				param.Kind = ast.ParamKwOnly
			}

			if allowAnnotations && p.match(token.COLON) {
				param.Annotation = p.parseExpression()
				if p.panicMode {
					return pl
				}
			}
			if p.match(token.ASSIGN) {
				param.Default = p.parseExpression()
				if p.panicMode {
					return pl
				}
			}

			if !kwOnly {
				if param.Default != nil {
					seenDefault = true
				} else if seenDefault {
					p.softError(name.Pos(), ParamOrder, i18n.T(i18n.ErrDefaultOrder))
				}
			}

			pl.Params = append(pl.Params, param)
		}

		if !p.match(token.COMMA) {
			break
		}
		if p.check(term) {
			break // trailing comma
		}
	}

	return pl
}

func (p *Parser) parseClassDef(decorators []ast.Expression) ast.Statement {
	classTok := p.advance() // 'class'

	name := p.consumeIdentAfter("class name", "'class'")
	if p.panicMode {
		return nil
	}

	stmt := &ast.ClassDef{Class: classTok, Name: name, Decorators: decorators}

	if p.match(token.LPAREN) {
		metaclassSeen := false
		seenKeyword := false

		for !p.check(token.RPAREN) {
			// name=value is a header keyword argument; anything else is
			// a base class expression. Keywords must follow bases.
			if p.check(token.IDENT) && p.peekNext().Type == token.ASSIGN {
				kwName := p.advance()
				p.advance() // '='
				value := p.parseExpression()
				if p.panicMode {
					return nil
				}
				if kwName.Literal == "metaclass" {
					if metaclassSeen {
						p.softError(kwName.Pos, ClassHeader, i18n.T(i18n.ErrDupMetaclass))
					}
					metaclassSeen = true
				}
				stmt.Keywords = append(stmt.Keywords, &ast.KeywordArg{
					Name:  &ast.Identifier{Token: kwName, Name: kwName.Literal},
					Value: value,
				})
				seenKeyword = true
			} else {
				base := p.parseExpression()
				if p.panicMode {
					return nil
				}
				if seenKeyword {
					p.softError(base.Pos(), ClassHeader, i18n.T(i18n.ErrBaseAfterKeyword))
				}
				stmt.Bases = append(stmt.Bases, base)
			}

			if !p.match(token.COMMA) {
				break
			}
		}

		p.consumeAfter(token.RPAREN, "')'", "class header")
		if p.panicMode {
			return nil
		}
	}

	p.consumeAfter(token.COLON, "':'", "class header")
	if p.panicMode {
		return nil
	}

	stmt.Body = p.parseSuite()
	if p.panicMode {
		return nil
	}

	return stmt
}
