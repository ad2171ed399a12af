// Package parser implements a recursive-descent, Pratt-precedence parser
// that turns a token stream into an *ast.Program.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/minilang/internal/ast"
	"github.com/cwbudde/minilang/internal/lexer"
	"github.com/cwbudde/minilang/internal/token"
)

// precedence levels, low to high.
const (
	_ int = iota
	precAssign
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPower
	precPostfix
)

var binPrecedence = map[token.Type]int{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.BOR:     precBitOr,
	token.BXOR:    precBitXor,
	token.BAND:    precBitAnd,
	token.EQ:      precEquality,
	token.NEQ:     precEquality,
	token.LT:      precRelational,
	token.LE:      precRelational,
	token.GT:      precRelational,
	token.GE:      precRelational,
	token.SHL:     precShift,
	token.SHR:     precShift,
	token.PLUS:    precAdditive,
	token.MINUS:   precAdditive,
	token.STAR:    precMultiplicative,
	token.SLASH:   precMultiplicative,
	token.PERCENT: precMultiplicative,
	token.TILDE:   precPower,
}

// binOpName maps an operator token to the registry function name it
// desugars into, per spec.md §4.4 ("a binary operator ... desugars to a
// two-argument call").
var binOpName = map[token.Type]string{
	token.PLUS: "+", token.MINUS: "-", token.STAR: "*", token.SLASH: "/",
	token.PERCENT: "%", token.TILDE: "~",
	token.EQ: "==", token.NEQ: "!=", token.LT: "<", token.LE: "<=",
	token.GT: ">", token.GE: ">=",
	token.AND: "&&", token.OR: "||",
	token.BAND: "&", token.BOR: "|", token.BXOR: "^", token.SHL: "<<", token.SHR: ">>",
}

// ParseError reports a single parse failure with its source position.
// Per spec.md §4.3, "any parse failure is reported as a generic parse error
// kind" — callers that need the FunctionArgMismatch compatibility rendering
// should treat every *ParseError the same way regardless of Msg.
type ParseError struct {
	Pos token.Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parser consumes tokens from a Lexer and builds an ast.Program.
type Parser struct {
	l      *lexer.Lexer
	cur    token.Token
	peek   token.Token
	errors []*ParseError
}

// New creates a Parser reading from l and primes the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Pos, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(t token.Type) token.Token {
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, "expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
		return p.cur
	}
	tok := p.cur
	p.next()
	return tok
}

// Parse parses the full token stream and returns the program plus the
// accumulated parse errors (a caller that wants a single error takes the
// first element of the returned slice).
func Parse(src string) (*ast.Program, []*ParseError) {
	p := New(lexer.New(src))
	prog := p.parseProgram()
	return prog, p.errors
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.FN {
			fn := p.parseFnDef()
			if fn != nil {
				prog.FnDefs = append(prog.FnDefs, fn)
			}
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		if len(p.errors) > 200 {
			break // runaway parse, stop accumulating noise
		}
	}
	return prog
}

func (p *Parser) parseFnDef() *ast.FnDef {
	pos := p.cur.Pos
	p.next() // consume 'fn'
	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	var params []string
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		params = append(params, p.expect(token.IDENT).Literal)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewFnDef(pos, nameTok.Literal, params, body)
}

// ---- Statements ----

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case token.LET:
		return p.parseVar()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		pos := p.cur.Pos
		p.next()
		p.consumeSemi()
		return ast.NewBreak(pos)
	case token.RETURN:
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

// consumeSemi swallows an optional trailing `;` — the grammar in spec.md
// terminates several statement forms with one, but block-bodied statements
// (if/while/loop/fn) don't require it after their closing brace.
func (p *Parser) consumeSemi() {
	if p.cur.Type == token.SEMI {
		p.next()
	}
}

func (p *Parser) parseVar() ast.Stmt {
	pos := p.cur.Pos
	p.next() // consume 'let'
	name := p.expect(token.IDENT).Literal
	var init ast.Expr
	if p.cur.Type == token.ASSIGN {
		p.next()
		init = p.parseExpr(precAssign)
	}
	p.expect(token.SEMI)
	return ast.NewVar(pos, name, init)
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur.Pos
	p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBRACE)
	return ast.NewBlock(pos, stmts)
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur.Pos
	p.next() // consume 'if'
	cond := p.parseExpr(precAssign)
	body := p.parseStmt()
	if p.cur.Type == token.ELSE {
		p.next()
		elseBody := p.parseStmt()
		return ast.NewIfElse(pos, cond, body, elseBody)
	}
	return ast.NewIf(pos, cond, body)
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur.Pos
	p.next() // consume 'while'
	cond := p.parseExpr(precAssign)
	body := p.parseStmt()
	return ast.NewWhile(pos, cond, body)
}

func (p *Parser) parseLoop() ast.Stmt {
	pos := p.cur.Pos
	p.next() // consume 'loop'
	body := p.parseStmt()
	return ast.NewLoop(pos, body)
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.cur.Pos
	p.next() // consume 'return'
	if p.cur.Type == token.SEMI {
		p.next()
		return ast.NewReturn(pos)
	}
	val := p.parseExpr(precAssign)
	p.expect(token.SEMI)
	return ast.NewReturnWithVal(pos, val)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	pos := p.cur.Pos
	x := p.parseExpr(precAssign)
	p.expect(token.SEMI)
	return ast.NewExprStmt(pos, x)
}

// ---- Expressions ----

func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		if p.cur.Type == token.ASSIGN && minPrec <= precAssign {
			pos := p.cur.Pos
			p.next()
			right := p.parseExpr(precAssign) // right-associative
			left = ast.NewAssignment(pos, left, right)
			continue
		}

		prec, ok := binPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.cur
		p.next()
		// All binary operators here are left-associative: next min is prec+1.
		right := p.parseExpr(prec + 1)
		name, ok := binOpName[opTok.Type]
		if !ok {
			p.errorf(opTok.Pos, "unknown binary operator %s", opTok.Type)
			name = opTok.Literal
		}
		left = ast.NewFnCall(opTok.Pos, name, []ast.Expr{left, right})
	}

	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case token.MINUS:
		pos := p.cur.Pos
		p.next()
		// Power binds tighter than unary (spec.md §4.3), so the operand is
		// parsed at precPower rather than recursing into parseUnary: this
		// lets a trailing `~` attach to the operand before the neg wraps it,
		// e.g. `-5 ~ 2` parses as `neg(~(5, 2))`, not `~(neg(5), 2)`.
		operand := p.parseExpr(precPower)
		return ast.NewFnCall(pos, "neg", []ast.Expr{operand})
	case token.NOT:
		pos := p.cur.Pos
		p.next()
		operand := p.parseExpr(precPower)
		return ast.NewFnCall(pos, "!", []ast.Expr{operand})
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for {
		switch p.cur.Type {
		case token.DOT:
			pos := p.cur.Pos
			p.next()
			rhs := p.parseDotChain()
			return ast.NewDot(pos, expr, rhs)
		case token.LBRACKET:
			if id, ok := expr.(*ast.Identifier); ok {
				pos := p.cur.Pos
				p.next()
				idx := p.parseExpr(precAssign)
				p.expect(token.RBRACKET)
				expr = ast.NewIndex(pos, id.Name, idx)
				continue
			}
			return expr
		default:
			return expr
		}
	}
}

// parseDotChain parses everything to the right of a `.`, one segment at a
// time (an identifier, a call, or an index), right-nesting further `.`s so
// that `a.b.c.d` becomes Dot(a, Dot(b, Dot(c, d))) — per spec.md §4.4's dot
// protocol, only a plain property segment (an Identifier) may have a
// further Dot continuation; a method call or index is necessarily terminal.
func (p *Parser) parseDotChain() ast.Expr {
	pos := p.cur.Pos
	name := p.expect(token.IDENT).Literal

	var seg ast.Expr
	switch {
	case p.cur.Type == token.LPAREN:
		seg = ast.NewFnCall(pos, name, p.parseArgs())
	case p.cur.Type == token.LBRACKET:
		p.next()
		idx := p.parseExpr(precAssign)
		p.expect(token.RBRACKET)
		seg = ast.NewIndex(pos, name, idx)
	default:
		seg = ast.NewIdentifier(pos, name)
	}

	if p.cur.Type == token.DOT {
		p.next()
		rest := p.parseDotChain()
		return ast.NewDot(pos, seg, rest)
	}
	return seg
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		args = append(args, p.parseExpr(precAssign))
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.INT:
		lit := p.cur.Literal
		p.next()
		v, err := parseIntLiteral(lit)
		if err != nil {
			p.errorf(pos, "invalid integer literal %q: %v", lit, err)
		}
		return ast.NewIntConst(pos, v)
	case token.FLOAT:
		lit := p.cur.Literal
		p.next()
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf(pos, "invalid float literal %q: %v", lit, err)
		}
		return ast.NewFloatConst(pos, v)
	case token.STRING:
		lit := p.cur.Literal
		p.next()
		return ast.NewStringConst(pos, lit)
	case token.CHAR:
		lit := p.cur.Literal
		p.next()
		r := rune(0)
		for _, rr := range lit {
			r = rr
			break
		}
		return ast.NewCharConst(pos, r)
	case token.TRUE:
		p.next()
		return ast.NewBoolConst(pos, true)
	case token.FALSE:
		p.next()
		return ast.NewBoolConst(pos, false)
	case token.IDENT:
		name := p.cur.Literal
		p.next()
		if p.cur.Type == token.LPAREN {
			args := p.parseArgs()
			return ast.NewFnCall(pos, name, args)
		}
		return ast.NewIdentifier(pos, name)
	case token.LPAREN:
		p.next()
		if p.cur.Type == token.RPAREN {
			p.next()
			return ast.NewUnitConst(pos)
		}
		expr := p.parseExpr(precAssign)
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		p.next()
		var elems []ast.Expr
		for p.cur.Type != token.RBRACKET && p.cur.Type != token.EOF {
			elems = append(elems, p.parseExpr(precAssign))
			if p.cur.Type == token.COMMA {
				p.next()
			}
		}
		p.expect(token.RBRACKET)
		return ast.NewArrayLit(pos, elems)
	}

	p.errorf(pos, "unexpected token %s %q", p.cur.Type, p.cur.Literal)
	tok := p.cur
	p.next()
	return ast.NewIdentifier(tok.Pos, tok.Literal)
}

func parseIntLiteral(lit string) (int64, error) {
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		return strconv.ParseInt(lit[2:], 16, 64)
	case strings.HasPrefix(lit, "0o") || strings.HasPrefix(lit, "0O"):
		return strconv.ParseInt(lit[2:], 8, 64)
	case strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B"):
		return strconv.ParseInt(lit[2:], 2, 64)
	default:
		return strconv.ParseInt(lit, 10, 64)
	}
}
