package loader

import (
	"slices"
	"strconv"

	"github.com/panyam/stanpyro/decl"
)

// ExprParser is a recursive descent parser for model expressions, one
// function per precedence level from the ternary down to postfix indexing.
type ExprParser struct {
	lexer  *Lexer
	peeked *token
}

func NewExprParser(input string) *ExprParser {
	return &ExprParser{lexer: NewLexer(input)}
}

// ParseExpr parses a complete expression. Trailing input is an error.
func ParseExpr(input string) (decl.Expr, error) {
	p := NewExprParser(input)
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if tok, err := p.Peek(); err != nil {
		return nil, err
	} else if tok.kind != tokEOF {
		return nil, p.lexer.Errorf(tok.pos, "unexpected %s %q after expression", tok.kind, tok.text)
	}
	return e, nil
}

func (p *ExprParser) Peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lexer.Next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *ExprParser) Advance() token {
	tok := *p.peeked
	p.peeked = nil
	return tok
}

// AdvanceIf consumes the next token if it has the given kind and one of the
// given texts (any text when none are given).
func (p *ExprParser) AdvanceIf(kind tokenKind, texts ...string) (token, bool, error) {
	tok, err := p.Peek()
	if err != nil {
		return tok, false, err
	}
	if tok.kind != kind || (len(texts) > 0 && !slices.Contains(texts, tok.text)) {
		return tok, false, nil
	}
	return p.Advance(), true, nil
}

// Expect consumes a token of the given kind or fails.
func (p *ExprParser) Expect(kind tokenKind) (token, error) {
	tok, ok, err := p.AdvanceIf(kind)
	if err != nil {
		return tok, err
	}
	if !ok {
		return tok, p.lexer.Errorf(tok.pos, "expected %s, found %s %q", kind, tok.kind, tok.text)
	}
	return tok, nil
}

// ParseExpression: OrExpr ( '?' Expression ':' Expression )?
func (p *ExprParser) ParseExpression() (decl.Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.AdvanceIf(tokQuestion); err != nil || !ok {
		return cond, err
	}
	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(tokColon); err != nil {
		return nil, err
	}
	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &decl.CondOp{ExprBase: exprAt(cond.Pos()), Cond: cond, Then: then, Else: els}, nil
}

// parseBinaryExpr parses a left associative chain of the given operators.
func (p *ExprParser) parseBinaryExpr(operand func() (decl.Expr, error), ops ...string) (decl.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok, err := p.AdvanceIf(tokOp, ops...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &decl.BinaryOp{ExprBase: exprAt(left.Pos()), Left: left, Op: op.text, Right: right}
	}
}

func (p *ExprParser) parseOr() (decl.Expr, error) { return p.parseBinaryExpr(p.parseAnd, "||") }
func (p *ExprParser) parseAnd() (decl.Expr, error) {
	return p.parseBinaryExpr(p.parseEquality, "&&")
}
func (p *ExprParser) parseEquality() (decl.Expr, error) {
	return p.parseBinaryExpr(p.parseComparison, "==", "!=")
}
func (p *ExprParser) parseComparison() (decl.Expr, error) {
	return p.parseBinaryExpr(p.parseAdditive, "<", "<=", ">", ">=")
}
func (p *ExprParser) parseAdditive() (decl.Expr, error) {
	return p.parseBinaryExpr(p.parseMultiplicative, "+", "-")
}
func (p *ExprParser) parseMultiplicative() (decl.Expr, error) {
	return p.parseBinaryExpr(p.parseUnary, "*", "/", "%", ".*", "./", "%/%")
}

// parseUnary: ('!' | '-' | '+') Unary | Power
func (p *ExprParser) parseUnary() (decl.Expr, error) {
	op, ok, err := p.AdvanceIf(tokOp, "!", "-", "+")
	if err != nil {
		return nil, err
	}
	if !ok {
		return p.parsePower()
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &decl.UnaryOp{ExprBase: exprAt(op.pos), Op: op.text, Operand: operand}, nil
}

// parsePower: Postfix ( '^' Unary )?  Right associative and tighter than unary minus.
func (p *ExprParser) parsePower() (decl.Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.AdvanceIf(tokOp, "^"); err != nil || !ok {
		return base, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &decl.BinaryOp{ExprBase: exprAt(base.Pos()), Left: base, Op: "^", Right: exp}, nil
}

// parsePostfix: Primary ( '[' Indexes ']' )*
func (p *ExprParser) parsePostfix() (decl.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok, err := p.AdvanceIf(tokLBracket); err != nil {
			return nil, err
		} else if !ok {
			return expr, nil
		}
		idxs, err := p.parseIndexes()
		if err != nil {
			return nil, err
		}
		expr = indexExpr(expr, idxs)
	}
}

// indexExpr builds an IndexOp when every index is a single index, folding
// consecutive bracket groups, and a SlicedIndexOp otherwise.
func indexExpr(base decl.Expr, idxs []decl.Idx) decl.Expr {
	singles := make([]decl.Expr, 0, len(idxs))
	for _, idx := range idxs {
		uni, ok := idx.(*decl.UniIdx)
		if !ok {
			return &decl.SlicedIndexOp{ExprBase: exprAt(base.Pos()), Expr: base, Idxs: idxs}
		}
		singles = append(singles, uni.Index)
	}
	if ix, ok := base.(*decl.IndexOp); ok {
		ix.Dims = append(ix.Dims, singles)
		return ix
	}
	return &decl.IndexOp{ExprBase: exprAt(base.Pos()), Expr: base, Dims: [][]decl.Expr{singles}}
}

// parseIndexes parses the comma separated entries of one bracket group and the closing ']'.
//
//	i  |  :  |  lo:  |  :hi  |  lo:hi  |  {a, b}
func (p *ExprParser) parseIndexes() (idxs []decl.Idx, err error) {
	for {
		idx, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		idxs = append(idxs, idx)
		tok, err := p.Peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokComma:
			p.Advance()
		case tokRBracket:
			p.Advance()
			return idxs, nil
		default:
			return nil, p.lexer.Errorf(tok.pos, "expected ',' or ']' in index, found %s %q", tok.kind, tok.text)
		}
	}
}

func (p *ExprParser) parseIndex() (decl.Idx, error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokColon {
		p.Advance()
		if p.atIndexEnd() {
			return &decl.OmniIdx{}, nil
		}
		hi, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &decl.UbIdx{High: hi}, nil
	}
	lo, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, ok, err := p.AdvanceIf(tokColon); err != nil {
		return nil, err
	} else if ok {
		if p.atIndexEnd() {
			return &decl.LbIdx{Low: lo}, nil
		}
		hi, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &decl.LubIdx{Low: lo, High: hi}, nil
	}
	if _, ok := lo.(*decl.ArrayLit); ok {
		return &decl.MultiIdx{Indices: lo}, nil
	}
	return &decl.UniIdx{Index: lo}, nil
}

func (p *ExprParser) atIndexEnd() bool {
	tok, err := p.Peek()
	return err == nil && (tok.kind == tokComma || tok.kind == tokRBracket)
}

// parsePrimary: literal | IDENT | IDENT '(' Args ')' | '(' Expression ')' | '{' Args '}'
func (p *ExprParser) parsePrimary() (decl.Expr, error) {
	tok, err := p.Peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokInt:
		p.Advance()
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, p.lexer.Errorf(tok.pos, "invalid integer %q", tok.text)
		}
		return &decl.IntLit{ExprBase: exprAt(tok.pos), Value: n}, nil
	case tokReal:
		p.Advance()
		return &decl.RealLit{ExprBase: exprAt(tok.pos), Text: tok.text}, nil
	case tokString:
		p.Advance()
		return &decl.StringLit{ExprBase: exprAt(tok.pos), Value: tok.text}, nil
	case tokIdent:
		p.Advance()
		if _, ok, err := p.AdvanceIf(tokLParen); err != nil {
			return nil, err
		} else if ok {
			args, err := p.parseArgs(tokRParen)
			if err != nil {
				return nil, err
			}
			return &decl.FunCall{ExprBase: exprAt(tok.pos), Name: tok.text, Args: args}, nil
		}
		return &decl.Variable{ExprBase: exprAt(tok.pos), Name: tok.text}, nil
	case tokLParen:
		p.Advance()
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLBrace:
		p.Advance()
		elems, err := p.parseArgs(tokRBrace)
		if err != nil {
			return nil, err
		}
		return &decl.ArrayLit{ExprBase: exprAt(tok.pos), Elems: elems}, nil
	}
	return nil, p.lexer.Errorf(tok.pos, "unexpected %s %q at start of expression", tok.kind, tok.text)
}

// parseArgs parses a possibly empty comma separated list up to and including closer.
func (p *ExprParser) parseArgs(closer tokenKind) (args []decl.Expr, err error) {
	if _, ok, err := p.AdvanceIf(closer); err != nil || ok {
		return nil, err
	}
	for {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok, err := p.AdvanceIf(tokComma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if _, err := p.Expect(closer); err != nil {
		return nil, err
	}
	return args, nil
}

func exprAt(pos int) decl.ExprBase {
	return decl.ExprBase{NodeInfo: decl.NodeInfo{StartPos: pos}}
}
