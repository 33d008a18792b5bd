package lox

import "golang.org/x/exp/slices"

// maxArgs is the cap on call arguments and function parameters; exceeding
// it is reported but does not stop parsing.
const maxArgs = 255

// statementStart is the set of tokens synchronize() treats as the
// beginning of a new declaration/statement after a parse error.
var statementStart = []TokenType{Class, Fun, Var, For, If, While, PRINT, Return}

// Parser is a recursive-descent parser over the grammar in spec.md §4.2. A
// parse error inside one declaration is recorded and the parser
// synchronizes to the next declaration boundary instead of aborting the
// whole run, so one bad statement doesn't hide every other diagnostic.
type Parser struct {
	tokens   []Token
	current  int
	reporter Reporter
}

func NewParser(tokens []Token, reporter Reporter) *Parser {
	return &Parser{
		tokens:   tokens,
		current:  0,
		reporter: reporter,
	}
}

// Parse runs the parser over the whole token stream and returns every
// top-level statement it could recover, plus a non-nil error aggregating
// every diagnostic that aborted a declaration (nil if there were none).
// Diagnostics raised through reportError (arity cap, invalid assignment
// target) are reported but not included in that error.
func (p *Parser) Parse() ([]Stmt, error) {
	var statements []Stmt
	var errs error

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			errs = appendErr(errs, err)
			p.synchronize()
			continue
		}

		statements = append(statements, stmt)
	}

	return statements, errs
}

func (p *Parser) declaration() (Stmt, error) {
	if p.match(Class) {
		return p.classDeclaration()
	}
	if p.match(Fun) {
		return p.function("function")
	}
	if p.match(Var) {
		return p.varDeclaration()
	}

	return p.statement()
}

// classDeclaration → "class" IDENT ( "<" IDENT )? "{" function* "}"
func (p *Parser) classDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *Variable
	if p.match(Less) {
		if _, err := p.consume(Identifier, "Expect superclass name."); err != nil {
			return nil, err
		}
		superclass = &Variable{Name: p.previous()}
	}

	if _, err := p.consume(LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*FunctionStmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

// function parses "IDENT ( params? ) block", shared between "fun"
// declarations and class methods (kind is "function" or "method", used only
// in error messages).
func (p *Parser) function(kind string) (*FunctionStmt, error) {
	name, err := p.consume(Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportError(p.peek(), "Can't have more than 255 parameters.")
			}

			param, err := p.consume(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if !p.match(Comma) {
				break
			}
		}
	}

	if _, err := p.consume(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// varDecl → "var" IDENT ( "=" expression )? ";"
func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr
	if p.match(Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(For):
		return p.forStatement()
	case p.match(If):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(Return):
		return p.returnStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &Block{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars directly into a Block/While pair: an absent
// condition becomes Literal(true), and the increment (if any) is appended
// to the end of the loop body inside its own nested Block.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	var err error
	switch {
	case p.match(Semicolon):
		initializer = nil
	case p.match(Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition Expr
	if !p.check(Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &Block{Statements: []Stmt{body, &Expression{Expression: increment}}}
	}

	if condition == nil {
		condition = &Literal{Value: true}
	}
	body = &WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &Block{Statements: []Stmt{initializer, body}}
	}

	return body, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch Stmt
	if p.match(Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

func (p *Parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &Print{Expression: value}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()

	var value Expr
	var err error
	if !p.check(Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}

	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Condition: condition, Body: body}, nil
}

func (p *Parser) block() ([]Stmt, error) {
	var statements []Stmt

	for !p.check(RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return statements, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &Expression{Expression: expr}, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment parses the left-hand side as a general expression; only once
// it sees "=" does it check whether that expression was a valid assignment
// target (Variable → Assign, Get → Set). Any other target is an error, and
// -- like the arity cap, unlike the other parse errors -- it does not
// abort the declaration or consume further tokens.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}, nil
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}, nil
		}

		p.reportError(equals, "Invalid assignment target.")
		return expr, nil
	}

	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}

	for p.match(Or) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// equality --> comparison ( ("==" | "!=") comparison )*
func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(BangEqual, EqualEqual) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// comparison --> term ( (">" | ">=" | "<" | "<=") term )*
func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		operator := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// term --> factor ( ("-" | "+") factor )*
func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.match(Plus, Minus) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// factor --> unary ( ("/" | "*") unary )*
func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.match(Slash, Star) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// unary --> ("!" | "-") unary | call
func (p *Parser) unary() (Expr, error) {
	if p.match(Bang, Minus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &Unary{Operator: operator, Right: right}, nil
	}

	return p.call()
}

// call --> primary ( "(" args? ")" | "." IDENT )*
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if p.match(LeftParen) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if p.match(Dot) {
			name, err := p.consume(Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &Get{Object: expr, Name: name}
		} else {
			break
		}
	}

	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var arguments []Expr

	if !p.check(RightParen) {
		for {
			if len(arguments) >= maxArgs {
				p.reportError(p.peek(), "Can't have more than 255 arguments.")
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)

			if !p.match(Comma) {
				break
			}
		}
	}

	paren, err := p.consume(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return &Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary --> NUMBER | STRING | "true" | "false" | "nil"
//
//	| "this" | "super" "." IDENT
//	| IDENT | "(" expression ")"
func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(False):
		return &Literal{Value: false}, nil
	case p.match(True):
		return &Literal{Value: true}, nil
	case p.match(Nil):
		return &Literal{Value: nil}, nil
	case p.match(String, Number):
		return &Literal{Value: p.previous().Literal}, nil
	case p.match(Super):
		keyword := p.previous()
		if _, err := p.consume(Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &Super{Keyword: keyword, Method: method}, nil
	case p.match(This):
		return &This{Keyword: p.previous()}, nil
	case p.match(Identifier):
		return &Variable{Name: p.previous()}, nil
	case p.match(LeftParen):
		expression, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}

		return &Grouping{Expression: expression}, nil
	}

	return nil, p.error(p.peek(), "Expect Expression")
}

// match checks to see if the current token has any of the given types; if
// it matches it consumes the token and returns true.
func (p *Parser) match(tokenTypes ...TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}

	return false
}

// check returns whether the current token matches the given type without
// consuming it.
func (p *Parser) check(tokenType TokenType) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Type == tokenType
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) consume(tokenType TokenType, message string) (Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}

	return Token{}, p.error(p.peek(), message)
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == Eof
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

// error builds and reports a ParseError that should abort the current
// declaration and trigger synchronize().
func (p *Parser) error(token Token, message string) error {
	err := NewParseError(token, message)
	p.reporter.Report(err)
	return err
}

// reportError reports a diagnostic that does NOT abort parsing -- used for
// the arity cap and invalid assignment targets, both of which spec.md says
// should be reported while parsing continues.
func (p *Parser) reportError(token Token, message string) {
	p.reporter.Report(NewParseError(token, message))
}

// synchronize discards tokens until we're likely at the start of the next
// declaration: right after a ';', or right before one of the statement
// keywords.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}

		if slices.Contains(statementStart, p.peek().Type) {
			return
		}

		p.advance()
	}
}
