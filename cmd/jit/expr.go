package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/llvm-runtime/llvm"
)

// exprNode is one node of a parsed arithmetic expression. Expressions are
// integer-only: literals, the variables x and y, unary minus, and the binary
// operators + - * / %.
type exprNode struct {
	left  *exprNode
	right *exprNode
	op    byte // 0 for leaves
	value int64
	name  string // variable leaf
}

type parser struct {
	input string
	pos   int
}

func parseExpr(input string) (*exprNode, error) {
	p := &parser{input: input}
	node, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return node, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseSum() (*exprNode, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &exprNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseProduct() (*exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' && op != '%' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &exprNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (*exprNode, error) {
	if p.peek() == '-' {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &exprNode{op: 'n', left: operand}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*exprNode, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		node, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", p.pos)
		}
		p.pos++
		return node, nil

	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		v, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("literal %q: %w", p.input[start:p.pos], err)
		}
		return &exprNode{value: v}, nil

	case unicode.IsLetter(rune(c)):
		start := p.pos
		for p.pos < len(p.input) && unicode.IsLetter(rune(p.input[p.pos])) {
			p.pos++
		}
		name := p.input[start:p.pos]
		if name != "x" && name != "y" {
			return nil, fmt.Errorf("unknown variable %q (only x and y are defined)", name)
		}
		return &exprNode{name: name}, nil

	case c == 0:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("unexpected %q at position %d", c, p.pos)
	}
}

// compiled is a JIT-ready expression. The engine owns the module; the context
// owns everything else and tears it all down on Close.
type compiled struct {
	ctx    *llvm.Context
	engine *llvm.ExecutionEngine
	ir     string
}

// compileExpr lowers an expression to an i64 function expr(x, y) and hands it
// to the JIT. Both variables are always declared so the call arity is fixed.
func compileExpr(input string) (*compiled, error) {
	node, err := parseExpr(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ctx, err := llvm.NewContext()
	if err != nil {
		return nil, err
	}

	mod, err := lowerExpr(ctx, node)
	if err != nil {
		ctx.Close()
		return nil, err
	}
	ir := mod.String()

	engine, err := llvm.NewExecutionEngine(mod)
	if err != nil {
		ctx.Close()
		return nil, err
	}
	return &compiled{ctx: ctx, engine: engine, ir: ir}, nil
}

func lowerExpr(ctx *llvm.Context, node *exprNode) (*llvm.Module, error) {
	mod, err := ctx.NewModule("repl")
	if err != nil {
		return nil, err
	}
	i64, err := ctx.Int64()
	if err != nil {
		return nil, err
	}
	sig, err := llvm.FunctionType(i64, []llvm.Type{i64, i64}, false)
	if err != nil {
		return nil, err
	}
	fn, err := mod.AddFunction("expr", sig)
	if err != nil {
		return nil, err
	}
	entry, err := fn.AppendBasicBlock("entry")
	if err != nil {
		return nil, err
	}

	b, err := ctx.NewBuilder()
	if err != nil {
		return nil, err
	}
	defer b.Close()
	if err := b.PositionAtEnd(entry); err != nil {
		return nil, err
	}

	result, err := emitNode(b, fn, i64, node)
	if err != nil {
		return nil, err
	}
	if _, err := b.Ret(result); err != nil {
		return nil, err
	}
	if err := mod.Verify(); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	return mod, nil
}

func emitNode(b *llvm.Builder, fn llvm.Function, i64 llvm.Type, node *exprNode) (llvm.Value, error) {
	switch {
	case node.name != "":
		idx := 0
		if node.name == "y" {
			idx = 1
		}
		return fn.Param(idx)

	case node.op == 0:
		return llvm.ConstInt(i64, uint64(node.value), true)

	case node.op == 'n':
		operand, err := emitNode(b, fn, i64, node.left)
		if err != nil {
			return llvm.Value{}, err
		}
		return b.Neg(operand, "neg")
	}

	left, err := emitNode(b, fn, i64, node.left)
	if err != nil {
		return llvm.Value{}, err
	}
	right, err := emitNode(b, fn, i64, node.right)
	if err != nil {
		return llvm.Value{}, err
	}
	switch node.op {
	case '+':
		return b.Add(left, right, "sum")
	case '-':
		return b.Sub(left, right, "diff")
	case '*':
		return b.Mul(left, right, "prod")
	case '/':
		return b.SDiv(left, right, "quot")
	case '%':
		return b.SRem(left, right, "rem")
	default:
		return llvm.Value{}, fmt.Errorf("unknown operator %q", node.op)
	}
}

// Run invokes the compiled expression with the given variable values.
func (c *compiled) Run(x, y int64) (int64, error) {
	return c.engine.RunInt64Binary("expr", x, y)
}

// Close tears down the engine and its owning context.
func (c *compiled) Close() {
	c.ctx.Close()
}
