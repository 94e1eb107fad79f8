// Package ast defines the syntax tree contract between the guest-language
// parser and the capability inferencer. The parser lives outside this module;
// it must produce exactly these node kinds so the inferencer can walk a
// program exhaustively.
package ast

// Program is the root of a parsed guest source file.
type Program struct {
	Statements []Statement
}

// Statement is implemented by every statement node kind.
type Statement interface {
	stmtNode()
}

// Expression is implemented by every expression node kind.
type Expression interface {
	exprNode()
}

// Call is the shared call node: a standard-library domain, a method within
// it, and ordered arguments. It appears both as a statement and nested
// inside expressions.
type Call struct {
	Domain string
	Method string
	Args   []Expression
}

// VarDecl declares a variable with an initial value.
type VarDecl struct {
	Name  string
	Value Expression
}

// Assignment assigns a value to an existing target.
type Assignment struct {
	Target string
	Value  Expression
}

// If is a conditional with an optional else branch.
type If struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

// While is a condition-driven loop.
type While struct {
	Condition Expression
	Body      []Statement
}

// For iterates a body over an iterable expression.
type For struct {
	Var      string
	Iterable Expression
	Body     []Statement
}

// FuncDef defines a named function with a body.
type FuncDef struct {
	Name   string
	Params []string
	Body   []Statement
}

// TypeDef defines a named type whose body may contain statements
// (method definitions, field initializers).
type TypeDef struct {
	Name string
	Body []Statement
}

// Return exits a function, optionally with a value.
type Return struct {
	Value Expression // nil when the return carries no value
}

// CallStmt is a call used in statement position.
type CallStmt struct {
	Call *Call
}

func (*VarDecl) stmtNode()    {}
func (*Assignment) stmtNode() {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*For) stmtNode()        {}
func (*FuncDef) stmtNode()    {}
func (*TypeDef) stmtNode()    {}
func (*Return) stmtNode()     {}
func (*CallStmt) stmtNode()   {}

// StringLit is a literal string value.
type StringLit struct {
	Value string
}

// NumberLit is a literal numeric value.
type NumberLit struct {
	Value float64
}

// BoolLit is a literal boolean value.
type BoolLit struct {
	Value bool
}

// Ident references a variable by name.
type Ident struct {
	Name string
}

// BinaryOp applies an operator to two operands.
type BinaryOp struct {
	Op    string
	Left  Expression
	Right Expression
}

// List is an ordered collection literal.
type List struct {
	Items []Expression
}

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// Map is a key/value collection literal.
type Map struct {
	Entries []MapEntry
}

// MethodCall invokes a method on a receiver expression.
type MethodCall struct {
	Receiver Expression
	Method   string
	Args     []Expression
}

// CallExpr is the shared call node in expression position.
type CallExpr struct {
	Call *Call
}

func (*StringLit) exprNode()  {}
func (*NumberLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*Ident) exprNode()      {}
func (*BinaryOp) exprNode()   {}
func (*List) exprNode()       {}
func (*Map) exprNode()        {}
func (*MethodCall) exprNode() {}
func (*CallExpr) exprNode()   {}
