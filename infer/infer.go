// Package infer statically estimates the capabilities a guest program needs
// from its syntax tree. The estimate is conservative: it over-approximates,
// preferring false positives over missed grants, so a program confined to
// its inferred set never hits a denial the source did not ask for.
package infer

import (
	"github.com/AAEO04/ifa-lang-sub001/ast"
	"github.com/AAEO04/ifa-lang-sub001/domain/entities"
)

// Standard-library domains whose calls carry effects. The mapping from
// domain name to capability is a presentation concern of the guest
// language; it holds no security logic of its own.
const (
	domainFile    = "file"
	domainNetwork = "net"
	domainClock   = "clock"
	domainRandom  = "rand"
	domainEnv     = "env"
)

// Effectful method names within their domains.
var (
	fileReadMethods  = map[string]bool{"read": true, "open": true}
	fileWriteMethods = map[string]bool{"write": true, "append": true}
	clockReadMethods = map[string]bool{"now": true, "monotonic": true}
	envReadMethods   = map[string]bool{"get": true, "all": true}
)

// Infer walks the whole program and returns its estimated capability set.
// Stdio is granted unconditionally: every program may talk to its standard
// streams. Every statement and expression kind is visited (both branches
// of conditionals, loop conditions and bodies, definition bodies, return
// values, and all nested expressions) so no reachable call escapes the
// scan.
func Infer(program *ast.Program) *entities.CapabilitySet {
	caps := entities.NewCapabilitySet()
	caps.Grant(entities.Stdio())
	if program == nil {
		return caps
	}
	for _, stmt := range program.Statements {
		scanStatement(stmt, caps)
	}
	return caps
}

func scanStatement(stmt ast.Statement, caps *entities.CapabilitySet) {
	switch s := stmt.(type) {
	case *ast.CallStmt:
		scanCall(s.Call, caps)
	case *ast.VarDecl:
		scanExpression(s.Value, caps)
	case *ast.Assignment:
		scanExpression(s.Value, caps)
	case *ast.If:
		scanExpression(s.Condition, caps)
		for _, inner := range s.Then {
			scanStatement(inner, caps)
		}
		for _, inner := range s.Else {
			scanStatement(inner, caps)
		}
	case *ast.While:
		scanExpression(s.Condition, caps)
		for _, inner := range s.Body {
			scanStatement(inner, caps)
		}
	case *ast.For:
		scanExpression(s.Iterable, caps)
		for _, inner := range s.Body {
			scanStatement(inner, caps)
		}
	case *ast.FuncDef:
		for _, inner := range s.Body {
			scanStatement(inner, caps)
		}
	case *ast.TypeDef:
		for _, inner := range s.Body {
			scanStatement(inner, caps)
		}
	case *ast.Return:
		if s.Value != nil {
			scanExpression(s.Value, caps)
		}
	}
}

func scanExpression(expr ast.Expression, caps *entities.CapabilitySet) {
	switch e := expr.(type) {
	case *ast.CallExpr:
		scanCall(e.Call, caps)
	case *ast.BinaryOp:
		scanExpression(e.Left, caps)
		scanExpression(e.Right, caps)
	case *ast.List:
		for _, item := range e.Items {
			scanExpression(item, caps)
		}
	case *ast.Map:
		for _, entry := range e.Entries {
			scanExpression(entry.Key, caps)
			scanExpression(entry.Value, caps)
		}
	case *ast.MethodCall:
		scanExpression(e.Receiver, caps)
		for _, arg := range e.Args {
			scanExpression(arg, caps)
		}
	}
}

// scanCall grants for a recognized effectful call, then recurses into the
// arguments regardless: an unrecognized call grants nothing itself but may
// carry effectful subexpressions.
func scanCall(call *ast.Call, caps *entities.CapabilitySet) {
	if call == nil {
		return
	}
	switch call.Domain {
	case domainFile:
		if fileReadMethods[call.Method] {
			caps.Grant(entities.ReadFiles(pathArgOrRoot(call.Args)))
		} else if fileWriteMethods[call.Method] {
			caps.Grant(entities.WriteFiles(pathArgOrRoot(call.Args)))
		}
	case domainNetwork:
		// Destinations are not statically resolvable in general.
		caps.Grant(entities.Network(entities.Wildcard))
	case domainClock:
		if clockReadMethods[call.Method] {
			caps.Grant(entities.Time())
		}
	case domainRandom:
		caps.Grant(entities.Random())
	case domainEnv:
		if envReadMethods[call.Method] {
			caps.Grant(entities.Environment(entities.Wildcard))
		}
	}

	for _, arg := range call.Args {
		scanExpression(arg, caps)
	}
}

// pathArgOrRoot returns the first argument when it is a string literal,
// otherwise "/", the maximal fallback for computed paths.
func pathArgOrRoot(args []ast.Expression) string {
	if len(args) > 0 {
		if lit, ok := args[0].(*ast.StringLit); ok {
			return lit.Value
		}
	}
	return "/"
}
