package resolve

import (
	"rustle/internal/ast"
	"rustle/internal/source"
	"rustle/internal/symbols"
)

func (r *resolver) expr(id ast.ExprID) {
	e := r.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLit:
	case ast.ExprIdent:
		d, _ := r.b.Exprs.Ident(id)
		if b, ok := r.lookupValue(d.Name, e.Span); ok {
			r.res.Idents[id] = b
		} else if _, known := r.sr.Lookup(d.Name, symbols.NSValue); !known {
			r.unresolved(e.Span, "cannot find value '%s' in this scope", d.Name)
		}
	case ast.ExprPath:
		r.path(id)
	case ast.ExprBinary:
		d, _ := r.b.Exprs.Binary(id)
		r.expr(d.Left)
		r.expr(d.Right)
	case ast.ExprUnary:
		d, _ := r.b.Exprs.Unary(id)
		r.expr(d.Operand)
	case ast.ExprAssign:
		d, _ := r.b.Exprs.Assign(id)
		r.expr(d.Target)
		r.expr(d.Value)
	case ast.ExprCall:
		d, _ := r.b.Exprs.Call(id)
		r.expr(d.Callee)
		r.exprs(d.Args)
	case ast.ExprMethodCall:
		d, _ := r.b.Exprs.MethodCall(id)
		r.expr(d.Recv)
		r.exprs(d.Args)
		// имя метода не ошибка, если не найдено: поле может оказаться функцией
		if hit, ok := r.sr.Lookup(d.Name, symbols.NSValue); ok {
			if sym := r.res.Table.Symbols.Get(hit.Symbol); sym.Kind != symbols.SymbolVariant {
				if b, ok := r.lookupValue(d.Name, d.NameSpan); ok {
					r.res.Methods[id] = b
				}
			}
		}
	case ast.ExprField:
		d, _ := r.b.Exprs.Field(id)
		r.expr(d.Target)
	case ast.ExprIndex:
		d, _ := r.b.Exprs.Index(id)
		r.expr(d.Target)
		r.expr(d.Index)
	case ast.ExprStruct:
		r.structLit(id)
	case ast.ExprVec:
		d, _ := r.b.Exprs.Vec(id)
		r.exprs(d.Elems)
	case ast.ExprRange:
		d, _ := r.b.Exprs.Range(id)
		r.expr(d.Start)
		r.expr(d.End)
	case ast.ExprIf:
		d, _ := r.b.Exprs.If(id)
		r.expr(d.Cond)
		r.expr(d.Then)
		if d.Else.IsValid() {
			r.expr(d.Else)
		}
	case ast.ExprMatch:
		r.match(id)
	case ast.ExprBlock:
		d, _ := r.b.Exprs.Block(id)
		scope := r.sr.Enter(symbols.ScopeBlock, ExprOwner(id), e.Span)
		r.body(d.Stmts, d.Tail)
		r.sr.Leave(scope)
	case ast.ExprLoop:
		d, _ := r.b.Exprs.Loop(id)
		r.loops++
		r.expr(d.Body)
		r.loops--
	case ast.ExprWhile:
		d, _ := r.b.Exprs.While(id)
		r.expr(d.Cond)
		r.loops++
		r.expr(d.Body)
		r.loops--
	case ast.ExprFor:
		d, _ := r.b.Exprs.For(id)
		r.expr(d.Iter)
		scope := r.sr.Enter(symbols.ScopeLoop, ExprOwner(id), e.Span)
		r.declare(d.Name, d.NameSpan, symbols.SymbolLet, 0)
		r.loops++
		r.expr(d.Body)
		r.loops--
		r.sr.Leave(scope)
	case ast.ExprClosure:
		d, _ := r.b.Exprs.Closure(id)
		savedLoops := r.loops
		r.loops = 0
		if _, ok := r.res.Captures[id]; !ok {
			r.res.Captures[id] = nil
		}
		scope := r.sr.Enter(symbols.ScopeClosure, ExprOwner(id), e.Span)
		r.params(d.Params, symbols.SymbolParam)
		r.expr(d.Body)
		r.sr.Leave(scope)
		r.loops = savedLoops
	case ast.ExprGroup:
		d, _ := r.b.Exprs.Group(id)
		r.expr(d.Inner)
	}
}

func (r *resolver) exprs(ids []ast.ExprID) {
	for _, id := range ids {
		r.expr(id)
	}
}

// path resolves E::V.
func (r *resolver) path(id ast.ExprID) {
	d, _ := r.b.Exprs.Path(id)
	if ref, ok := r.variantRef(d.Enum, d.EnumSpan, d.Variant, d.VariantSpan); ok {
		r.res.ExprDecls[id] = ref
	}
}

func (r *resolver) variantRef(enum string, enumSpan source.Span, variant string, variantSpan source.Span) (symbols.DeclRef, bool) {
	sym, ok := r.lookupType(enum)
	if !ok || sym.Kind != symbols.SymbolEnum {
		r.unresolved(enumSpan, "cannot find enum '%s' in this scope", enum)
		return symbols.DeclRef{}, false
	}
	idx := sym.Decl.VariantIndex(variant)
	if idx < 0 {
		r.unresolved(variantSpan, "no variant named '%s' in enum '%s'", variant, enum)
		return symbols.DeclRef{}, false
	}
	return symbols.DeclRef{Decl: sym.Decl, Variant: idx}, true
}

func (r *resolver) structLit(id ast.ExprID) {
	d, _ := r.b.Exprs.Struct(id)
	var decl *symbols.TypeDecl
	if sym, ok := r.lookupType(d.Name); ok && sym.Kind == symbols.SymbolStruct {
		decl = sym.Decl
		r.res.ExprDecls[id] = symbols.DeclRef{Decl: decl}
	} else {
		r.unresolved(d.NameSpan, "cannot find struct '%s' in this scope", d.Name)
	}
	seen := make(map[string]source.Span, len(d.Fields))
	for _, f := range d.Fields {
		if prev, dup := seen[f.Name]; dup {
			r.duplicate("field", f.Name, f.Span, prev)
		} else {
			seen[f.Name] = f.Span
			if decl != nil && decl.FieldIndex(f.Name) < 0 {
				r.unresolved(f.Span, "struct '%s' has no field named '%s'", d.Name, f.Name)
			}
		}
		r.expr(f.Value)
	}
}

// match resolves arms in their own scopes and then checks exhaustiveness.
func (r *resolver) match(id ast.ExprID) {
	d, _ := r.b.Exprs.Match(id)
	r.expr(d.Scrutinee)
	before := r.errors
	for i, arm := range d.Arms {
		scope := r.sr.Enter(symbols.ScopeArm, ArmOwner(id, i), arm.Span)
		r.pattern(arm.Pattern)
		if arm.Guard.IsValid() {
			r.expr(arm.Guard)
		}
		r.expr(arm.Body)
		r.sr.Leave(scope)
	}
	// по непроверенным шаблонам полноту не считаем
	if r.errors == before {
		r.checkExhaustive(id, d)
	}
}
