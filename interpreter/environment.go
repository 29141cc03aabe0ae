package interpreter

import "sort"

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeLoop
	ScopeIfElse
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeLoop:
		return "loop"
	case ScopeIfElse:
		return "if-else"
	case ScopeBlock:
		return "block"
	default:
		return "scope"
	}
}

// Binding is a name's value together with its stored type tag and whether
// it may be reassigned. Type always equals TypeOf(Value).
type Binding struct {
	Value   Value
	Type    TypeTag
	Mutable bool
}

// Environment is one level of the lexical scope chain.
type Environment struct {
	kind   ScopeKind
	values map[string]*Binding
	order  []string
	parent *Environment
}

// NewEnvironment creates a child scope of parent.
func NewEnvironment(parent *Environment, kind ScopeKind) *Environment {
	return &Environment{
		kind:   kind,
		values: make(map[string]*Binding),
		parent: parent,
	}
}

// NewGlobalEnvironment creates the outermost scope.
func NewGlobalEnvironment() *Environment {
	return NewEnvironment(nil, ScopeGlobal)
}

func (e *Environment) Parent() *Environment { return e.parent }

func (e *Environment) Kind() ScopeKind { return e.kind }

// Depth is 0 for the outermost scope.
func (e *Environment) Depth() int {
	d := 0
	for p := e.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Define adds a binding to this scope only. It returns false when the name is
// already bound here; bindings in parent scopes are shadowed, not rejected.
func (e *Environment) Define(name string, value Value, tag TypeTag, mutable bool) bool {
	if _, ok := e.values[name]; ok {
		return false
	}
	e.values[name] = &Binding{Value: value, Type: tag, Mutable: mutable}
	e.order = append(e.order, name)
	return true
}

func (e *Environment) lookup(name string) *Binding {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b
		}
	}
	return nil
}

// Resolve walks from this scope outward and returns a copy of the nearest
// binding for name.
func (e *Environment) Resolve(name string) (Binding, bool) {
	b := e.lookup(name)
	if b == nil {
		return Binding{}, false
	}
	return *b, true
}

func (e *Environment) IsDeclared(name string) bool {
	return e.lookup(name) != nil
}

// Has reports whether name is bound in this exact scope.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

func (e *Environment) TypeOf(name string) (TypeTag, bool) {
	b := e.lookup(name)
	if b == nil {
		return TypeUnknown, false
	}
	return b.Type, true
}

type AssignResult int

const (
	AssignOK AssignResult = iota
	AssignUndeclared
	AssignTypeMismatch
	AssignImmutable
)

// Assign replaces the value of the nearest binding for name, in whichever
// scope owns it. The new value must carry the binding's stored tag and the
// binding must be mutable; the type check comes first.
func (e *Environment) Assign(name string, value Value) AssignResult {
	b := e.lookup(name)
	if b == nil {
		return AssignUndeclared
	}
	if TypeOf(value) != b.Type {
		return AssignTypeMismatch
	}
	if !b.Mutable {
		return AssignImmutable
	}
	b.Value = value
	return AssignOK
}

// Names returns the names bound in this scope in sorted order.
func (e *Environment) Names() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Declared returns the names bound in this scope in declaration order.
func (e *Environment) Declared() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Snapshot returns a copy of this scope's bindings.
func (e *Environment) Snapshot() map[string]Binding {
	out := make(map[string]Binding, len(e.values))
	for k, v := range e.values {
		out[k] = *v
	}
	return out
}
