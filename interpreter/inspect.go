package interpreter

import "github.com/edwingeng/deque"

// GlobalsSnapshot returns a copy of the user bindings in the outermost scope;
// the pre-seeded built-ins and constants are left out.
func (i *Interpreter) GlobalsSnapshot() map[string]Binding {
	builtin := make(map[string]bool)
	for _, name := range BuiltinNames() {
		builtin[name] = true
	}

	out := make(map[string]Binding)
	for name, b := range i.global.Snapshot() {
		if builtin[name] {
			continue
		}
		out[name] = b
	}
	return out
}

// GlobalNames lists the user bindings of the outermost scope in the order
// they were declared.
func (i *Interpreter) GlobalNames() []string {
	builtin := make(map[string]bool)
	for _, name := range BuiltinNames() {
		builtin[name] = true
	}

	names := []string{}
	for _, name := range i.global.Declared() {
		if !builtin[name] {
			names = append(names, name)
		}
	}
	return names
}

// FuncNames returns sorted names of user-defined functions in the outermost scope.
func (i *Interpreter) FuncNames() []string {
	names := []string{}
	for _, name := range i.global.Names() {
		if b, _ := i.global.Resolve(name); b.Value.Kind == ValFunction {
			names = append(names, name)
		}
	}
	return names
}

// Reset drops every user binding and returns the session to its initial state.
func (i *Interpreter) Reset() {
	i.global = NewGlobalEnvironment()
	seedBuiltins(i.global)
	i.frames = deque.NewDeque()
	i.errors.Clear()
}

// SetSource names the chunk about to run and keeps its lines for caret
// diagnostics.
func (i *Interpreter) SetSource(filename string, source string) {
	i.filename = filename
	i.lines = splitLinesPreserve(source)
}
