// Package capture builds the nested capture tree a successful validation
// produces (spec §4.6): a scope stack of labeled values, mirroring list
// nesting, where a label written more than once in the same scope is
// promoted to an array and the "_" label is always suppressed.
package capture

// Value is a capture tree node: a leaf string, an ordered array of Values
// (list-item repetition), or an object of labeled Values (document/line
// structure). Exactly one of the three is non-nil/non-empty at a time.
type Value struct {
	Leaf   string
	Array  []*Value
	Object *Object
}

// Object is an insertion-ordered label -> Value map. A plain map isn't
// enough here: spec §4.6 requires captures to serialize in the order their
// labels were first seen, not sorted.
type Object struct {
	keys   []string
	values map[string]*Value
}

func newObject() *Object {
	return &Object{values: make(map[string]*Value)}
}

// Get returns the value stored under label, or nil.
func (o *Object) Get(label string) *Value {
	if o == nil {
		return nil
	}
	return o.values[label]
}

// Keys returns labels in first-seen order.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) set(label string, v *Value) {
	if _, exists := o.values[label]; !exists {
		o.keys = append(o.keys, label)
	}
	o.values[label] = v
}

// Leaf constructs a leaf Value.
func Leaf(s string) *Value { return &Value{Leaf: s} }

// Scope is one frame of the capture scope stack (spec §4.6): captures
// recorded while validating one list-item subtree (or the document root),
// pending a decision to merge into the parent scope or discard.
type Scope struct {
	obj *Object
}

func newScope() *Scope { return &Scope{obj: newObject()} }

// Record stores a labeled capture in this scope. A label recorded more
// than once is promoted to an array on the second and subsequent writes,
// exactly as spec §4.6 requires for repeated matcher directives inside a
// single list item. Label "_" is always dropped.
func (s *Scope) Record(label string, v *Value) {
	if label == "_" || label == "" {
		return
	}
	existing := s.obj.Get(label)
	switch {
	case existing == nil:
		s.obj.set(label, v)
	case existing.Array != nil:
		existing.Array = append(existing.Array, v)
	default:
		s.obj.set(label, &Value{Array: []*Value{existing, v}})
	}
}

// RecordChild merges a nested scope's object wholesale under label --
// used when a list item's own captures (already merged into a child
// scope) are attached to the enclosing list's array entry.
func (s *Scope) RecordChild(label string, child *Scope) {
	if child == nil || len(child.obj.Keys()) == 0 {
		return
	}
	s.Record(label, &Value{Object: child.obj})
}

// Value snapshots this scope's recorded captures as a single Value.
func (s *Scope) Value() *Value {
	if len(s.obj.Keys()) == 0 {
		return &Value{Object: newObject()}
	}
	return &Value{Object: s.obj}
}

// Stack is the push/merge/discard scope stack spec §4.6 describes: one
// frame is active (Top) at a time, and List Validator iteration pushes a
// fresh frame per item attempt, merging it into the parent on success or
// discarding it on backtrack.
type Stack struct {
	frames []*Scope
}

// NewStack creates a stack with a single root scope, for the document's
// top-level captures.
func NewStack() *Stack {
	return &Stack{frames: []*Scope{newScope()}}
}

// Top returns the currently active scope.
func (s *Stack) Top() *Scope { return s.frames[len(s.frames)-1] }

// Push starts a new scope frame, for entering one list-item attempt.
func (s *Stack) Push() { s.frames = append(s.frames, newScope()) }

// MergeInto pops the top frame and folds its captures into the new top
// frame under label (or directly, if label is "" -- used when a list
// item's captures merge flat into the list's own scope rather than under
// a per-item key).
func (s *Stack) MergeInto(label string) {
	popped := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if label == "" {
		for _, k := range popped.obj.Keys() {
			s.Top().Record(k, popped.obj.Get(k))
		}
		return
	}
	s.Top().RecordChild(label, popped)
}

// Discard pops the top frame without merging it, for a failed backtracked
// attempt (spec §4.6: "a list item rejected during backtracking discards
// its scope entirely").
func (s *Stack) Discard() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Root returns the final captured Value once validation completes.
func (s *Stack) Root() *Value { return s.frames[0].Value() }
