package runtime

import "sort"

type scope map[string]Value

// frame is the activation record of one function call: a stack of block scopes.
type frame struct {
	scopes []scope
}

// Environment is a stack of function frames. Lookup and mutation only see the
// topmost frame; callers' locals are never visible to a callee.
type Environment struct {
	frames []*frame
}

func NewEnvironment() *Environment {
	return &Environment{}
}

// PushFunction starts a new activation record holding one empty scope.
func (e *Environment) PushFunction() {
	e.frames = append(e.frames, &frame{scopes: []scope{make(scope)}})
}

func (e *Environment) PopFunction() {
	if len(e.frames) == 0 {
		return
	}
	e.frames[len(e.frames)-1] = nil
	e.frames = e.frames[:len(e.frames)-1]
}

// PushBlock opens a nested scope in the current frame.
func (e *Environment) PushBlock() {
	top := e.top()
	if top == nil {
		e.PushFunction()
		return
	}
	top.scopes = append(top.scopes, make(scope))
}

func (e *Environment) PopBlock() {
	top := e.top()
	if top == nil || len(top.scopes) == 0 {
		return
	}
	top.scopes = top.scopes[:len(top.scopes)-1]
}

// Depth is the number of active function frames.
func (e *Environment) Depth() int {
	return len(e.frames)
}

func (e *Environment) top() *frame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// Create binds name in the innermost scope. It reports false, leaving the
// existing binding untouched, when the name is already bound there.
func (e *Environment) Create(name string, value Value) bool {
	top := e.top()
	if top == nil || len(top.scopes) == 0 {
		return false
	}
	inner := top.scopes[len(top.scopes)-1]
	if _, exists := inner[name]; exists {
		return false
	}
	inner[name] = value
	return true
}

// Get searches the scopes of the current frame innermost-first.
func (e *Environment) Get(name string) (Value, bool) {
	top := e.top()
	if top == nil {
		return nil, false
	}
	for i := len(top.scopes) - 1; i >= 0; i-- {
		if v, ok := top.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set mutates the innermost binding of name in the current frame.
func (e *Environment) Set(name string, value Value) bool {
	top := e.top()
	if top == nil {
		return false
	}
	for i := len(top.scopes) - 1; i >= 0; i-- {
		if _, ok := top.scopes[i][name]; ok {
			top.scopes[i][name] = value
			return true
		}
	}
	return false
}

// Snapshot copies every frame and scope container. Values are shared, so a
// struct instance reached through the copy is the same instance.
func (e *Environment) Snapshot() *Environment {
	out := &Environment{frames: make([]*frame, len(e.frames))}
	for i, f := range e.frames {
		copied := &frame{scopes: make([]scope, len(f.scopes))}
		for j, s := range f.scopes {
			inner := make(scope, len(s))
			for k, v := range s {
				inner[k] = v
			}
			copied.scopes[j] = inner
		}
		out.frames[i] = copied
	}
	return out
}

// Names returns the names visible in the current frame in sorted order.
func (e *Environment) Names() []string {
	top := e.top()
	if top == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, s := range top.scopes {
		for k := range s {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
