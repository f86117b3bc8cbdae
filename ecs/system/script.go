package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/charkit/ecs"
	"github.com/milk9111/charkit/ecs/component"
	"github.com/milk9111/charkit/tuning"
)

// ScriptSystem runs each scripted actor's tengo behaviour once per frame,
// writing the script's movement intent into the Input component.
type ScriptSystem struct {
	cache map[ecs.Entity]*scriptRuntime
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{}
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

const scriptDispatch = `
if __phase == "update" {
	update(__engine, __state)
}
`

func (s *ScriptSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.Each(w, component.ScriptComponent, func(e ecs.Entity, sc *component.Script) {
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		actor, ok := ecs.Get(w, e, component.ActorComponent)
		if !ok || actor.Core == nil {
			return
		}

		rt, err := s.runtimeFor(e, sc.Path)
		if err != nil {
			fmt.Printf("script: entity=%s load %s: %v\n", e, sc.Path, err)
			return
		}

		in.Move.X = 0
		in.Move.Y = 0
		in.JumpPressed = false

		engine := buildScriptEngine(actor, in)
		if err := rt.run("update", engine); err != nil {
			fmt.Printf("script: entity=%s update error: %v\n", e, err)
		}
	})
}

func (s *ScriptSystem) runtimeFor(e ecs.Entity, path string) (*scriptRuntime, error) {
	if s.cache == nil {
		s.cache = map[ecs.Entity]*scriptRuntime{}
	}
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}

	src, err := tuning.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte("\n"+scriptDispatch)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptRuntime{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

// Invalidate drops the compiled runtimes so edited scripts are recompiled on
// the next frame.
func (s *ScriptSystem) Invalidate() {
	if s != nil {
		s.cache = nil
	}
}

func (rt *scriptRuntime) run(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptEngine(actor *component.Actor, in *component.Input) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var x, y float64
		if actor.Body != nil {
			pos := actor.Body.Position()
			x, y = pos.X, pos.Y
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if actor.Core.State().IsGrounded {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["blocked"] = &tengo.UserFunction{Name: "blocked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		st := actor.Core.State()
		if st.HasCollisions && !st.IsGrounded || st.IsOnSlope {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		if x, ok := tengo.ToFloat64(args[0]); ok {
			in.Move.X = x
		}
		return tengo.UndefinedValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		in.JumpPressed = true
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
