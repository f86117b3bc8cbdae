package component

// Script points an actor at a tengo behaviour script, looked up through the
// tuning package.
type Script struct {
	Path string
}

var ScriptComponent = NewHandle[Script]()
