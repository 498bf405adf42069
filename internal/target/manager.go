package target

import "mint.build/mint/internal/object"

// Manager memoizes Target and File construction, grounded on the
// teacher's TargetMgr: getTarget/getFile return the existing instance
// for a definition Object or file path, creating one on first request.
type Manager struct {
	targets map[*object.Object]*Target
	files   map[string]*File
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		targets: make(map[*object.Object]*Target),
		files:   make(map[string]*File),
	}
}

// GetTarget returns the Target for def, creating it on first call. The
// new Target is not wired; Build wires its sources/outputs/depends off
// def's realized attributes.
func (m *Manager) GetTarget(name string, def *object.Object) *Target {
	if t, ok := m.targets[def]; ok {
		return t
	}
	t := New(name, def)
	m.targets[def] = t
	return t
}

// GetFile returns the File for path, creating it on first call so every
// reference to the same path shares one File (and therefore one mtime
// cache and one outputOf list).
func (m *Manager) GetFile(path string) *File {
	if f, ok := m.files[path]; ok {
		return f
	}
	f := NewFile(path)
	m.files[path] = f
	return f
}

// Targets returns every Target created so far.
func (m *Manager) Targets() []*Target {
	out := make([]*Target, 0, len(m.targets))
	for _, t := range m.targets {
		out = append(out, t)
	}
	return out
}

// Build populates t's Sources/Outputs/Depends from def's realized
// `sources`/`outputs`/`depends` list attributes (the teacher's
// Target::addSource/addOutput/addDependency calls, driven here by the
// object graph instead of an imperative builder walk). sourceDir
// resolves relative source/output paths the same way a module's own
// directory would in the teacher's Module::sourceDir.
func (m *Manager) Build(t *Target, sourceDir string) {
	for _, s := range stringsOf(t.Definition, "sources") {
		t.AddSource(m.GetFile(resolveRelative(sourceDir, s)))
	}
	for _, o := range stringsOf(t.Definition, "outputs") {
		t.AddOutput(m.GetFile(resolveRelative(sourceDir, o)))
	}
	for _, depDef := range objectsOf(t.Definition, "depends") {
		name := ""
		if nameDef, ok := depDef.Attrs.Get("name"); ok && nameDef.Value != nil {
			name = nameDef.Value.String()
		}
		t.AddDependency(m.GetTarget(name, depDef))
	}
}

func stringsOf(def *object.Object, attr string) []string {
	list, ok := listAttr(def, attr)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list.Elems))
	for _, e := range list.Elems {
		if s, ok := e.(object.String); ok {
			out = append(out, string(s))
		}
	}
	return out
}

func objectsOf(def *object.Object, attr string) []*object.Object {
	list, ok := listAttr(def, attr)
	if !ok {
		return nil
	}
	out := make([]*object.Object, 0, len(list.Elems))
	for _, e := range list.Elems {
		if o, ok := e.(*object.Object); ok {
			out = append(out, o)
		}
	}
	return out
}

func listAttr(def *object.Object, attr string) (*object.List, bool) {
	d, _, ok := def.FindAttr(attr)
	if !ok {
		return nil, false
	}
	list, ok := d.Value.(*object.List)
	return list, ok
}
