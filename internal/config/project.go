package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"mint.build/mint/internal/module"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/target"
	"mint.build/mint/internal/types"
)

// Project is one source tree BuildConfiguration knows about: a root
// directory, its own module loader search path, and (once loaded) its
// main module object. Grounded on the teacher's Project (loadMainModule,
// showOptions, configure, writeProjectInfo/writeOptions).
type Project struct {
	buildConfig *BuildConfiguration
	sourceRoot  string
	loader      *module.Loader
	mainModule  *object.Object
	jobCount    int
}

// newProject constructs a Project rooted at sourceRoot, verifying the
// path exists and is a directory, like the IS_DIRECTORY half of
// Project::Project's path::test(_sourceRoot, IS_DIRECTORY | IS_READABLE)
// guard (readability is not checked), reported as an error instead of
// the teacher's exit(-1). The module
// loader's search path is sourceRoot itself, extended by any paths named
// in an optional .mint.toml project override and the user's
// ~/.mint/config.yaml, in that order (project-local overrides win ties
// by being searched first).
func newProject(bc *BuildConfiguration, sourceRoot string) (*Project, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("source directory %q: %w", sourceRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path %q is not a directory", sourceRoot)
	}
	abs, err := filepath.Abs(sourceRoot)
	if err != nil {
		return nil, err
	}

	searchPaths := []string{abs}
	jobCount := 0

	if ov, err := loadProjectOverrides(abs); err == nil {
		for _, sp := range ov.SearchPaths {
			searchPaths = append(searchPaths, resolveRelative(abs, sp))
		}
		jobCount = ov.JobCount
	}
	if user, err := LoadUserConfig(); err == nil {
		searchPaths = append(searchPaths, user.SearchPaths...)
	}

	p := &Project{
		buildConfig: bc,
		sourceRoot:  abs,
		loader:      module.New(searchPaths, bc.ev, bc.diags),
		jobCount:    jobCount,
	}
	return p, nil
}

// JobCount returns this project's .mint.toml-declared default parallel
// job count, or 0 if none was set (the caller, typically cmd/mint,
// should fall back to its own default in that case).
func (p *Project) JobCount() int { return p.jobCount }

func resolveRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// SourceRoot returns the project's absolute source directory.
func (p *Project) SourceRoot() string { return p.sourceRoot }

// MainModule returns the already-loaded main module, or nil.
func (p *Project) MainModule() *object.Object { return p.mainModule }

// LoadMainModule loads and realizes <sourceRoot>/module.mint exactly
// once, matching Project::loadMainModule's load-on-first-use/memoize
// behavior, then applies any option values cached in build.mint whose
// source hash is still current (see stamp.go).
func (p *Project) LoadMainModule() (*object.Object, error) {
	if p.mainModule != nil {
		return p.mainModule, nil
	}
	modPath := filepath.Join(p.sourceRoot, "module.mint")
	mod, err := p.loader.LoadFile(modPath)
	if err != nil {
		return nil, fmt.Errorf("loading main module for project %q: %w", p.sourceRoot, err)
	}
	p.mainModule = mod
	p.buildConfig.applyCachedOptions(p)
	return mod, nil
}

// Fundamentals returns the root prototype object every module in this
// project resolves unbound identifiers against.
func (p *Project) Fundamentals() *object.Object {
	return p.buildConfig.fundamentals
}

// FindOptions walks the main module's own attributes for `option NAME
// { }` blocks: realizeOption (internal/eval/realize.go) records each as
// a PARAM-flagged attribute whose value is an Object inheriting from
// Fundamentals' Option prototype, so no separate recursive module walk
// is needed the way the teacher's ModuleSet::findOptions requires (that
// one aggregates across every loaded module; Mint modules don't import
// options from one another, so the main module's own attrs suffice).
func (p *Project) FindOptions() []*object.Object {
	if p.mainModule == nil {
		return nil
	}
	var out []*object.Object
	for _, name := range p.mainModule.Attrs.Names() {
		def, ok := p.mainModule.Attrs.Get(name)
		if !ok || !def.Flags.Has(object.PARAM) {
			continue
		}
		if opt, ok := def.Value.(*object.Object); ok {
			out = append(out, opt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return optionDisplayName(out[i]) < optionDisplayName(out[j])
	})
	return out
}

// FindTargets walks the main module's own attributes for `target { }`
// object literals: unlike options, a target carries no PARAM-style
// marker attribute of its own (buildTargetProto only pre-declares
// sources/outputs/depends), so the discriminator is structural instead
// of flag-based — an attribute counts as a target if its value's
// prototype chain passes through Fundamentals' own target prototype.
// The attribute name (realizeSetMember hands it to evalObjectLit as the
// literal's name) is the Object's .Name, which doubles as the name
// `mint build <name>` and target.Manager.GetTarget address it by.
func (p *Project) FindTargets() []*object.Object {
	if p.mainModule == nil {
		return nil
	}
	targetProtoDef, _, ok := p.Fundamentals().FindAttr("target")
	if !ok {
		return nil
	}
	targetProto, ok := targetProtoDef.Value.(*object.Object)
	if !ok {
		return nil
	}

	var out []*object.Object
	for _, name := range p.mainModule.Attrs.Names() {
		def, ok := p.mainModule.Attrs.Get(name)
		if !ok {
			continue
		}
		obj, ok := def.Value.(*object.Object)
		if !ok {
			continue
		}
		if isTargetObject(obj, targetProto) {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// isTargetObject reports whether obj's prototype chain passes through
// targetProto, i.e. whether obj was realized from a `target { }` (or a
// descendant of one) rather than a plain object or option literal.
func isTargetObject(obj, targetProto *object.Object) bool {
	for cur := obj; cur != nil; cur = cur.Proto {
		if cur == targetProto {
			return true
		}
	}
	return false
}

// BuildTargets realizes every target found by FindTargets into mgr,
// wiring each Target's sources/outputs/depends off its realized
// attributes (target.Manager.Build), and returns them in the same
// sorted-by-name order FindTargets produces.
func (p *Project) BuildTargets(mgr *target.Manager) []*target.Target {
	var out []*target.Target
	for _, def := range p.FindTargets() {
		t := mgr.GetTarget(def.Name, def)
		mgr.Build(t, p.sourceRoot)
		out = append(out, t)
	}
	return out
}

func optionDisplayName(opt *object.Object) string {
	if def, _, ok := opt.FindAttr("name"); ok {
		if s, ok := def.Value.(object.String); ok {
			return string(s)
		}
	}
	return opt.Name
}

// ShowOptions prints every declared option's name, declared type (if
// any), and current or default value, converting underscores to dashes
// in the displayed name per spec.md §6's "Option syntax". Mirrors
// Project::showOptions without the teacher's ANSI color handling (that
// lives in internal/diagnostics/cmd-level formatting here instead).
func (p *Project) ShowOptions(w io.Writer) {
	fmt.Fprintln(w, "Project options:")
	for _, opt := range p.FindOptions() {
		name := dashesForUnderscores(optionDisplayName(opt))
		fmt.Fprintf(w, "  %s", name)
		if def, _, ok := opt.FindAttr("type"); ok {
			if s, ok := def.Value.(object.String); ok {
				fmt.Fprintf(w, " : %s", s)
			}
		}
		if def, _, ok := opt.FindAttr("value"); ok && def.Value != nil {
			fmt.Fprintf(w, " = %s", def.Value)
		} else if def, _, ok := opt.FindAttr("default"); ok && def.Value != nil {
			fmt.Fprintf(w, " [default = %s]", def.Value)
		}
		fmt.Fprintln(w)
		if def, _, ok := opt.FindAttr("help"); ok {
			if s, ok := def.Value.(object.String); ok && s != "" {
				fmt.Fprintf(w, "      %s\n", s)
			}
		}
	}
}

func dashesForUnderscores(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c == '_' {
			out[i] = '-'
		}
	}
	return string(out)
}

func underscoresForDashes(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c == '-' {
			out[i] = '_'
		}
	}
	return string(out)
}

// SetOption applies a `--name=value` command-line override: it looks up
// the named option among FindOptions, parses raw against the option's
// declared type (falling back to a plain string when untyped or
// unparseable), and sets the option Object's "value" attribute
// directly, overwriting any prior value. name is accepted in either its
// declared underscore form or the dashed form ShowOptions prints, per
// spec.md's "Option syntax".
func (p *Project) SetOption(name, raw string) error {
	name = underscoresForDashes(name)
	for _, opt := range p.FindOptions() {
		if optionDisplayName(opt) != name {
			continue
		}
		var declared *types.Type
		if def, _, ok := opt.FindAttr("type"); ok {
			if s, ok := def.Value.(object.String); ok {
				declared, _ = p.buildConfig.reg.FromTypeName(string(s))
			}
		}
		opt.SetAttr(&object.AttrDef{Name: "value", Value: parseOptionValue(raw, declared)})
		return nil
	}
	return fmt.Errorf("project %q has no option %q", p.sourceRoot, name)
}

// parseOptionValue converts a raw CLI argument into the Node kind an
// option's declared type calls for; an untyped option, or a value that
// doesn't parse as its declared kind, is kept as a plain string so a
// bad override is reported as a type mismatch later rather than
// silently dropped here.
func parseOptionValue(raw string, declared *types.Type) object.Node {
	if declared == nil {
		return object.String(raw)
	}
	switch declared.Kind {
	case types.Bool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return object.Bool(b)
		}
	case types.Integer:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return object.Int(i)
		}
	case types.Float:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return object.Float(f)
		}
	}
	return object.String(raw)
}

// WriteProjectInfo writes this project's `project "<dir>" { ... }` block
// to strm, matching Project::writeProjectInfo/writeOptions.
func (p *Project) WriteProjectInfo(w io.Writer) {
	fmt.Fprintf(w, "project %q {\n", p.sourceRoot)
	p.writeOptions(w)
	fmt.Fprintln(w, "}")
}

func (p *Project) writeOptions(w io.Writer) {
	for _, opt := range p.FindOptions() {
		def, _, ok := opt.FindAttr("value")
		if !ok || def.Value == nil {
			continue
		}
		fmt.Fprintf(w, "  option %s {\n", optionDisplayName(opt))
		fmt.Fprintf(w, "    value = %s\n", quoteIfString(def.Value))
		fmt.Fprintln(w, "  }")
	}
}

func quoteIfString(n object.Node) string {
	if s, ok := n.(object.String); ok {
		return strconv.Quote(string(s))
	}
	return n.String()
}
