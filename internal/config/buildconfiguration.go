// Package config implements Mint's build-configuration persistence: the
// BuildConfiguration/Project pair that owns the type registry, string
// interner, diagnostics sink and evaluator for one build invocation, and
// the cached build.mint record of per-project source directories and
// option values. Grounded on the teacher's
// lib/project/BuildConfiguration.cpp and lib/project/Project.cpp.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mint.build/mint/internal/ast"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/eval"
	"mint.build/mint/internal/intrinsics"
	"mint.build/mint/internal/lexer"
	"mint.build/mint/internal/object"
	"mint.build/mint/internal/parser"
	"mint.build/mint/internal/schedule"
	"mint.build/mint/internal/source"
	"mint.build/mint/internal/strintern"
	"mint.build/mint/internal/types"
)

const configFileName = "build.mint"

// BuildConfiguration owns the process-wide state BuildConfiguration::
// BuildConfiguration constructs once per run: the type registry, string
// interner and diagnostics sink are shared by every project it loads, the
// Fundamentals object plays the same role as the teacher's Fundamentals
// module singleton.
type BuildConfiguration struct {
	buildRoot    string
	reg          *types.TypeRegistry
	interner     *strintern.Interner
	diags        *diagnostics.Sink
	fundamentals *object.Object
	ev           *eval.Evaluator

	mainProject *Project
	projects    []*Project

	stamps   *stampFile
	shellOut io.WriteCloser
}

// New constructs a BuildConfiguration. shellOut, if non-nil, is the
// StreamBuffer every `shell.run` call funnels its spawned process's
// stdout/stderr through for the life of this BuildConfiguration: one
// Writer() is taken from it up front and shared by every project's
// evaluator (internal/schedule's JobMgr runs many targets concurrently
// against Evaluator.Fork()s of the same Evaluator, but Function values
// have no per-call identity hook to hand them distinct writers, so one
// shared, line-buffering funnel is what the object model can actually
// provide — see DESIGN.md). Pass nil for a one-shot `mint options`/`mint
// config` run that never executes a shell command. traceShell, when
// true, implements the CLI's `--trace-config` flag by having shell.run
// echo each command to shellOut before running it.
func New(diags *diagnostics.Sink, shellOut *schedule.StreamBuffer, traceShell bool) *BuildConfiguration {
	reg := types.NewRegistry()
	interner := strintern.New()

	var out io.Writer = io.Discard
	var closer io.WriteCloser
	if shellOut != nil {
		closer = shellOut.Writer()
		out = closer
	}

	fundamentals := intrinsics.BuildFundamentals(reg, diags, out, traceShell)
	ev := eval.New(reg, interner, diags, fundamentals)
	intrinsics.RegisterListMethods(ev)

	return &BuildConfiguration{
		reg:          reg,
		interner:     interner,
		diags:        diags,
		fundamentals: fundamentals,
		ev:           ev,
		stamps:       newStampFile(),
		shellOut:     closer,
	}
}

// Close releases the shared shell-output writer, if one was configured,
// signaling EOF to its StreamBuffer pump so Wait returns once every
// spawned process has actually exited.
func (bc *BuildConfiguration) Close() error {
	if bc.shellOut == nil {
		return nil
	}
	return bc.shellOut.Close()
}

// Evaluator returns the shared Evaluator every Project's main module is
// realized against.
func (bc *BuildConfiguration) Evaluator() *eval.Evaluator { return bc.ev }

// Fundamentals returns the shared root prototype object.
func (bc *BuildConfiguration) Fundamentals() *object.Object { return bc.fundamentals }

// Registry returns the shared type registry.
func (bc *BuildConfiguration) Registry() *types.TypeRegistry { return bc.reg }

// MainProject returns the project registered as the build's entry point,
// or nil if none has been added yet.
func (bc *BuildConfiguration) MainProject() *Project { return bc.mainProject }

// Projects returns every project added so far, main project first.
func (bc *BuildConfiguration) Projects() []*Project { return bc.projects }

// SetBuildRoot sets and validates the build directory, matching
// BuildConfiguration::setBuildRoot's path::test(IS_DIRECTORY|IS_WRITABLE)
// guard (reported as an error here instead of exit(-1)).
func (bc *BuildConfiguration) SetBuildRoot(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("build root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("build root %q is not a directory", abs)
	}
	bc.buildRoot = abs
	bc.stamps.path = filepath.Join(abs, ".mint.stamp")
	return nil
}

// BuildRoot returns the configured build directory.
func (bc *BuildConfiguration) BuildRoot() string { return bc.buildRoot }

// configPath returns the absolute path to this build root's build.mint.
func (bc *BuildConfiguration) configPath() string {
	return filepath.Join(bc.buildRoot, configFileName)
}

// ReadConfig implements BuildConfiguration::readConfig: if build.mint
// doesn't exist this is not an error (a fresh build root has none yet),
// it returns (false, nil). Otherwise it parses the file with the same
// lexer/parser module files use (via Parser.ParseProjects) and walks
// each `project { }` block, registering every source_dir it names.
func (bc *BuildConfiguration) ReadConfig() (bool, error) {
	path := bc.configPath()
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	bc.stamps.load()

	lex := lexer.New(string(lexer.Normalize(content)), path)
	p := parser.New(lex)
	projects := p.ParseProjects(path)
	for _, diag := range p.Diagnostics() {
		bc.diags.Errorf(diagnostics.PAR001, nil, diag.Pos, "%s", diag.Message)
	}
	if bc.diags.HadError() {
		return false, fmt.Errorf("parse error in %s", path)
	}

	for _, lit := range projects {
		if err := bc.readProjectConfig(lit); err != nil {
			return false, err
		}
	}
	return true, nil
}

// readProjectConfig implements BuildConfiguration::readProjectConfig:
// the project block's Proto field holds the source_dir string (see
// Parser.ParseProjects), and its Members are SetMember "source_dir" (now
// folded into Proto, kept here for forward compatibility with a literal
// `source_dir = "..."` member) and MakeOption nodes, which are recorded
// as cached option values rather than silently ignored the way the
// teacher's own readProjectConfig leaves NK_MAKE_OPTION as a TODO.
func (bc *BuildConfiguration) readProjectConfig(lit *ast.ObjectLit) error {
	srcDirLit, ok := lit.Proto.(*ast.StringLit)
	if !ok {
		return fmt.Errorf("malformed project block: missing source_dir")
	}
	abs, err := filepath.Abs(srcDirLit.Value)
	if err != nil {
		return err
	}

	// Cached option values must be recorded in bc.stamps before
	// AddSourceProject loads the project's main module: LoadMainModule
	// applies any matching cached values as its very last step, so the
	// cache has to be populated first.
	for _, m := range lit.Members {
		if mm, ok := m.(*ast.MakeOption); ok {
			bc.stamps.cacheOption(abs, mm)
		}
	}

	_, err = bc.AddSourceProject(srcDirLit.Value, bc.mainProject == nil)
	return err
}

// AddSourceProject implements BuildConfiguration::addSourceProject: it
// validates sourcePath, constructs a Project, loads its main module, and
// (if mainProject) records it as bc.mainProject. A second call with
// mainProject=true after one has already been set is an error, matching
// the teacher's M_ASSERT(_mainProject == NULL).
func (bc *BuildConfiguration) AddSourceProject(sourcePath string, mainProject bool) (*Project, error) {
	proj, err := newProject(bc, sourcePath)
	if err != nil {
		return nil, err
	}
	if _, err := proj.LoadMainModule(); err != nil {
		return nil, err
	}
	if mainProject {
		if bc.mainProject != nil {
			return nil, fmt.Errorf("main project already set to %q", bc.mainProject.sourceRoot)
		}
		bc.mainProject = proj
	}
	bc.projects = append(bc.projects, proj)
	return proj, nil
}

// Initialize implements BuildConfiguration::initialize: it (re)writes
// build.mint from the current project/option state, the counterpart to
// ReadConfig. Called after option overrides have been applied (`mint
// build` calls it only when overrides were given), so the next
// invocation sees them.
func (bc *BuildConfiguration) Initialize() error {
	if bc.mainProject == nil {
		return fmt.Errorf("no main project configured")
	}
	f, err := os.Create(bc.configPath())
	if err != nil {
		return fmt.Errorf("writing %s: %w", bc.configPath(), err)
	}
	defer f.Close()
	bc.mainProject.WriteProjectInfo(f)

	bc.stamps.stampProject(bc.mainProject)
	return bc.stamps.save()
}

// ShowOptions implements BuildConfiguration::showOptions, printing the
// main project's declared options to stdout.
func (bc *BuildConfiguration) ShowOptions() error {
	if bc.mainProject == nil {
		return fmt.Errorf("no main project configured")
	}
	bc.mainProject.ShowOptions(os.Stdout)
	return nil
}

// applyCachedOptions re-applies build.mint's cached option values onto
// p's freshly loaded options, but only for options whose declaring
// module source is unchanged since the value was cached (see stamp.go):
// a changed module may have renamed, retyped, or removed the option
// entirely, so a stale cached value is discarded rather than blindly
// reapplied.
func (bc *BuildConfiguration) applyCachedOptions(p *Project) {
	if bc.stamps.stale(p.sourceRoot) {
		if bc.stamps.hasCacheFor(p.sourceRoot) {
			bc.diags.Infof(nil, source.Pos{}, "discarding cached options for %s: module source changed", p.sourceRoot)
		}
		return
	}
	cached := bc.stamps.optionsFor(p.sourceRoot)
	for name, mm := range cached {
		valueExpr, ok := cachedValue(mm)
		if !ok {
			continue
		}
		for _, opt := range p.FindOptions() {
			if optionDisplayName(opt) != name {
				continue
			}
			opt.SetAttr(&object.AttrDef{Name: "value", Value: bc.ev.Eval(valueExpr)})
		}
	}
}

// cachedValue extracts the `value = EXPR` member of a cached `option
// NAME { }` block, if any.
func cachedValue(mm *ast.MakeOption) (ast.Expr, bool) {
	for _, m := range mm.Members {
		if sm, ok := m.(*ast.SetMember); ok && sm.Name == "value" {
			return sm.Value, true
		}
	}
	return nil, false
}
