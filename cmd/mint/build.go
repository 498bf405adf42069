package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mint.build/mint/internal/config"
	"mint.build/mint/internal/diagnostics"
	"mint.build/mint/internal/makefile"
	"mint.build/mint/internal/schedule"
	"mint.build/mint/internal/target"
)

var (
	buildWatch        bool
	buildEmitMakefile string
	buildTraceConfig  bool
	buildJobs         int
)

var buildCmd = &cobra.Command{
	Use:   "build [<target>...]",
	Short: "Build the named targets, or every target if none are named",
	RunE:  runBuild,
}

func init() {
	buildCmd.FParseErrWhitelist.UnknownFlags = true
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild whenever a source file changes")
	buildCmd.Flags().StringVar(&buildEmitMakefile, "emit-makefile", "", "write a Makefile over the target graph instead of building")
	buildCmd.Flags().BoolVar(&buildTraceConfig, "trace-config", false, "echo every shell command before it runs")
	buildCmd.Flags().IntVar(&buildJobs, "jobs", 0, "maximum number of targets to build concurrently (default: project's .mint.toml job_count, or 4)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, err := resolveBuildRoot()
	if err != nil {
		return err
	}
	diags := newDiagSink()
	sb := schedule.NewStreamBuffer(cmd.OutOrStdout())
	bc := config.New(diags, sb, buildTraceConfig)
	if err := bc.SetBuildRoot(root); err != nil {
		return err
	}
	found, err := bc.ReadConfig()
	if err != nil {
		return err
	}
	if !found || bc.MainProject() == nil {
		return fmt.Errorf("no build.mint in %s; run 'mint init <source-dir>' first", root)
	}
	proj := bc.MainProject()

	overrides, targetNames := splitBuildArgs(args)
	for _, kv := range overrides {
		if err := proj.SetOption(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if len(overrides) > 0 {
		if err := bc.Initialize(); err != nil {
			return err
		}
	}

	mgr := target.NewManager()
	built := proj.BuildTargets(mgr)

	if buildEmitMakefile != "" {
		bc.Close()
		return writeMakefile(mgr)
	}

	jobs := buildJobs
	if jobs <= 0 {
		jobs = proj.JobCount()
	}
	if jobs <= 0 {
		jobs = 4
	}
	jm := schedule.NewJobMgr(mgr, bc.Evaluator(), diags, sb, jobs)

	if len(targetNames) == 0 {
		if err := jm.AddAllReady(); err != nil {
			return err
		}
	} else {
		for _, name := range targetNames {
			t := findTarget(built, name)
			if t == nil {
				return fmt.Errorf("no such target %q", name)
			}
			if err := jm.AddReady(t); err != nil {
				return err
			}
		}
	}

	if buildWatch {
		err = runWatch(jm, diags)
	} else {
		err = jm.Run()
	}
	bc.Close()
	sb.Wait()
	if err != nil {
		return err
	}
	if diags.HadError() {
		return fmt.Errorf("build failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s build complete\n", green("ok"))
	return nil
}

func findTarget(targets []*target.Target, name string) *target.Target {
	for _, t := range targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// splitBuildArgs separates `mint build`'s positional target names from
// `--name=value` option overrides: FParseErrWhitelist.UnknownFlags
// leaves flags mint's own flag set doesn't recognize in args verbatim
// rather than erroring, interleaved with any target names, so the two
// have to be told apart by the leading "--".
func splitBuildArgs(args []string) (overrides [][2]string, targets []string) {
	for _, tok := range args {
		if !strings.HasPrefix(tok, "--") {
			targets = append(targets, tok)
			continue
		}
		name, value, ok := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		if ok {
			overrides = append(overrides, [2]string{name, value})
		}
	}
	return overrides, targets
}

func writeMakefile(mgr *target.Manager) error {
	f, err := os.Create(buildEmitMakefile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := makefile.Write(f, mgr, os.Args[0]); err != nil {
		return err
	}
	fmt.Printf("%s wrote %s\n", green("ok"), buildEmitMakefile)
	return nil
}

// runWatch builds once, then drives schedule.Watcher until SIGINT/SIGTERM,
// implementing `mint build --watch`.
func runWatch(jm *schedule.JobMgr, diags *diagnostics.Sink) error {
	if err := jm.Run(); err != nil {
		return err
	}

	w, err := schedule.NewWatcher(jm, diags)
	if err != nil {
		return err
	}
	fmt.Println("watching for changes, press Ctrl+C to stop")

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	return w.Run(stop)
}
