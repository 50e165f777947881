package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/bnf"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slrsim",
	Short: "Construct SLR(1) parse tables and simulate SLR(1) parsers",
	Long: `slrsim reads a context-free grammar and
- computes FIRST and FOLLOW sets,
- constructs the LR(0) CFSM and the SLR(1) parse tables, reporting conflicts,
- traces the moves of an SLR(1) parser for an input, step by step.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	trace   *string
	maxIter *int
}{}

// tracerKeys are the trace keys of the packages of this module.
var tracerKeys = []string{"slrsim.lr", "slrsim.scanner", "slrsim.slr", "slrsim.cli"}

// cache holds the compilations of all grammars loaded during a session.
var cache = lr.NewCache()

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.maxIter = rootCmd.PersistentFlags().Int("max-iter", 0, "iteration ceiling of the parser loop")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	conf := koanfadapter.New(nil, "slrsim", []string{"nt"})
	return initConfig(conf, *rootFlags.trace, cmd.Flags().Changed("trace"), *rootFlags.maxIter)
}

// initConfig makes conf the global configuration and sets up tracing. Trace
// levels not set by the configuration are set to level; if force is set,
// level overrides the configuration.
func initConfig(conf *koanfadapter.KConf, level string, force bool, maxIter int) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	// gconf initializes schuko's global tracers, which we do not use
	for _, key := range []string{"tracingequations", "tracinginterpreter", "tracingsyntax",
		"tracingcommands", "tracinggraphics", "tracingscripting", "tracingcore", "tracingengine"} {
		conf.Set(key, "Error")
	}
	gconf.Initialize(conf)
	if force || !conf.IsSet("tracelevel.root") {
		conf.Set("tracelevel.root", level)
	}
	for _, key := range tracerKeys {
		if force || !conf.IsSet("tracelevel."+key) {
			conf.Set("tracelevel."+key, level)
		}
	}
	if maxIter > 0 {
		conf.Set("slr-max-iterations", maxIter)
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("unable to configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", level)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  "  Conflict",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
}

// loadGrammar reads a grammar file. The name of the grammar is the base name
// of the file, without extension.
func loadGrammar(path string) (*lr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	g, err := bnf.Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// compileGrammar loads a grammar file and compiles it, using the session cache.
func compileGrammar(path string) (*lr.Compilation, error) {
	g, err := loadGrammar(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("grammar %q has %d rules", g.Name, g.Size())
	return cache.Compile(g)
}
