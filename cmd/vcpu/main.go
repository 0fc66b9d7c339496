// vcpu runs Intcode and register-machine programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/vcpu/manifest"
	"github.com/chazu/vcpu/pkg/intcode"
	"github.com/chazu/vcpu/pkg/regmachine"
)

var log = commonlog.GetLogger("vcpu")

// cli carries what every subcommand needs.
type cli struct {
	cfg    *manifest.Manifest
	stdin  io.Reader
	stdout io.Writer
}

type command struct {
	run   func(c *cli, args []string) error
	usage string
}

var commands = map[string]command{
	"run":    {cmdRun, "run [-ascii] [-trace] [-input 1,2] [program]   run an Intcode program"},
	"asm":    {cmdAsm, "asm [-set a=7] [-print a,b] [-limit N] [program]   run a register program"},
	"net":    {cmdNet, "net [-size 50] [-nat] [program]   run a NAT packet network"},
	"amp":    {cmdAmp, "amp [-feedback] [-phases 0,1,2,3,4] [program]   best amplifier signal"},
	"clock":  {cmdClock, "clock [-limit N] [-max N] [program]   lowest a producing a clock signal"},
	"snap":   {cmdSnap, "snap save|load|list|rm ...   manage stored snapshots"},
	"disasm": {cmdDisasm, "disasm [program]   list an Intcode program"},
}

func main() {
	verbose := flag.Bool("v", false, "Verbose output (debug logging)")
	configPath := flag.String("config", "", "Configuration file (default: nearest vcpu.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vcpu [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		for _, name := range []string{"run", "asm", "net", "amp", "clock", "snap", "disasm"} {
			fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
		}
		fmt.Fprintf(os.Stderr, "\nWithout a command, run is assumed.\n")
	}
	flag.Parse()

	if *verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	name := "run"
	if len(args) > 0 {
		if _, ok := commands[args[0]]; ok {
			name, args = args[0], args[1:]
		}
	}
	if name == "run" && cfg.Machine.Kind == manifest.KindRegister {
		name = "asm"
	}

	c := &cli{cfg: cfg, stdin: os.Stdin, stdout: os.Stdout}
	if err := commands[name].run(c, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the named file, or the nearest vcpu.toml, or falls back
// to defaults.
func loadConfig(path string) (*manifest.Manifest, error) {
	if path != "" {
		return manifest.LoadFile(path)
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.Default()
	}
	return m, nil
}

// programText returns the contents of the program named by args, or of the
// configured program when args is empty.
func (c *cli) programText(args []string) (string, error) {
	path := c.cfg.ProgramPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", fmt.Errorf("no program given and none configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read program: %w", err)
	}
	return string(data), nil
}

func (c *cli) loadComputer(args []string) (*intcode.Computer, error) {
	text, err := c.programText(args)
	if err != nil {
		return nil, err
	}
	comp, err := intcode.Load(text)
	if err != nil {
		return nil, err
	}
	comp.Trace = c.cfg.Machine.Trace
	return comp, nil
}

func (c *cli) loadMachine(args []string) (*regmachine.Machine, error) {
	text, err := c.programText(args)
	if err != nil {
		return nil, err
	}
	m, err := regmachine.Load(text)
	if err != nil {
		return nil, err
	}
	m.Trace = c.cfg.Machine.Trace
	for name, v := range c.cfg.Registers {
		m.Registers().Set(name[0], v)
	}
	return m, nil
}

// parseInts reads a comma-separated integer list; empty means none.
func parseInts(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var vals []int64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q", f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
