package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
)

const usageText = `Usage: ringy [flags]

Interactive ring heap: a fixed-capacity priority queue that evicts the
oldest item once full. Reads commands from the terminal (REPL) or, when
stdin is not a terminal, one command per line from stdin.

Flags:
`

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	flags := flag.NewFlagSet("ringy", flag.ContinueOnError)
	flags.SetOutput(&strings.Builder{}) // discard pflag output

	workDir := flags.StringP("cwd", "C", "", "run as if started in `dir`")
	configPath := flags.StringP("config", "c", "", "use config `file` (must exist)")
	capacity := flags.IntP("capacity", "n", 0, "maximum retained items")
	order := flags.String("order", "", "priority order: min or max")
	noHistory := flags.Bool("no-history", false, "do not read or write REPL history")
	printConfig := flags.Bool("print-config", false, "print the resolved config and exit")
	help := flags.BoolP("help", "h", false, "show this help")

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	err := flags.Parse(rest)
	if err != nil {
		o.ErrPrintln("error:", err)
		printUsage(errOut, flags)

		return 1
	}

	if *help {
		printUsage(out, flags)

		return 0
	}

	if flags.NArg() > 0 {
		o.ErrPrintln("error: unexpected argument:", flags.Arg(0))
		printUsage(errOut, flags)

		return 1
	}

	if flags.Changed("capacity") && *capacity <= 0 {
		o.ErrPrintln("error:", fmt.Errorf("%w, got %d", ErrInvalidCapacity, *capacity))

		return 1
	}

	dir := *workDir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)

			return 1
		}
	}

	overrides := Config{Capacity: *capacity, Order: *order}
	if *noHistory {
		disabled := false
		overrides.History = &disabled
	}

	cfg, sources, err := LoadConfig(dir, *configPath, overrides, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if *printConfig {
		return runPrintConfig(o, cfg, sources)
	}

	session, err := NewSession(cfg, o)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if in == nil {
		in = strings.NewReader("")
	}

	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		r := &repl{session: session, cfg: cfg, io: o}
		err = r.run()
	} else {
		err = runBatch(session, in)
	}

	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return o.Finish()
}

func runPrintConfig(o *IO, cfg Config, sources ConfigSources) int {
	formatted, err := FormatConfig(cfg)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if sources.Global != "" {
		o.Println("# global:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("# project:", sources.Project)
	}

	o.Println(formatted)

	return 0
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	var buf strings.Builder

	flags.SetOutput(&buf)
	flags.PrintDefaults()
	flags.SetOutput(&strings.Builder{})

	_, _ = fmt.Fprint(w, usageText, buf.String())
}
