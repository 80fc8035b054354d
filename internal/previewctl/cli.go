package previewctl

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config carries the daemon endpoint and output options shared by every
// command.
type Config struct {
	BaseURL string
	LogLvl  string
	Timeout time.Duration
	JSON    bool
}

func usage() {
	fmt.Println("Usage: previewctl [--url http://127.0.0.1:8080] [--log-level info] [--timeout 30s] [--json] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status                      Show pipeline counters and live sessions")
	fmt.Println("  assets                      List renderable assets")
	fmt.Println("  visibility                  Show the gate settings pages should mirror")
	fmt.Println("  check                       Probe /healthz and /readyz")
	fmt.Println("  mount <source-key> [size]   Open a preview session")
	fmt.Println("  get <session-id>            Fetch one session resource")
	fmt.Println("  visible <session-id> [r]    Report the slot visible with ratio r (default 1)")
	fmt.Println("  cancel <session-id>         Close a session")
	fmt.Println("  image <session-id> [out]    Download the snapshot PNG")
	fmt.Println("  render <source-key> [out]   Mount, wait for the snapshot, download it")
	fmt.Println("  warm <source-key>           Pre-render into the cache without a session")
}

// Run dispatches the CLI command. It returns an error instead of exiting,
// enabling reuse from other packages or tests.
func Run(args []string, cfg *Config) error {
	switch args[0] {
	case "status":
		return fnStatus(cfg)
	case "assets":
		return fnAssets(cfg)
	case "visibility":
		return fnVisibility(cfg)
	case "check":
		return fnCheck(cfg)
	case "mount":
		if len(args) < 2 {
			return fmt.Errorf("mount requires a source key")
		}
		size := 0
		if len(args) >= 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("mount size must be an integer: %q", args[2])
			}
			size = n
		}
		return fnMount(cfg, args[1], size)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get requires a session id")
		}
		return fnGet(cfg, args[1])
	case "visible":
		if len(args) < 2 {
			return fmt.Errorf("visible requires a session id")
		}
		ratio := 1.0
		if len(args) >= 3 {
			r, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("visible ratio must be a number: %q", args[2])
			}
			ratio = r
		}
		return fnVisible(cfg, args[1], ratio)
	case "cancel":
		if len(args) < 2 {
			return fmt.Errorf("cancel requires a session id")
		}
		return fnCancel(cfg, args[1])
	case "image":
		if len(args) < 2 {
			return fmt.Errorf("image requires a session id")
		}
		out := ""
		if len(args) >= 3 {
			out = args[2]
		}
		return fnImage(cfg, args[1], out)
	case "render":
		if len(args) < 2 {
			return fmt.Errorf("render requires a source key")
		}
		out := ""
		if len(args) >= 3 {
			out = args[2]
		}
		return fnRender(cfg, args[1], 0, out)
	case "warm":
		if len(args) < 2 {
			return fmt.Errorf("warm requires a source key")
		}
		return fnWarm(cfg, args[1])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func ParseConfig() (*Config, []string) {
	return ParseConfigWith(flag.CommandLine, os.Args[1:])
}

// ParseConfigWith parses flags using the provided FlagSet and args slice.
// This enables tests to inject their own FlagSet and arguments without
// mutating global state.
func ParseConfigWith(fs *flag.FlagSet, args []string) (*Config, []string) {
	cfg := &Config{}
	// Only define flags if they are not already present on the provided FlagSet.
	if fs.Lookup("url") == nil {
		fs.String("url", envStr("PREVIEWD_URL", "http://127.0.0.1:8080"), "previewd base URL")
	}
	if fs.Lookup("log-level") == nil {
		fs.String("log-level", envStr("PREVIEWCTL_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	}
	if fs.Lookup("timeout") == nil {
		fs.Duration("timeout", envDur("PREVIEWCTL_TIMEOUT", 30*time.Second), "How long render waits for a snapshot")
	}
	if fs.Lookup("json") == nil {
		fs.Bool("json", envBool("PREVIEWCTL_JSON", false), "Print raw JSON responses")
	}
	_ = fs.Parse(args)
	// Read back values from the parsed FlagSet, falling back to env defaults.
	cfg.BaseURL = envStr("PREVIEWD_URL", "http://127.0.0.1:8080")
	if f := fs.Lookup("url"); f != nil {
		if v := f.Value.String(); v != "" {
			cfg.BaseURL = v
		}
	}
	cfg.LogLvl = envStr("PREVIEWCTL_LOG_LEVEL", "info")
	if f := fs.Lookup("log-level"); f != nil {
		if v := f.Value.String(); v != "" {
			cfg.LogLvl = v
		}
	}
	cfg.Timeout = envDur("PREVIEWCTL_TIMEOUT", 30*time.Second)
	if f := fs.Lookup("timeout"); f != nil {
		if d, err := time.ParseDuration(f.Value.String()); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	cfg.JSON = envBool("PREVIEWCTL_JSON", false)
	if f := fs.Lookup("json"); f != nil {
		cfg.JSON = f.Value.String() == "true"
	}
	return cfg, fs.Args()
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	// If user explicitly asks for help, print usage and exit 0
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			usage()
			return 0
		}
	}
	fs := flag.NewFlagSet("previewctl", flag.ContinueOnError)
	cfg, rest := ParseConfigWith(fs, args)
	if len(rest) == 0 {
		usage()
		return 2
	}
	// Shell completion is generated and answered by the Cobra tree; everything
	// else goes through the plain dispatcher.
	switch rest[0] {
	case "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		root := buildRootCmdWith(cfg)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		return 0
	}
	SetLogLevel(cfg.LogLvl)
	if err := Run(rest, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/previewctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
