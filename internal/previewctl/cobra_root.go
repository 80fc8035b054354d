package previewctl

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// buildRootCmdWith constructs a Cobra command tree wired to the existing fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "previewctl",
		Short:         "Operate a previewd daemon over its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("url", cfg.BaseURL, "previewd base URL (defaults PREVIEWD_URL or http://127.0.0.1:8080)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults PREVIEWCTL_LOG_LEVEL or info)")
	root.PersistentFlags().Duration("timeout", cfg.Timeout, "How long render waits for a snapshot")
	root.PersistentFlags().Bool("json", cfg.JSON, "Print raw JSON responses")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("url"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.BaseURL = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("timeout"); f != nil {
			if d, err := time.ParseDuration(f.Value.String()); err == nil && d > 0 {
				cfg.Timeout = d
			}
		}
		if f := cmd.InheritedFlags().Lookup("json"); f != nil {
			cfg.JSON = f.Value.String() == "true"
		}
		SetLogLevel(cfg.LogLvl)
	}

	statusCmd := &cobra.Command{Use: "status", Short: "Show pipeline counters and live sessions", Example: "  previewctl status", RunE: func(cmd *cobra.Command, args []string) error { return fnStatus(cfg) }}
	assetsCmd := &cobra.Command{Use: "assets", Short: "List renderable assets", RunE: func(cmd *cobra.Command, args []string) error { return fnAssets(cfg) }}
	visibilityCmd := &cobra.Command{Use: "visibility", Short: "Show the gate settings pages should mirror", RunE: func(cmd *cobra.Command, args []string) error { return fnVisibility(cfg) }}
	checkCmd := &cobra.Command{Use: "check", Short: "Probe /healthz and /readyz", RunE: func(cmd *cobra.Command, args []string) error { return fnCheck(cfg) }}
	root.AddCommand(statusCmd, assetsCmd, visibilityCmd, checkCmd)

	mountCmd := &cobra.Command{Use: "mount <source-key>", Short: "Open a preview session", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		return fnMount(cfg, args[0], size)
	}}
	mountCmd.Flags().Int("size", 0, "Preferred snapshot edge length in pixels")
	getCmd := &cobra.Command{Use: "get <session-id>", Short: "Fetch one session resource", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error { return fnGet(cfg, args[0]) }}
	visibleCmd := &cobra.Command{Use: "visible <session-id>", Short: "Report the slot visible", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		ratio, _ := cmd.Flags().GetFloat64("ratio")
		return fnVisible(cfg, args[0], ratio)
	}}
	visibleCmd.Flags().Float64("ratio", 1, "Intersection ratio to report")
	cancelCmd := &cobra.Command{Use: "cancel <session-id>", Short: "Close a session", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error { return fnCancel(cfg, args[0]) }}
	imageCmd := &cobra.Command{Use: "image <session-id>", Short: "Download the snapshot PNG", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return fnImage(cfg, args[0], out)
	}}
	imageCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	root.AddCommand(mountCmd, getCmd, visibleCmd, cancelCmd, imageCmd)

	renderCmd := &cobra.Command{Use: "render <source-key>", Short: "Mount, wait for the snapshot, download it", Example: "  previewctl render gilded-astrolabe.glb -o astrolabe.png", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		out, _ := cmd.Flags().GetString("out")
		return fnRender(cfg, args[0], size, out)
	}}
	renderCmd.Flags().Int("size", 0, "Preferred snapshot edge length in pixels")
	renderCmd.Flags().StringP("out", "o", "", "Output file (default derived from the source key)")
	warmCmd := &cobra.Command{Use: "warm <source-key>", Short: "Pre-render into the cache without a session", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error { return fnWarm(cfg, args[0]) }}
	root.AddCommand(renderCmd, warmCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}
