// termpulse is the reference binary for the termpulse runtime core: a
// raw-mode terminal loop driving the Home component from a merged
// tick/input/signal event stream.
//
// Usage:
//
//	termpulse [flags]
//
// Flags:
//
//	-tick-rate uint   Tick interval in milliseconds, 0 disables ticks (default 250)
//	-config string    Path to configuration file (default: $TERMPULSE_CONFIG/config.toml)
//	-log-level string Log verbosity: off|error|warn|info|debug|trace
//	-version          Print version and directory information, then exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/termpulse/pkg/app"
	"gitlab.com/tinyland/lab/termpulse/pkg/component"
	"gitlab.com/tinyland/lab/termpulse/pkg/config"
	"gitlab.com/tinyland/lab/termpulse/pkg/display"
	"gitlab.com/tinyland/lab/termpulse/pkg/logging"
	"gitlab.com/tinyland/lab/termpulse/pkg/sysload"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336"))

func main() {
	os.Exit(run())
}

// run performs the startup sequence (directories, configuration,
// logging, app) and maps the outcome to an exit code. All fatal
// errors reach stderr only after the loop has restored the terminal.
func run() int {
	var (
		tickRate    = flag.Uint64("tick-rate", 250, "Tick interval in milliseconds (0 disables ticks)")
		configPath  = flag.String("config", "", "Path to configuration file")
		logLevel    = flag.String("log-level", "", "Log verbosity (off|error|warn|info|debug|trace)")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Print(versionString())
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fatal(fmt.Errorf("load config: %w", err))
	}

	level := cfg.General.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	closeLog, err := logging.Init(config.DataDir(), level)
	if err != nil {
		return fatal(err)
	}
	defer closeLog()

	tick := cfg.General.TickRate.Duration
	if flagSet("tick-rate") {
		tick = time.Duration(*tickRate) * time.Millisecond
	}

	backend, err := display.NewTTYBackend()
	if err != nil {
		return fatal(err)
	}

	theme := component.Theme{
		Accent: cfg.Theme.Accent,
		Dim:    cfg.Theme.Dim,
		Warn:   cfg.Theme.Warn,
		Crit:   cfg.Theme.Crit,
	}
	a, err := app.New(app.Config{
		Backend:      backend,
		Root:         component.NewHome(&sysload.Sampler{}, theme),
		TickRate:     tick,
		Input:        os.Stdin,
		WatchSignals: true,
	})
	if err != nil {
		return fatal(err)
	}
	defer a.Guard()

	if err := a.Run(context.Background()); err != nil {
		return fatal(err)
	}
	return 0
}

// loadConfig loads from the explicit path when given, else the
// standard location.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// fatal reports err to stderr and returns the failure exit code. By
// the time this runs, any live display has already been restored.
func fatal(err error) int {
	fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("Error:"), err)
	return 1
}

// flagSet reports whether the named flag was given explicitly.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// versionString reports the build plus the resolved directories, so a
// bug report carries the paths that matter.
func versionString() string {
	return fmt.Sprintf(`termpulse %s (%s) built %s

Config directory: %s
Data directory: %s
`, version, commit, date, config.ConfigDir(), config.DataDir())
}
