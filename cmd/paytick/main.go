package main

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/cli/settings"
	"github.com/julianstephens/paytick/internal/cli/shift"
	"github.com/julianstephens/paytick/internal/cli/system"
	"github.com/julianstephens/paytick/internal/config"
	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/storage"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Store location: a SQLite path, a .json file, or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded here; use PAYTICK_DB_CONNECTION or the OS keyring instead." type:"string" default:"${default_config}"`
	SettingsFile string `name:"settings-file" help:"Settings file path." type:"string" default:"${default_settings}"`
	Ephemeral    bool   `help:"Keep the ticker state in memory only."`
	Verbose      bool   `short:"v" help:"Enable debug logging."`

	Start    shift.StartCmd       `cmd:"" help:"Start the earnings ticker." default:"1"`
	Cancel   shift.CancelCmd      `cmd:"" help:"Deactivate the stored ticker."`
	Status   shift.StatusCmd      `cmd:"" help:"Show the stored shift and today's earnings."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Init     system.InitCmd       `cmd:"" help:"Initialize paytick storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send a test notification."`
}

// Commands that create the store on first use instead of failing
var autoInit = map[string]bool{"start": true, "status": true, "cancel": true}

// Commands that load the store themselves or never touch it
var skipLoad = map[string]bool{
	"init":     true,
	"doctor":   true,
	"debug":    true,
	"keyring":  true,
	"settings": true,
	"notify":   true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Real-time earnings ticker for today's shift"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"default_config":   constants.DefaultConfigPath,
			"default_settings": config.DefaultPath(),
		},
	)

	settingsMgr, err := config.NewManager(CLI.SettingsFile)
	if err != nil {
		errors.Fatal(err)
	}
	// A broken settings file is reported by the commands that read it
	current, _ := settingsMgr.Load()

	command := topCommand(ctx)
	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || current.Debug,
		ConfigDir: filepath.Dir(settingsMgr.Path()),
		// The full-screen ticker owns stderr while it runs
		Stderr: CLI.Verbose && command != "start",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	location, source := storage.ResolveConnection(CLI.Config)
	if CLI.Ephemeral {
		location, source = ":memory:", storage.SourceFlag
	}
	logger.Debug("Resolved store", "source", source, "command", command)

	store, err := storage.Open(location, source)
	if err != nil {
		exit(err)
	}
	defer store.Close()

	if !skipLoad[command] {
		if err := loadStore(store, command); err != nil {
			exit(err)
		}
	}

	if err := ctx.Run(cli.NewContext(store, settingsMgr)); err != nil {
		exit(err)
	}
}

func loadStore(store storage.Provider, command string) error {
	err := store.Load()
	if stderrors.Is(err, errors.ErrNotInitialized) && autoInit[command] {
		logger.Info("Creating store on first use", "path", store.GetConfigPath())
		return store.Init()
	}
	return err
}

// topCommand returns the first word of the selected command, e.g. "keyring" for "keyring set"
func topCommand(ctx *kong.Context) string {
	if node := ctx.Selected(); node != nil {
		for node.Parent != nil && node.Parent.Type == kong.CommandNode {
			node = node.Parent
		}
		return node.Name
	}
	return ""
}

// exit skips printing errors the ticker view has already shown
func exit(err error) {
	if cli.IsReported(err) {
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
	errors.Fatal(err)
}
