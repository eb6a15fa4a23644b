package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/lunavdb"
	"github.com/hupe1980/lunavdb/blobstore"
	"github.com/hupe1980/lunavdb/compress"
)

// app carries the configuration shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "lunavdb",
		Short: "lunavdb - exact nearest-neighbor index files",
		Long: `lunavdb builds and queries exact k-nearest-neighbor indexes over
fixed-dimension float32 embeddings and stores them as compressed dump files.

Every flag can also be set through a LUNAVDB_* environment variable
(e.g. LUNAVDB_LOG_LEVEL=debug) or a YAML config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.lunavdb.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("index", "index.lvdb", "path of the index dump")

	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("index", flags.Lookup("index"))

	rootCmd.AddCommand(
		newBuildCmd(a),
		newSearchCmd(a),
		newInfoCmd(a),
		newRemoveCmd(a),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".lunavdb")
	}

	a.v.SetEnvPrefix("LUNAVDB")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) logger() (*lunavdb.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return lunavdb.NewTextLogger(level), nil
}

// location splits the configured index path into a local store and a blob name.
func (a *app) location() (blobstore.Store, string) {
	path := a.v.GetString("index")
	return blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path)
}

func (a *app) open(cmd *cobra.Command) (*lunavdb.DB, blobstore.Store, string, error) {
	logger, err := a.logger()
	if err != nil {
		return nil, nil, "", err
	}
	store, name := a.location()
	db, err := lunavdb.Open(cmd.Context(), store, name, lunavdb.WithLogger(logger))
	if err != nil {
		return nil, nil, "", err
	}
	return db, store, name, nil
}

func compressorByName(name string) (compress.Compressor, error) {
	c, ok := compress.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown compressor %q (available: %s)", name, strings.Join(compress.Names(), ", "))
	}
	return c, nil
}
