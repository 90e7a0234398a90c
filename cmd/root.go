// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/config"
	"github.com/xkilldash9x/shymouse/internal/observability"
)

// cliState is shared by every command of one root command instance.
type cliState struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand builds a fresh command tree. Each call gets its own viper
// instance so repeated executions never leak flags or config between runs.
func NewRootCommand() *cobra.Command {
	st := &cliState{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "shymouse",
		Short:         "ShyMouse moves the pointer like a person would.",
		Long:          "ShyMouse synthesizes human-like cursor paths, scrolls and clicks and replays them in a browser.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load()
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "shymouse version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&st.cfgFile, "config", "c", "", "config file (default is ./config.yaml, then ~/.shymouse.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = st.v.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newPlanCmd(st), newRunCmd(st), newVersionCmd())
	return rootCmd
}

// Execute runs the command tree with the signal-aware context from main.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			observability.GetLogger().Info("Command canceled.")
		} else {
			observability.GetLogger().Error("Command execution failed.", zap.Error(err))
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	observability.Sync()
	return err
}

// load reads .env, the config file and SHYMOUSE_* variables, then
// initializes the logger.
func (st *cliState) load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	config.SetDefaults(st.v)
	st.v.SetEnvPrefix("SHYMOUSE")
	st.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	st.v.AutomaticEnv()

	path, err := st.resolveConfigFile()
	if err != nil {
		return err
	}
	if path != "" {
		st.v.SetConfigFile(path)
		if err := st.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg, err := config.NewConfigFromViper(st.v)
	if err != nil {
		return err
	}
	st.cfg = cfg

	observability.InitializeLogger(cfg.Logger())
	observability.GetLogger().Debug("Configuration loaded.", zap.String("config_file", path), zap.String("version", Version))
	return nil
}

// resolveConfigFile returns the explicit --config path, or the first of
// ./config.yaml and ~/.shymouse.yaml that exists. An empty result means
// defaults and environment only.
func (st *cliState) resolveConfigFile() (string, error) {
	if st.cfgFile != "" {
		expanded, err := homedir.Expand(st.cfgFile)
		if err != nil {
			return "", fmt.Errorf("invalid config path %q: %w", st.cfgFile, err)
		}
		return expanded, nil
	}

	candidates := []string{"config.yaml"}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".shymouse.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}
