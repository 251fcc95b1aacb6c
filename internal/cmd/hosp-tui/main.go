package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	rootCmd        = &cobra.Command{
		Use:   "hosp-tui",
		Short: "Torn hospital release tracker",
		Long:  `hosp-tui - Track when Torn players leave hospital from your terminal`,
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about hosp-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	refreshCmd = &cobra.Command{
		Use:   "refresh",
		Short: "Refresh all tracked players once and print the results",
		Args:  cobra.NoArgs,
		RunE:  refresh,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the tracked players",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	historyCmd = &cobra.Command{
		Use:   "history [player id]",
		Short: "Show recorded refreshes, optionally for a single player",
		Args:  cobra.MaximumNArgs(1),
		RunE:  history,
	}

	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Set the Torn API key used for lookups",
		Args:  cobra.NoArgs,
		RunE:  setKey,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Write the current configuration, including defaults, to the config file",
		Args:  cobra.NoArgs,
		RunE:  writeConfig,
	}
)

var errApp = errors.New("application error")

func main() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of rows to show")
	rootCmd.AddCommand(versionCmd, refreshCmd, listCmd, historyCmd, keyCmd, configCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(BuildVersion), fang.WithCommit(BuildCommit)); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("hosp-tui - Torn hospital tracker\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)        //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)         //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)           //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)    //nolint:forbidigo
}

// loadConfig makes sure the config home exists and reads the config. Reloads are pushed onto changes
// when it is not nil.
func loadConfig(changes chan config.Config) (*config.Loader, config.Config, error) {
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return nil, config.Config{}, errors.Join(err, errApp)
	}

	loader := config.NewLoader(changes)
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return nil, config.Config{}, errors.Join(errConfig, errApp)
	}

	return loader, userConfig, nil
}

func writeConfig(cmd *cobra.Command, _ []string) error {
	loader, userConfig, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	if err := loader.Write(userConfig); err != nil {
		return errors.Join(err, errApp)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", loader.Path())

	return nil
}
