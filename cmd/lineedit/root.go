package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	adapter "github.com/ionut-t/lineedit/adapter-bubbletea"
	"github.com/ionut-t/lineedit/internal/config"
	"github.com/ionut-t/lineedit/internal/log"
)

func init() {
	// Query the terminal background before the program starts so the OSC 11
	// response does not race with the input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	cfgFile   string
	debugFlag bool
	logFile   string
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "lineedit [file]",
	Short: "A minimal line-oriented terminal text editor",
	Long: `lineedit opens a document in a scrollable terminal editor with mouse
selection and system clipboard support. Edits are kept in memory; the file on
disk is never written.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .lineedit/config.yaml, then ~/.config/lineedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: log.path from config)")

	rootCmd.AddCommand(configCmd)
}

func setVersion(v string) {
	rootCmd.Version = v
}

func initConfig() {
	cfg, cfgErr = config.Load(viper.GetViper(), cfgFile)
}

// setupLogging opens the debug log when --debug, LINEEDIT_LOG_DEBUG or log.debug is set.
func setupLogging() (func(), error) {
	if !debugFlag && !cfg.Log.Debug {
		return func() {}, nil
	}

	path := logFile
	if path == "" {
		path = cfg.Log.Path
	}

	cleanup, err := log.InitWithTeaLog(path, "lineedit")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	log.Info(log.CatConfig, "lineedit starting", "logPath", path, "config", viper.ConfigFileUsed())

	return cleanup, nil
}

// newModel builds the editor and loads the optional file into it.
func newModel(c config.Config, args []string) (adapter.Model, error) {
	m := adapter.New(adapter.Options{Config: c})

	if len(args) == 0 {
		return m, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return adapter.Model{}, fmt.Errorf("reading %s: %w", args[0], err)
	}
	m.SetContent(string(data))
	log.Debug(log.CatBuffer, "file opened", "path", args[0], "bytes", len(data))

	return m, nil
}

// watchConfig starts watching the loaded config file. A watcher that cannot
// start only disables live reload.
func watchConfig(path string) (<-chan struct{}, func()) {
	if path == "" {
		return nil, func() {}
	}

	w, err := config.NewWatcher(path, config.DefaultWatchDebounce)
	if err != nil {
		log.ErrorErr(log.CatConfig, "config watcher unavailable", err)
		return nil, func() {}
	}

	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatConfig, "config watcher unavailable", err)
		return nil, func() {}
	}

	return changes, func() { _ = w.Stop() }
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	model, err := newModel(cfg, args)
	if err != nil {
		return err
	}

	changes, stopWatch := watchConfig(viper.ConfigFileUsed())
	defer stopWatch()

	p := tea.NewProgram(
		newApp(model, changes, viper.ConfigFileUsed()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.ErrorErr(log.CatRender, "program exited with error", err)
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
