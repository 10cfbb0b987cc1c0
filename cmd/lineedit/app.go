package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	adapter "github.com/ionut-t/lineedit/adapter-bubbletea"
	"github.com/ionut-t/lineedit/internal/config"
	"github.com/ionut-t/lineedit/internal/log"
)

const reloadMessageDuration = 3 * time.Second

type configReloadedMsg struct {
	cfg config.Config
	err error
}

// app hosts the editor and re-applies the config file when it changes on disk.
type app struct {
	editor  adapter.Model
	changes <-chan struct{} // nil when no config file is watched
	cfgPath string
}

func newApp(editor adapter.Model, changes <-chan struct{}, cfgPath string) app {
	return app{editor: editor, changes: changes, cfgPath: cfgPath}
}

func (a app) Init() tea.Cmd {
	return tea.Batch(a.editor.Init(), a.waitForConfigChange())
}

func (a app) waitForConfigChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}

	changes, path := a.changes, a.cfgPath
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		c, err := config.Load(viper.New(), path)
		return configReloadedMsg{cfg: c, err: err}
	}
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(configReloadedMsg); ok {
		var cmd tea.Cmd
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "config reload failed", msg.err, "path", a.cfgPath)
			cmd = a.editor.DispatchError(fmt.Errorf("config reload: %w", msg.err), reloadMessageDuration)
		} else {
			log.Info(log.CatConfig, "config reloaded", "path", a.cfgPath)
			a.editor.ApplyConfig(msg.cfg)
			cmd = a.editor.DispatchMessage("config reloaded", reloadMessageDuration)
		}
		return a, tea.Batch(cmd, a.waitForConfigChange())
	}

	updated, cmd := a.editor.Update(msg)
	a.editor = updated.(adapter.Model)
	return a, cmd
}

func (a app) View() string {
	return a.editor.View()
}
