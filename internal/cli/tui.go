package cli

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantry/internal/cart"
	"pantry/internal/ui"
)

func (a *app) runTUI(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cartMgr := cart.NewManager(a.bus, a.client, a.logger)
	defer cartMgr.Close()

	model := ui.NewModel(a.bus, a.cfg, ui.Services{
		Searcher:   a.client,
		Recipes:    a.client,
		APIBaseURL: a.client.BaseURL(),
		Username:   a.username(),
		Logger:     a.logger,
	})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))

	unforward := ui.Forward(a.bus, p.Send)
	defer unforward()

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("UI exited with error", zap.Error(err))
		return err
	}
	a.logger.Info("UI exited normally")
	return nil
}
