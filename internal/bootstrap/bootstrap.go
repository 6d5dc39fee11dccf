package bootstrap

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "tempo/internal/modules/analytics/adapter/in"
	analyticsoutadapter "tempo/internal/modules/analytics/adapter/out"
	analyticsservice "tempo/internal/modules/analytics/service"
	analyticsusecase "tempo/internal/modules/analytics/usecase"
	sessioninadapter "tempo/internal/modules/session/adapter/in"
	sessionoutadapter "tempo/internal/modules/session/adapter/out"
	sessionout "tempo/internal/modules/session/port/out"
	sessionservice "tempo/internal/modules/session/service"
	sessionusecase "tempo/internal/modules/session/usecase"
	"tempo/internal/platform/clock"
	"tempo/internal/platform/config"
	"tempo/internal/platform/id"
	"tempo/internal/platform/tx"
	uiapp "tempo/internal/ui/app"
)

type App struct {
	SessionCLI   sessioninadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler

	store sessionout.Store
}

// Close releases the storage backend. A no-op for backends that hold no
// open handle.
func (a *App) Close() error {
	if closer, ok := a.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	var store sessionout.Store
	switch cfg.Backend {
	case config.BackendSQLite:
		sqlite, err := sessionoutadapter.NewSQLiteStore(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		store = sqlite
	default:
		store = sessionoutadapter.NewFileStore(cfg.DataDir)
	}

	var notifier sessionout.Notifier
	if cfg.Notify {
		notifier = sessionoutadapter.NewBeeepNotifier()
	}

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, store, tx.NewSerialManager()),
		notifier,
	)
	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(
		clk,
		analyticsoutadapter.NewSessionSourceAdapter(sessionUC),
	))

	return &App{
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		store:        store,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.AnalyticsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
