// Package app wires the remote client, controllers and audio pipeline into
// the single entry point consumed by commands and the TUI.
package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/core/audio"
	"github.com/colonyops/lawsimplify/internal/core/chat"
	"github.com/colonyops/lawsimplify/internal/core/config"
	"github.com/colonyops/lawsimplify/internal/core/logging"
	"github.com/colonyops/lawsimplify/internal/core/presenter"
	"github.com/colonyops/lawsimplify/internal/core/upload"
	"github.com/colonyops/lawsimplify/pkg/executil"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all lawsimplify operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Client *api.Client

	Upload    *upload.Controller
	Presenter *presenter.Presenter
	Chat      *chat.Controller

	Audio  *audio.Store
	Cache  *audio.Cache
	Player *audio.Player

	// SessionID identifies this run in log output.
	SessionID string

	Build BuildInfo
}

// Deps are the external dependencies of an App.
type Deps struct {
	Config   *config.Config
	Executor executil.Executor
	Logger   zerolog.Logger
	Build    BuildInfo
}

// New constructs an App from explicit dependencies. The audio directory is
// created under the configured data directory.
func New(deps Deps) (*App, error) {
	cfg := deps.Config

	client, err := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Logger:  logging.For(deps.Logger, "api"),
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	store, err := audio.NewStore(cfg.AudioDir())
	if err != nil {
		return nil, fmt.Errorf("create audio store: %w", err)
	}

	exec := deps.Executor
	if exec == nil {
		exec = &executil.RealExecutor{}
	}

	cache := audio.NewCache(store, logging.For(deps.Logger, "audio"))
	player := audio.NewPlayer(exec, cfg.Audio.Player, logging.For(deps.Logger, "player"))

	return &App{
		Config:    cfg,
		Client:    client,
		Upload:    upload.NewController(logging.For(deps.Logger, "upload")),
		Presenter: presenter.New(presenter.Options{
			Languages: cfg.LanguagePair(),
			Cache:     cache,
			Player:    player,
			Prefetch:  cfg.Audio.Prefetch,
			Logger:    logging.For(deps.Logger, "presenter"),
		}),
		Chat:      chat.NewController(logging.For(deps.Logger, "chat"), cfg.Chat.SuggestedQuestions),
		Audio:     store,
		Cache:     cache,
		Player:    player,
		SessionID: uuid.NewString(),
		Build:     deps.Build,
	}, nil
}

// Close stops playback and releases every cached audio file. The audio
// directory is removed once empty; other running instances may still own
// files in it.
func (a *App) Close() {
	a.Presenter.Close()
	_ = os.Remove(a.Audio.Dir())
}
