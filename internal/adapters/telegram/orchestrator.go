package telegram

import (
	"ESBot/internal/adapters/catapi"
	"ESBot/internal/adapters/filestore"
	"ESBot/internal/adapters/httpclient"
	"ESBot/internal/adapters/memory"
	"ESBot/internal/adapters/metrics"
	"ESBot/internal/adapters/workerpool"
	"ESBot/internal/bot"
	"ESBot/internal/bot/messages"
	"ESBot/internal/shared/config"
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Orchestrator wires the bot together and runs it until shutdown.
type Orchestrator struct {
	cfg        *config.Config
	baseLogger *zerolog.Logger
	wg         sync.WaitGroup
}

// NewOrchestrator creates a new bot orchestrator.
func NewOrchestrator(cfg *config.Config, baseLogger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		baseLogger: baseLogger,
	}
}

// Start builds every component, serves updates until ctx is cancelled and
// then drains the worker pools.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := o.baseLogger.With().Str("bot", "esbot").Logger()

	// Stops the metrics server too when the bot server exits on its own.
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// 1. Create API
	api, err := tgbotapi.NewBotAPI(o.cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("could not connect to telegram: %w", err)
	}
	api.Debug = o.cfg.App.IsDev()
	log.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

	// 2. Create Client (Adapter) and the reply path
	client := NewClient(api, &log)
	sender := bot.NewReplySender(client, &log)

	msgs, err := messages.NewStore(o.cfg.Messages)
	if err != nil {
		return err
	}

	// 3. Outbound HTTP and storage
	catHTTP := httpclient.New("cat_api", o.cfg.CatAPI.Timeout, o.cfg.HTTP, &log)
	filesHTTP := httpclient.New("telegram_files", o.cfg.Roster.DownloadTimeout, o.cfg.HTTP, &log)

	roster, err := filestore.NewRosterStore(afero.NewOsFs(), o.cfg.Roster.ImagePath, &log)
	if err != nil {
		return err
	}

	// 4. Worker pools
	failureText := msgs.Lookup(messages.DefaultError)
	catPool := workerpool.New(workerpool.Options{
		Name:        "cat",
		Workers:     o.cfg.Workers.Cat.Size,
		QueueSize:   o.cfg.Workers.Cat.QueueSize,
		FailureText: failureText,
	}, sender, &log)
	rosterPool := workerpool.New(workerpool.Options{
		Name:        "roster",
		Workers:     o.cfg.Workers.Roster.Size,
		QueueSize:   o.cfg.Workers.Roster.QueueSize,
		FailureText: failureText,
	}, sender, &log)

	// 5. Create Dispatcher and Router
	dispatcher := bot.NewDispatcher(bot.Deps{
		Bot:         client,
		Sender:      sender,
		Messages:    msgs,
		State:       memory.NewConversationState(),
		Images:      catapi.NewClient(catHTTP, o.cfg.CatAPI.URL, &log),
		Downloader:  httpclient.NewDownloader(filesHTTP, &log),
		Roster:      roster,
		CatTasks:    catPool,
		RosterTasks: rosterPool,
	}, &log)
	router := NewRouter(dispatcher, &log)

	// 6. Set Menu
	if err := client.SetMenuCommands(ctx, bot.MenuCommands()); err != nil {
		log.Warn().Err(err).Msg("Could not register bot commands (continuing anyway)")
	}

	// 7. Metrics
	if o.cfg.Metrics.Port > 0 {
		metricsServer := metrics.NewServer(o.cfg.Metrics.Port, &log)
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			if err := metricsServer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	// 8. Create and Start Server (blocks until ctx is done)
	server := NewBotServer(api, router, &o.cfg.Bot.Connection, &log)
	serveErr := server.Start(ctx)
	stop()

	// 9. Drain pools
	o.shutdownPools(&log, catPool, rosterPool)
	o.wg.Wait()

	return serveErr
}

func (o *Orchestrator) shutdownPools(log *zerolog.Logger, pools ...*workerpool.Pool) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), o.cfg.Workers.ShutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, pool := range pools {
		wg.Add(1)
		go func(p *workerpool.Pool) {
			defer wg.Done()
			if err := p.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Worker pool did not drain in time")
			}
		}(pool)
	}
	wg.Wait()
}
