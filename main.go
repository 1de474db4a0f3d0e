package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"lyric-player-go/artwork"
	"lyric-player-go/config"
	"lyric-player-go/logcolors"
	"lyric-player-go/lyrics"
	"lyric-player-go/player"
	"lyric-player-go/sim"
	"lyric-player-go/ui"
)

var conf = config.Get()

func secondsDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func init() {
	if conf.FeatureFlags.JSONLogs {
		log.SetFormatter(&log.JSONFormatter{})
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

func main() {
	root := &cobra.Command{
		Use:   "lyric-player",
		Short: "Synced-lyrics player for the music bot backend",
	}
	root.AddCommand(playCmd(), simulateCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func playCmd() *cobra.Command {
	var (
		baseURL string
		guildID string
		source  string
		layout  string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect to a guild's playback endpoint and render synced lyrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if guildID == "" {
				return fmt.Errorf("a guild id is required (--guild or PLAYER_GUILD_ID)")
			}
			return runPlayer(baseURL, guildID, source, ui.Layout(layout))
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", conf.Player.BaseURL, "playback backend base URL")
	cmd.Flags().StringVar(&guildID, "guild", conf.Player.GuildID, "guild/session identifier")
	cmd.Flags().StringVar(&source, "source", conf.Player.LyricsSource, "lyrics source preference (auto|providerA|providerB)")
	cmd.Flags().StringVar(&layout, "layout", string(ui.LayoutFull), "player layout (compact|full)")
	return cmd
}

// runPlayer wires one session's worth of moving parts and tears every one
// of them down on exit: the poller and the frame clock are cancellable
// tasks, and both must stop before the session is considered closed.
func runPlayer(baseURL, guildID, source string, layout ui.Layout) error {
	client := player.NewClient(baseURL)
	session := player.NewSession()

	poller := player.NewPoller(client, session, guildID, source, conf.PollInterval())
	clock := player.NewClock(session, conf.FrameInterval())

	controller := player.NewController(
		func(ctx context.Context, action player.Action) error {
			return client.Control(ctx, guildID, action)
		},
		func(ctx context.Context) { poller.PollOnce(ctx) },
		conf.Player.ControlsPerSecond,
		conf.Player.ControlsBurstLimit,
	)

	fetcher := artwork.NewFetcher(
		secondsDuration(conf.Artwork.FetchTimeoutSeconds),
		conf.Artwork.CircuitBreakerThreshold,
		secondsDuration(conf.Artwork.CircuitBreakerCooldownSecs),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	if err := clock.Start(); err != nil {
		return err
	}
	defer clock.Stop()

	defer session.Close()

	model := ui.New(session, controller, fetcher, lyrics.EasingByName(conf.Player.Easing), layout, conf.FrameInterval())
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err := program.Run()
	return err
}

func simulateCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a local guild playback simulator to develop against",
		RunE: func(cmd *cobra.Command, args []string) error {
			simulator := sim.New(sim.DefaultRegistry())
			handler := sim.Handler(simulator,
				rate.Limit(conf.Simulator.RateLimitPerSecond),
				conf.Simulator.RateLimitBurstLimit)

			log.Infof("%s Listening on port %s", logcolors.LogSimServer, port)
			return http.ListenAndServe(":"+port, handler)
		},
	}

	cmd.Flags().StringVar(&port, "port", conf.Simulator.Port, "port to listen on")
	return cmd
}
