package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawnchairsociety/castaway/internal/config"
	"github.com/lawnchairsociety/castaway/internal/game"
	"github.com/lawnchairsociety/castaway/internal/journal"
	"github.com/lawnchairsociety/castaway/internal/logger"
	"github.com/lawnchairsociety/castaway/internal/namefilter"
	"github.com/lawnchairsociety/castaway/internal/quest"
	"github.com/lawnchairsociety/castaway/internal/server"
	"github.com/lawnchairsociety/castaway/internal/text"
	"github.com/lawnchairsociety/castaway/internal/tui"
	"github.com/lawnchairsociety/castaway/internal/world"
)

func main() {
	configFile := flag.String("config", "data/castaway.yaml", "Path to game config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	envFile := flag.String("env", ".env", "Path to a .env file with CASTAWAY_* overrides")
	debug := flag.Bool("debug", false, "Show debug messages from the first turn")
	seed := flag.Int64("seed", 0, "Seed for character wandering (default: from config, else random)")
	name := flag.String("name", "", "Player name (default: ask)")
	useTUI := flag.Bool("tui", false, "Play in a full-screen terminal window")
	wsAddr := flag.String("ws", "", "Serve WebSocket players on this address (e.g. :4443)")
	tcpAddr := flag.String("tcp", "", "Serve telnet-style players on this address (e.g. :4000)")
	width := flag.Int("width", 80, "Wrap console output at this many columns (0 disables)")
	flag.Parse()

	// Logger first, so config loading can warn.
	if err := logger.Initialize(loadLogConfig(*envFile, *loggingConfig)); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}
	if *debug {
		cfg.Diagnostics.Enabled = true
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	content, err := world.LoadContent(cfg.Game.WorldFile)
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}
	logger.Info("World loaded", "path", cfg.Game.WorldFile, "rooms", len(content.Rooms))

	quests := quest.NewRegistry()
	if err := quests.LoadFromYAML(cfg.Game.QuestsFile); err != nil {
		logger.Warning("Failed to load quests, quests disabled", "path", cfg.Game.QuestsFile, "error", err)
		quests = quest.NewRegistry()
	} else {
		logger.Info("Quests loaded", "count", quests.Count())
	}

	txt, err := text.Load(cfg.Game.TextFile)
	if err != nil {
		logger.Warning("Failed to load text, using built-in text", "path", cfg.Game.TextFile, "error", err)
		txt = text.Default()
	}

	var j *journal.Journal
	if cfg.Journal.Enabled {
		j, err = journal.Open(cfg.Journal.Config)
		if err != nil {
			logger.Warning("Failed to open journal, playing without it", "driver", cfg.Journal.Driver, "error", err)
			j = nil
		} else {
			defer j.Close()
			logger.Info("Journal opened", "driver", cfg.Journal.Driver)
		}
	}

	newSession := func(playerName string) (*game.Session, error) {
		return game.NewSession(content, quests, txt, game.Options{
			PlayerName:     playerName,
			Capacity:       cfg.Game.Capacity,
			Seed:           cfg.Game.Seed,
			Wander:         cfg.Game.Wander,
			Debug:          cfg.Diagnostics.Enabled,
			DiagBufferSize: cfg.Diagnostics.BufferSize,
			Journal:        j,
		})
	}

	var characterNames []string
	for _, c := range content.Characters {
		characterNames = append(characterNames, c.Name)
	}

	if *wsAddr != "" || *tcpAddr != "" {
		serve(cfg, newSession, characterNames, *wsAddr, *tcpAddr)
		return
	}

	if *useTUI {
		playerName := *name
		if playerName == "" {
			playerName = cfg.Game.PlayerName
		}
		session, err := newSession(playerName)
		if err != nil {
			log.Fatalf("Failed to start game: %v", err)
		}
		defer session.Close()
		if err := tui.Run(session); err != nil {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
		return
	}

	client := server.NewConsoleClient(os.Stdin, os.Stdout, *width)
	playerName := *name
	if playerName == "" {
		client.SetPrompt("")
		filter := namefilter.New(&cfg.NameFilter)
		filter.Reserve(characterNames...)
		playerName, err = server.AskName(client, cfg.Game.PlayerName, filter)
		if err != nil {
			return
		}
		client.SetPrompt(server.DefaultPrompt)
	}
	session, err := newSession(playerName)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	if err := server.RunSession(client, session); err != nil {
		log.Fatalf("Game stopped: %v", err)
	}
}

// loadLogConfig reads the logging config after the .env file so LOG_*
// variables set there take effect.
func loadLogConfig(envFile, path string) logger.Config {
	config.LoadEnv(envFile)
	logConfig, _ := logger.LoadConfig(path)
	return logConfig
}

// serve runs the network front ends until interrupted.
func serve(cfg *config.Config, newSession server.SessionFactory, reserved []string, wsAddr, tcpAddr string) {
	srv := server.NewServer(cfg, newSession)
	srv.ReserveNames(reserved...)

	if len(cfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(cfg.WebSocket.AllowedOrigins) == 1 && cfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", cfg.WebSocket.AllowedOrigins)
	}

	if tcpAddr != "" {
		go func() {
			if err := srv.StartTCP(tcpAddr); err != nil {
				log.Fatalf("TCP server error: %v", err)
			}
		}()
	}
	if wsAddr != "" {
		go func() {
			if err := srv.StartWebSocket(wsAddr); err != nil {
				log.Fatalf("WebSocket server error: %v", err)
			}
		}()
	}

	logger.Info("Castaway server running", "tcp", tcpAddr, "websocket", wsAddr)
	logger.Info("Press Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	srv.Shutdown()
}
