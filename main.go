package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/guesslink/guesslink/internal/ai"
	"github.com/guesslink/guesslink/internal/auth"
	"github.com/guesslink/guesslink/internal/cache"
	"github.com/guesslink/guesslink/internal/config"
	"github.com/guesslink/guesslink/internal/handlers"
	"github.com/guesslink/guesslink/internal/middleware"
	"github.com/guesslink/guesslink/internal/models"
	"github.com/guesslink/guesslink/internal/questions"
	"github.com/guesslink/guesslink/internal/room"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	// init guest token keys
	auth.Init()

	// static question set for classic mode
	set := questions.Default()
	if cfg.QuestionsFile != "" {
		loaded, err := questions.LoadFile(cfg.QuestionsFile)
		if err != nil {
			log.Fatalf("failed to load questions file: %v", err)
		}
		set = loaded
		log.Infof("loaded %d questions from %s", set.Len(), cfg.QuestionsFile)
	}

	// probe the provider chain once at startup
	chain := ai.NewChain(log,
		ai.NewOpenRouter(cfg.OpenRouter),
		ai.NewGateway(cfg.Gateway),
		ai.NewOllama(cfg.Ollama),
	)
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 10*time.Second)
	chain.Init(probeCtx)
	cancelProbe()

	svc := room.NewService(room.NewStore(), set, chain, log)

	// finished games go to the historian queue when Redis is configured
	if cfg.RedisAddr != "" {
		if err := cache.ConnectRedis(); err != nil {
			log.Warnf("redis unavailable, game history disabled: %v", err)
		} else {
			log.Infof("publishing finished games to redis queue %q", cfg.HistoryQueue)
			svc.OnGameEnd = func(rec models.GameRecord) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := cache.PublishGameRecord(ctx, rec); err != nil {
					log.Warnf("failed to publish game record %s: %v", rec.GameID, err)
				}
			}
		}
	}

	srv := handlers.NewServer(svc, cfg, log)
	mux := srv.Router()

	server := &http.Server{
		Handler:     middleware.LogMiddleware(log)(mux),
		ReadTimeout: time.Second * 10,
		// No WriteTimeout: it would sever long-lived WebSocket sessions.
	}

	l, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	log.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		log.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		log.Infof("terminating: %v", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
}
