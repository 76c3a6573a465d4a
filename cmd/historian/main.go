// cmd/historian/main.go is an asynchronous historian service that pops
// finished game records from a Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/guesslink/guesslink/internal/database"
	"github.com/guesslink/guesslink/internal/models"
)

// HistorianService encapsulates the Redis + DB logic for archiving games.
type HistorianService struct {
	redisClient *redis.Client
	batchSize   int
	flushDelay  time.Duration

	batchMu  sync.Mutex
	batch    []models.GameRecord
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewHistorianService constructs a HistorianService instance from environment variables or defaults.
func NewHistorianService() *HistorianService {
	batchSize := getEnvInt("HISTORIAN_BATCH_SIZE", 20)
	flushMs := getEnvInt("HISTORIAN_FLUSH_MS", 500)

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &HistorianService{
		redisClient: rdb,
		batchSize:   batchSize,
		flushDelay:  time.Duration(flushMs) * time.Millisecond,
		batch:       make([]models.GameRecord, 0, batchSize),
		ctx:         ctx,
		cancelFn:    cancel,
	}
}

// Run connects to the database and drains the queue until shutdown.
func (hs *HistorianService) Run() {
	database.ConnectDB()

	go hs.readRedisLoop()

	log.Println("guesslink-historian service started.")
	<-hs.ctx.Done()
	hs.flushBatchToDB()
	log.Println("guesslink-historian shut down.")
}

// Stop signals the service to drain and exit.
func (hs *HistorianService) Stop() {
	hs.cancelFn()
}

// readRedisLoop continuously uses BLPop to retrieve records from the Redis queue.
func (hs *HistorianService) readRedisLoop() {
	ticker := time.NewTicker(hs.flushDelay)
	defer ticker.Stop()

	queueName := getEnv("HISTORIAN_QUEUE_NAME", "guesslink_games")

	for {
		select {
		case <-hs.ctx.Done():
			return

		case <-ticker.C:
			hs.flushBatchToDB()

		default:
			// BLPop with a 3-second timeout so context cancellation is handled.
			res, err := hs.redisClient.BLPop(hs.ctx, 3*time.Second, queueName).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && hs.ctx.Err() == nil {
					log.Printf("[ERROR] BLPop: %v\n", err)
				}
				continue
			}
			if len(res) < 2 {
				continue
			}

			// res[0] is the queue name and res[1] the payload.
			var rec models.GameRecord
			if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
				log.Printf("invalid game record: %v\n", err)
				continue
			}

			hs.batchMu.Lock()
			hs.batch = append(hs.batch, rec)
			full := len(hs.batch) >= hs.batchSize
			hs.batchMu.Unlock()
			if full {
				hs.flushBatchToDB()
			}
		}
	}
}

// flushBatchToDB writes any accumulated records to PostgreSQL.
func (hs *HistorianService) flushBatchToDB() {
	hs.batchMu.Lock()
	if len(hs.batch) == 0 {
		hs.batchMu.Unlock()
		return
	}
	pending := hs.batch
	hs.batch = make([]models.GameRecord, 0, hs.batchSize)
	hs.batchMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, rec := range pending {
		if err := database.RecordGameResult(ctx, rec); err != nil {
			log.Printf("[ERROR] failed to persist game %s: %v\n", rec.GameID, err)
		}
	}
}

func main() {
	hs := NewHistorianService()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		hs.Stop()
	}()

	hs.Run()
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
