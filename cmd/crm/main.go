package main

import (
	"context"
	"crm/internal/auth"
	"crm/internal/cli"
	"crm/internal/config"
	"crm/internal/model"
	"crm/internal/prompt"
	"crm/internal/queue"
	"crm/internal/service"
	"crm/internal/storage"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 初始化配置
	config.LoadDotEnv()
	cfg, err := config.ParseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	config.ConfigureLogging(cfg)

	ctx := context.Background()
	if cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CommandTimeout)
		defer cancel()
	}

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		fmt.Fprintf(os.Stderr, "Error: database unavailable: %v\n", err)
		return 1
	}

	tokens, err := auth.NewManager(cfg.SecretKey, cfg.JWTIssuer, auth.SessionTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	store, closeStore, err := newTokenStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise session store")
		fmt.Fprintf(os.Stderr, "Error: session store unavailable: %v\n", err)
		return 1
	}
	defer closeStore()

	svc, err := service.New(service.Options{
		Repo:      repo,
		Publisher: newPublisher(cfg),
		Archive:   lazyArchive(cfg),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	prompter := prompt.New(os.Stdin, os.Stdout)
	defer prompter.Close()

	app := cli.NewApp(cli.Options{
		Service:  svc,
		Session:  service.NewSession(store, tokens, repo),
		Prompter: prompter,
		Out:      os.Stdout,
		HelpOut:  os.Stderr,
		Version:  version,
	})
	return app.Run(ctx, args)
}

func newTokenStore(ctx context.Context, cfg config.Config) (auth.TokenStore, func(), error) {
	if strings.EqualFold(strings.TrimSpace(cfg.SessionStore), config.SessionStoreRedis) {
		client, err := config.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := auth.NewRedisTokenStore(client, cfg.RedisSessionKey, auth.SessionTTL)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return store, func() { closeRedis(client) }, nil
	}
	return auth.NewFileTokenStore(cfg.SessionFile), func() {}, nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logrus.WithError(err).Debug("failed to close redis client")
	}
}

func newPublisher(cfg config.Config) queue.Publisher {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return queue.NopPublisher{}
	}
	publisher, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logrus.WithError(err).Warn("domain events disabled")
		return queue.NopPublisher{}
	}
	return publisher
}

// lazyArchive defers the storage client until an export runs.
func lazyArchive(cfg config.Config) service.ArchiveFactory {
	var (
		once    sync.Once
		archive storage.Archive
		err     error
	)
	return func() (storage.Archive, error) {
		once.Do(func() {
			archive, err = storage.NewArchive(cfg)
		})
		return archive, err
	}
}
