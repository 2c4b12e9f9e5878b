package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/palemoky/chess-arena/internal/archive"
	"github.com/palemoky/chess-arena/internal/client"
	"github.com/palemoky/chess-arena/internal/config"
	"github.com/palemoky/chess-arena/internal/logger"
	"github.com/palemoky/chess-arena/internal/sound"
	"github.com/palemoky/chess-arena/internal/transport"
	"github.com/palemoky/chess-arena/internal/ui"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	serverAddr := flag.String("server", "", "服务器地址，覆盖配置文件")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *serverAddr != "" {
		cfg.Server.Addr = *serverAddr
	}

	if err := logger.Init(logger.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level}); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	opts := []client.Option{client.WithLogger(logger.L().Named("client"))}

	if store := openArchive(cfg); store != nil {
		opts = append(opts, client.WithArchive(store))
	}

	sm := sound.NewSoundManager(cfg.Sound.Dir)
	if cfg.Sound.Enabled {
		go func() {
			if err := sm.Init(); err != nil {
				logger.LogError("初始化音效失败: %v", err)
			}
		}()
	}
	defer sm.Close()
	opts = append(opts, client.WithSound(sm))

	t := transport.NewClient(cfg.ServerURL(),
		transport.WithHandshakeTimeout(cfg.Server.HandshakeTimeoutDuration()),
		transport.WithLogger(logger.L().Named("transport")),
	)
	c := client.New(t, opts...)
	defer c.Close()

	model := ui.NewModel(c, ui.Options{
		FlipForBlack:  cfg.UI.FlipForBlack,
		UnicodePieces: cfg.UI.UnicodePieces,
		RecentLimit:   cfg.Archive.RecentLimit,
	})
	defer model.Close()

	logger.L().Info("client starting", zap.String("server", cfg.ServerURL()), zap.String("log", logger.GetLogPath()))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.LogError("启动客户端时出错: %v", err)
		fmt.Printf("启动客户端时出错: %v\n", err)
	}
}

// openArchive connects to Redis when archiving is enabled. A failed ping
// disables archiving instead of stopping the client.
func openArchive(cfg *config.Config) archive.Store {
	if !cfg.Archive.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Archive.RedisAddr,
		Password: cfg.Archive.Password,
		DB:       cfg.Archive.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.L().Warn("archive disabled: redis unreachable", zap.String("addr", cfg.Archive.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	return archive.NewRedisStore(rdb,
		archive.WithTTL(cfg.Archive.TTL()),
		archive.WithRecentLimit(cfg.Archive.RecentLimit),
	)
}
