// Command arenabot connects headless players to a voxarena server. Each bot
// runs its own replica and wanders the level shooting at whoever it sees.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/voxarena/server/internal/client"
	"github.com/voxarena/server/internal/config"
	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
	gonet "github.com/voxarena/server/internal/net"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	count := flag.Int("n", 1, "number of bots")
	url := flag.String("url", "", "server websocket url (default: client.server_url)")
	frame := flag.Duration("frame", 16*time.Millisecond, "frame interval")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	defer config.StartProfile(cfg.Debug)()

	if *url == "" {
		*url = cfg.Client.ServerURL
	}
	level, err := data.LoadLevel(cfg.Game.LevelPath)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	weapons := data.DefaultWeapons()
	if cfg.Game.WeaponsPath != "" {
		if weapons, err = data.LoadWeaponTable(cfg.Game.WeaponsPath); err != nil {
			return fmt.Errorf("load weapons: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i := range *count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			botLog := log.With(zap.Int("bot", i))
			sess, err := gonet.Dial(ctx, *url, gonet.Options{}, botLog)
			if err != nil {
				botLog.Error("連線失敗", zap.String("url", *url), zap.Error(err))
				return
			}
			defer sess.Close()

			r := client.NewReplicator(sess, handler.NewDispatcher(handler.Deps{Weapons: weapons}), level,
				client.Options{MinFrameTime: cfg.Client.MinFrameTime, MaxFrameTime: cfg.Client.MaxFrameTime}, botLog)
			bot := client.NewBot(uint64(time.Now().UnixNano()) + uint64(i))
			botLog.Info("機器人上線", zap.String("session", sess.ID()))
			if err := r.Run(ctx, sess, *frame, bot.Drive); err != nil && ctx.Err() == nil {
				botLog.Warn("機器人中止", zap.Error(err))
			}
		}()
	}
	wg.Wait()
	return nil
}
