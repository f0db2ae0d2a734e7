package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/voxarena/server/internal/config"
	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
	gonet "github.com/voxarena/server/internal/net"
	"github.com/voxarena/server/internal/scripting"
	"github.com/voxarena/server/internal/server"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             VoxArena  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       體素競技場 · Go 對戰伺服器          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m伺服器:\033[0m %s \033[90m(編號: %d)\033[0m\n\n", serverName, serverID)
}

// displayWidth counts CJK runes as two columns.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r > 0x7F {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func printSection(title string) {
	lineLen := max(46-displayWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-displayWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Config and logger
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

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 2. Game data
	printSection("資料載入")
	level, err := data.LoadLevel(cfg.Game.LevelPath)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	_, extent := level.Bounds()
	printOK(fmt.Sprintf("地圖 %s (%.0f×%.0f×%.0f)", cfg.Game.LevelPath, extent.X, extent.Y, extent.Z))
	printStat("出生點", level.SpawnCount())
	printStat("補給點", len(level.PickupSpots()))

	weapons := data.DefaultWeapons()
	if cfg.Game.WeaponsPath != "" {
		if weapons, err = data.LoadWeaponTable(cfg.Game.WeaponsPath); err != nil {
			return fmt.Errorf("load weapons: %w", err)
		}
	}
	printStat("武器", weapons.Count())
	fmt.Println()

	// 3. Damage rules
	deps := handler.Deps{Weapons: weapons}
	if cfg.Game.ScriptsDir != "" {
		printSection("腳本引擎")
		engine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		deps.Damage = engine
		printOK(fmt.Sprintf("Lua 腳本載入完成 (%s)", cfg.Game.ScriptsDir))
		fmt.Println()
	}

	// 4. Canonical world
	hub := server.NewHub(handler.NewDispatcher(deps), level, server.Options{
		SpawnDelay:     cfg.Game.SpawnDelay,
		RespawnDelay:   cfg.Game.RespawnDelay,
		PickupInterval: cfg.Game.PickupInterval,
		Seed:           cfg.Game.Seed,
	}, log)

	// 5. Network
	netOpts := gonet.Options{
		InQueueSize:  cfg.Network.InQueueSize,
		OutQueueSize: cfg.Network.OutQueueSize,
		WriteTimeout: cfg.Network.WriteTimeout,
		ReadTimeout:  cfg.Network.ReadTimeout,
	}
	if cfg.RateLimit.Enabled {
		netOpts.MessagesPerSecond = cfg.RateLimit.MessagesPerSecond
	}
	netServer := gonet.NewServer(netOpts, log)
	if err := netServer.Listen(cfg.Network.BindAddress, cfg.Network.Path); err != nil {
		return fmt.Errorf("net server: %w", err)
	}

	// 6. Game loop until SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("伺服器就緒")
	printReady(fmt.Sprintf("監聽位址 ws://%s%s", netServer.Addr().String(), cfg.Network.Path))
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	hub.Run(ctx, netServer, cfg.Network.TickRate)

	log.Info("收到關閉信號")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := netServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("關閉網路服務失敗", zap.Error(err))
	}
	log.Info("伺服器已停止")
	return nil
}
