package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"

	"playerviewer/config"
	"playerviewer/server"
	"playerviewer/viewer"
)

// 入口：启动竞技场游戏服务（WebSocket）与本地玩家查看 API
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "playerviewer: %+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath    string
		addr       string
		viewerAddr string
	)
	flag.StringVar(&cfgPath, "config", config.DefaultPath, "path to TOML config file")
	flag.StringVar(&addr, "addr", "", "game listen address, overrides config, e.g. :8081")
	flag.StringVar(&viewerAddr, "viewer-addr", "", "player viewer API address, overrides config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Arena.Addr = addr
	}
	if viewerAddr != "" {
		cfg.Viewer.Addr = viewerAddr
	}

	log, err := server.InitLogger(server.LogOptions{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		Stderr:     cfg.Log.Stderr,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return oops.In("logger").Wrapf(err, "init logger")
	}
	defer server.SyncLogger()

	kit := make([]server.ItemStack, 0, len(cfg.Arena.StarterKit))
	for _, k := range cfg.Arena.StarterKit {
		kit = append(kit, server.ItemStack{Item: k.Item, Count: k.Count})
	}
	rm := server.NewRoomManager(server.RoomConfig{
		Size:       cfg.Arena.Size,
		Step:       cfg.Arena.Step,
		StarterKit: kit,
	}, cfg.Arena.DefaultRoom)
	for _, id := range cfg.Arena.Rooms {
		_ = rm.GetOrCreateRoom(id)
	}

	mux := http.NewServeMux()
	rm.Routes(mux)
	// 前后端分离：将 / 映射到 web 目录的静态资源
	mux.Handle("/", http.FileServer(http.Dir("web")))
	gameSrv := &http.Server{Addr: cfg.Arena.Addr, Handler: mux}

	go func() {
		log.Infof("arena listening on %s", cfg.Arena.Addr)
		if err := gameSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// 宿主在启动时挂载一次，之后由所有请求并发读取
	hostRef := &viewer.HostRef{}
	hostRef.Attach(server.NewViewerHost(rm))
	viewerSrv := viewer.NewServer(viewer.NewDirectory(hostRef), viewer.ServerOptions{
		Addr:            cfg.Viewer.Addr,
		ReadTimeout:     cfg.Viewer.ReadTimeout,
		WriteTimeout:    cfg.Viewer.WriteTimeout,
		ShutdownTimeout: cfg.Viewer.ShutdownTimeout,
		Logger:          log.Named("viewer"),
	})
	viewerUp := true
	if err := viewerSrv.Start(); err != nil {
		// 查看 API 启动失败不影响游戏服务
		log.Errorw("player viewer failed to start", "addr", cfg.Viewer.Addr, "err", err)
		viewerUp = false
	}

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if viewerUp {
		if err := viewerSrv.Stop(ctx); err != nil {
			log.Warnf("player viewer shutdown: %v", err)
		}
	}
	hostRef.Detach()
	if err := gameSrv.Shutdown(ctx); err != nil {
		log.Warnf("arena shutdown: %v", err)
	}
	rm.Close()
	return nil
}
