package viewer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultAddress 仅监听本机
const DefaultAddress = "127.0.0.1:8080"

// ServerOptions HTTP 服务配置，零值字段使用默认值
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *zap.SugaredLogger
}

// Server 玩家查看 API 的 HTTP 服务
type Server struct {
	http *http.Server
	log  *zap.SugaredLogger
	opts ServerOptions
}

// NewServer 基于目录构建服务；调用 Start 之前不会监听
func NewServer(dir *Directory, opts ServerOptions) *Server {
	if dir == nil {
		panic("viewer.NewServer: directory is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	mux := http.NewServeMux()
	NewRouter(dir, NewDispatcher(opts.Logger), opts.Logger).Register(mux)

	return &Server{
		log:  opts.Logger,
		opts: opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           withRequestLog(mux, opts.Logger),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
		},
	}
}

// Handler 返回带中间件的根 handler（便于 httptest）
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start 同步绑定端口，随后在后台协程中服务。绑定失败（如端口占用）时返回错误，
// 调用方记录后可继续运行宿主。
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.log.Infof("player viewer listening on %s", ln.Addr())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("player viewer serve error", "err", err)
		}
	}()
	return nil
}

// Stop 优雅关闭，最多等待 ShutdownTimeout
func (s *Server) Stop(ctx context.Context) error {
	if s.opts.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ShutdownTimeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
