package server

import (
	"context"
	"net/http"

	"platformer/config"
)

// Server 组合房间与 HTTP 入口
type Server struct {
	room      *Room
	limiter   *ipLimiter
	publicURL string
}

// New 根据配置创建服务端，房间尚未开始 Tick
func New(cfg config.Server) *Server {
	return &Server{
		room:      NewRoom(cfg.MaxClients),
		limiter:   newIPLimiter(cfg.JoinRate, cfg.JoinBurst),
		publicURL: cfg.PublicURL,
	}
}

func (s *Server) Room() *Room { return s.room }

// Run 推进房间直到 ctx 取消
func (s *Server) Run(ctx context.Context) error {
	return s.room.Run(ctx)
}

// Handler 返回所有 HTTP 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	// 管理与监控接口
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/admin/players", s.handleAdminPlayers)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}
