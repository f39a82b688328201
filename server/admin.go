package server

import (
	"encoding/json"
	"net/http"
)

// handleMetrics 输出房间的运行指标
// GET /metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"tick":    s.room.tickSeq.Load(),
		"clients": s.room.NumClients(),
		"metrics": s.room.metrics.Snapshot(),
	}
	writeJSON(w, payload)
}

// handleAdminPlayers 返回最近一次广播的玩家快照（只读；物理常量不允许热更新）
// GET /admin/players
func (s *Server) handleAdminPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.room.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true, "public_url": s.publicURL})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
