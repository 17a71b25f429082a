package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Routes 注册游戏服务的 HTTP 入口
func (m *RoomManager) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", m.HandleWS)
	mux.HandleFunc("/rooms", m.HandleRooms)
	mux.HandleFunc("/metrics", m.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

type roomInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Tick    int64  `json:"tick"`
}

// HandleRooms 列出所有房间及在线人数
// GET /rooms
func (m *RoomManager) HandleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rooms := m.Rooms()
	out := make([]roomInfo, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomInfo{ID: room.ID, Players: len(room.Players()), Tick: room.tickSeq.Load()})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=overworld
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = m.DefaultRoom()
	}
	room, ok := m.Room(roomID)
	if !ok {
		http.Error(w, "unknown room", http.StatusNotFound)
		return
	}
	payload := map[string]any{
		"room":    roomID,
		"tick":    room.tickSeq.Load(),
		"players": len(room.Players()),
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
