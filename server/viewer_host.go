package server

import "playerviewer/viewer"

// ViewerHost 把 RoomManager 适配为 viewer.Host
type ViewerHost struct {
	rooms *RoomManager
}

// NewViewerHost 创建适配器
func NewViewerHost(rooms *RoomManager) *ViewerHost {
	return &ViewerHost{rooms: rooms}
}

// ConnectedPlayers 实现 viewer.Host
func (h *ViewerHost) ConnectedPlayers() []viewer.PlayerHandle {
	players := h.rooms.ConnectedPlayers()
	out := make([]viewer.PlayerHandle, 0, len(players))
	for _, p := range players {
		out = append(out, viewerPlayer{p: p})
	}
	return out
}

// viewerPlayer 每次调用都读取玩家的实时状态
type viewerPlayer struct {
	p *Player
}

func (v viewerPlayer) Username() string          { return v.p.Name() }
func (v viewerPlayer) UUID() string              { return v.p.UUID().String() }
func (v viewerPlayer) BlockPos() viewer.BlockPos { return viewer.BlockPos(v.p.BlockPos()) }
func (v viewerPlayer) Dimension() string         { return v.p.Room().ID }
func (v viewerPlayer) Disconnect(reason string)  { v.p.Disconnect(reason) }
func (v viewerPlayer) SendMessage(text string)   { v.p.SendMessage(text) }

func (v viewerPlayer) Inventory() []viewer.Stack {
	inv := v.p.Inventory()
	out := make([]viewer.Stack, len(inv))
	for i, s := range inv {
		out[i] = viewer.Stack{Item: s.Item, Count: s.Count}
	}
	return out
}
