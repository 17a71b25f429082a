package viewer

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	playersPath   = "/players"
	playersPrefix = "/players/"

	maxBodyBytes = 64 << 10
)

// Subresource 玩家路径的第二段
type Subresource int

const (
	SubresourceUnknown Subresource = iota
	SubresourceInventory
	SubresourcePosition
	SubresourceKick
	SubresourceMessage
)

// ParseSubresource 区分大小写；无法识别时返回 SubresourceUnknown
func ParseSubresource(s string) Subresource {
	switch s {
	case "inventory":
		return SubresourceInventory
	case "position":
		return SubresourcePosition
	case "kick":
		return SubresourceKick
	case "message":
		return SubresourceMessage
	default:
		return SubresourceUnknown
	}
}

func (s Subresource) String() string {
	switch s {
	case SubresourceInventory:
		return "inventory"
	case SubresourcePosition:
		return "position"
	case SubresourceKick:
		return "kick"
	case SubresourceMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Router 把 HTTP 请求映射到目录查询、投影或管理命令
type Router struct {
	dir  *Directory
	cmds *Dispatcher
	log  *zap.SugaredLogger
}

// NewRouter 创建路由；log 为 nil 时不输出日志
func NewRouter(dir *Directory, cmds *Dispatcher, log *zap.SugaredLogger) *Router {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cmds == nil {
		cmds = NewDispatcher(log)
	}
	return &Router{dir: dir, cmds: cmds, log: log}
}

// Register 在 mux 上注册 /players 与 /players/ 两个入口。
// 其他路径交由 mux 的默认行为处理。
func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc(playersPath, rt.serve(rt.listPlayers))
	mux.HandleFunc(playersPrefix, rt.serve(rt.playerResource))
}

type handlerFunc func(r *http.Request) (any, error)

// serve 统一写出结果或错误，任何错误都不会泄露到传输层
func (rt *Router) serve(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h(r)
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				rt.log.Errorw("unexpected handler error", "method", r.Method, "path", r.URL.Path, "err", err)
				apiErr = errInternal
			}
			writeJSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// listPlayers GET /players
func (rt *Router) listPlayers(_ *http.Request) (any, error) {
	players := rt.dir.ListPlayers()
	out := make([]PlayerSnapshot, 0, len(players))
	for _, p := range players {
		out = append(out, ToSnapshot(p))
	}
	return out, nil
}

// playerResource /players/{uuid}/{subresource}[/...]
func (rt *Router) playerResource(r *http.Request) (any, error) {
	id, sub, err := splitPlayerPath(r.URL.Path)
	if err != nil {
		return nil, err
	}
	p, ok := rt.dir.FindByIdentifier(id)
	if !ok {
		return nil, ErrPlayerNotFound
	}

	switch ParseSubresource(sub) {
	case SubresourceInventory:
		return ToInventoryView(p), nil
	case SubresourcePosition:
		return ToPositionView(p), nil
	case SubresourceKick:
		if r.Method != http.MethodPost {
			return nil, ErrMethodNotAllowed
		}
		var req KickRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return rt.cmds.Apply(p, req.Command()), nil
	case SubresourceMessage:
		if r.Method != http.MethodPost {
			return nil, ErrMethodNotAllowed
		}
		var req MessageRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return rt.cmds.Apply(p, req.Command()), nil
	case SubresourceUnknown:
		return nil, ErrUnknownSubresource
	default:
		return nil, ErrUnknownSubresource
	}
}

// splitPlayerPath 取 /players/ 之后的前两段；末尾的空段被丢弃，多余的段被忽略
func splitPlayerPath(path string) (id, sub string, err error) {
	parts := strings.Split(strings.TrimPrefix(path, playersPrefix), "/")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return "", "", ErrMissingSegments
	}
	return parts[0], parts[1], nil
}

// decodeBody 解析可选 JSON 请求体；空请求体视为 {}，JSON 值之后只允许空白
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidBody
	}
	var rest json.RawMessage
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return ErrInvalidBody
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
