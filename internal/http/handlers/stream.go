package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/steveyiyo/speechcoach-backend/pkg/types"
	"github.com/steveyiyo/speechcoach-backend/pkg/ws"
)

const (
	StageValidating = "validating"
	StageAnalyzing  = "analyzing"
)

// StreamHandler runs the analyze pipeline over a WebSocket so the client can
// show progress: hello, stage events, then one result or error event.
type StreamHandler struct {
	Hub         *ws.Hub
	Analyzer    Analyzer
	Configured  bool
	ReadLimit   int64
	ReadTimeout time.Duration // wait for the request message after hello
	Upgrader    websocket.Upgrader
}

const defaultStreamReadTimeout = 60 * time.Second

func NewStreamHandler(h *ws.Hub, a Analyzer, configured bool, readLimit int64, readTimeout time.Duration) *StreamHandler {
	if readTimeout <= 0 {
		readTimeout = defaultStreamReadTimeout
	}
	return &StreamHandler{
		Hub:         h,
		Analyzer:    a,
		Configured:  configured,
		ReadLimit:   readLimit,
		ReadTimeout: readTimeout,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	if !h.Configured {
		c.JSON(http.StatusInternalServerError, errNotConfigured)
		return
	}
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	id := "stream_" + uuid.NewString()
	h.Hub.Add(id, conn)
	defer func() {
		h.Hub.Remove(id)
		conn.Close()
	}()

	conn.SetReadLimit(h.ReadLimit)
	if err := send(conn, types.StreamEvent{Type: "hello", ID: id}); err != nil {
		return
	}
	conn.SetReadDeadline(time.Now().Add(h.ReadTimeout))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[stream] %s read: %v", id, err)
		return
	}
	_ = send(conn, types.StreamEvent{Type: "stage", Stage: StageValidating})

	var req types.AnalyzeReq
	if err := json.Unmarshal(msg, &req); err != nil {
		sendError(conn, http.StatusBadRequest, types.ErrorResp{Error: "Invalid JSON body", Details: err.Error()})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		status, resp := bindError(err)
		sendError(conn, status, resp)
		return
	}

	_ = send(conn, types.StreamEvent{Type: "stage", Stage: StageAnalyzing})
	log.Printf("[stream] %s analyzing: mimeType=%q videoData=%d bytes", id, req.MimeType, len(req.VideoData))
	res, err := h.Analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		status, resp := errorResponse(err)
		log.Printf("[stream] %s failed with %d: %v", id, status, err)
		sendError(conn, status, resp)
		return
	}
	if err := send(conn, types.StreamEvent{Type: "result", Result: res}); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

func send(conn *websocket.Conn, ev types.StreamEvent) error {
	ev.TS = time.Now().UnixMilli()
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteJSON(ev)
}

func sendError(conn *websocket.Conn, status int, resp types.ErrorResp) {
	_ = send(conn, types.StreamEvent{Type: "error", Status: status, Error: resp.Error, Details: resp.Details})
}
