package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/service"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"github.com/msto63/monkey/pkg/core/logging"
)

const readTimeout = 120 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tooling, any origin
	},
}

// WSMessage is a client request
type WSMessage struct {
	Type    string          `json:"type"` // "ping", "tokenize", "parse"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSSourcePayload carries the source of a tokenize or parse request
type WSSourcePayload struct {
	Source string `json:"source"`
}

// WSResponse is a server reply
type WSResponse struct {
	Type      string      `json:"type"` // "pong", "tokens", "program", "error"
	RequestID string      `json:"request_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
}

// WSErrorPayload describes a failed request
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler serves tokenize and parse requests over WebSocket
type WebSocketHandler struct {
	service      *service.Service
	logger       *logging.Logger
	writeTimeout time.Duration
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service, writeTimeout time.Duration, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("monkey-websocket")
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &WebSocketHandler{
		service:      svc,
		logger:       logger,
		writeTimeout: writeTimeout,
	}
}

// ServeHTTP upgrades the connection and serves it until the client leaves
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Debug("WebSocket connection closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		requestID := uuid.New().String()
		reqCtx := coregrpc.WithRequestID(ctx, requestID)

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong", RequestID: requestID})

		case "tokenize":
			source, ok := h.source(conn, requestID, msg)
			if !ok {
				continue
			}
			result, err := h.service.Tokenize(reqCtx, source)
			if err != nil {
				h.sendFailure(conn, requestID, err)
				continue
			}
			h.sendResponse(conn, WSResponse{Type: "tokens", RequestID: requestID, Payload: result})

		case "parse":
			source, ok := h.source(conn, requestID, msg)
			if !ok {
				continue
			}
			result, err := h.service.Parse(reqCtx, source)
			if err != nil {
				h.sendFailure(conn, requestID, err)
				continue
			}
			h.sendResponse(conn, WSResponse{Type: "program", RequestID: requestID, Payload: result})

		default:
			h.sendError(conn, requestID, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) source(conn *websocket.Conn, requestID string, msg WSMessage) (string, bool) {
	var payload WSSourcePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendError(conn, requestID, "invalid_payload", "Invalid "+msg.Type+" payload")
		return "", false
	}
	return payload.Source, true
}

func (h *WebSocketHandler) sendResponse(conn *websocket.Conn, resp WSResponse) {
	_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

func (h *WebSocketHandler) sendFailure(conn *websocket.Conn, requestID string, err error) {
	h.sendError(conn, requestID, string(mdwerror.GetCode(err)), err.Error())
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, requestID, code, message string) {
	h.sendResponse(conn, WSResponse{
		Type:      "error",
		RequestID: requestID,
		Payload:   WSErrorPayload{Code: code, Message: message},
	})
}
