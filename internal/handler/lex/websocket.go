package lex

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	lexModel "github.com/rosabot/rosa/backend/internal/model/lex"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

type errorFrame struct {
	Error string `json:"error"`
}

// handleWebSocket 每个文本帧是一个对话事件，依次回复
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[lex] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go pingLoop(ctx, conn)

	for {
		var event lexModel.Event
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[lex] websocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		reply, err := h.turns.HandleTurn(ctx, event)
		if err != nil {
			log.Printf("[lex] websocket turn failed: %v", err)
			if err := conn.WriteJSON(errorFrame{Error: "turn failed"}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("[lex] websocket write failed: %v", err)
			return
		}
	}
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
