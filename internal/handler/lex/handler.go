package lex

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	lexModel "github.com/rosabot/rosa/backend/internal/model/lex"
	"github.com/rosabot/rosa/backend/pkg/utils"
)

// TurnService 处理单轮对话事件。
type TurnService interface {
	HandleTurn(ctx context.Context, event lexModel.Event) (lexModel.Reply, error)
}

// Handler 对话平台回调的HTTP处理器
type Handler struct {
	turns    TurnService
	upgrader websocket.Upgrader
}

// New 创建对话处理器
func New(turns TurnService) *Handler {
	return &Handler{
		turns: turns,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册对话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/lex/turn", h.handleTurn)
	r.Get("/lex/ws", h.handleWebSocket)
}

// handleTurn 处理一次对话回调，失败时不返回部分回复
func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	var event lexModel.Event
	if err := utils.DecodeJSON(w, r, &event); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.turns.HandleTurn(r.Context(), event)
	if err != nil {
		log.Printf("[lex] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "turn failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}
