package authreq

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	authreqService "github.com/rosabot/rosa/backend/internal/service/authreq"
	"github.com/rosabot/rosa/backend/pkg/utils"
)

// Redeemer 兑换授权请求。
type Redeemer interface {
	Redeem(ctx context.Context, arid string, action authreqService.Action) (authreqService.Request, error)
}

// Registrar 把应用登记到用户的清单中。
type Registrar interface {
	Register(ctx context.Context, userToken, rawName string) (string, error)
}

// Handler 网页端兑换授权链接的HTTP处理器
type Handler struct {
	requests     Redeemer
	applications Registrar
}

// New 创建授权请求处理器
func New(requests Redeemer, applications Registrar) *Handler {
	return &Handler{
		requests:     requests,
		applications: applications,
	}
}

// RegisterRoutes 注册授权请求相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/authorized-requests/{arid}/redeem", h.handleRedeem)
}

type redeemResponse struct {
	Token       string                `json:"token"`
	Application string                `json:"application"`
	Action      authreqService.Action `json:"action"`
}

// handleRedeem 兑换一次性授权请求；set 请求会登记应用
func (h *Handler) handleRedeem(w http.ResponseWriter, r *http.Request) {
	arid := chi.URLParam(r, "arid")

	var payload struct {
		Action string `json:"action"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action := authreqService.Action(payload.Action)
	if !action.Valid() {
		utils.RespondError(w, http.StatusBadRequest, "action must be set or get")
		return
	}

	req, err := h.requests.Redeem(r.Context(), arid, action)
	if err != nil {
		status, message := redeemError(err)
		if status == http.StatusInternalServerError {
			log.Printf("[authreq] redeem failed: %v", err)
		}
		utils.RespondError(w, status, message)
		return
	}

	if req.Action == authreqService.ActionSet {
		if _, err := h.applications.Register(r.Context(), req.UserToken, req.Application); err != nil {
			log.Printf("[authreq] register application failed for token=%s: %v", req.UserToken, err)
			utils.RespondError(w, http.StatusInternalServerError, "failed to register application")
			return
		}
	}

	log.Printf("[authreq] redeemed %s request for token=%s", req.Action, req.UserToken)
	utils.RespondJSON(w, http.StatusOK, redeemResponse{
		Token:       req.UserToken,
		Application: req.Application,
		Action:      req.Action,
	})
}

func redeemError(err error) (int, string) {
	switch {
	case errors.Is(err, authreqService.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, authreqService.ErrExpired):
		return http.StatusGone, err.Error()
	case errors.Is(err, authreqService.ErrAlreadyRedeemed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, authreqService.ErrActionMismatch):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to redeem request"
	}
}
