package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authreqHandler "github.com/rosabot/rosa/backend/internal/handler/authreq"
	lexHandler "github.com/rosabot/rosa/backend/internal/handler/lex"
	middlewarePkg "github.com/rosabot/rosa/backend/internal/middleware"
	"github.com/rosabot/rosa/backend/pkg/utils"
)

// Services 路由依赖的核心服务。
type Services struct {
	Turns        lexHandler.TurnService
	Requests     authreqHandler.Redeemer
	Applications authreqHandler.Registrar
	// WebOrigin 是网页端的源，例如 https://app.rosa.bot
	WebOrigin string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(svc.WebOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		// 对话平台回调
		lexHandler.New(svc.Turns).RegisterRoutes(api)

		// 网页端兑换授权链接
		authreqHandler.New(svc.Requests, svc.Applications).RegisterRoutes(api)
	})

	return r
}
