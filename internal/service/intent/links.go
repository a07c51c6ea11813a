package intent

import (
	"net/url"

	"github.com/rosabot/rosa/backend/internal/config"
	"github.com/rosabot/rosa/backend/internal/service/authreq"
)

// Links composes the web-app URLs that redeem authorized requests.
type Links struct {
	origin string
}

// NewLinks derives the link host from the deployment configuration.
func NewLinks(cfg config.LinkConfig) Links {
	return Links{origin: cfg.Origin()}
}

// URL returns <origin>/#/<action>?arid=<arid>.
func (l Links) URL(action authreq.Action, arid string) string {
	return l.origin + "/#/" + string(action) + "?arid=" + url.QueryEscape(arid)
}
