package intent

import (
	"context"
	"log"

	"github.com/rosabot/rosa/backend/internal/model/application"
	"github.com/rosabot/rosa/backend/internal/model/lex"
	"github.com/rosabot/rosa/backend/internal/service/authreq"
)

// TemplateStore loads reply templates by name.
type TemplateStore interface {
	Load(name string) (string, error)
}

// Matcher classifies an application name against the user's inventory.
type Matcher interface {
	Match(ctx context.Context, rawName, userToken string) (application.MatchResult, error)
}

// LinkIssuer issues authorized request ids.
type LinkIssuer interface {
	Issue(ctx context.Context, phone, app string, action authreq.Action) (string, error)
}

// ContactCardDeliverer sends the bot's contact card to a phone.
type ContactCardDeliverer interface {
	DeliverContactCard(ctx context.Context, phone, userToken string) error
}

// Turn is everything a handler needs about the current exchange.
type Turn struct {
	Phone     string
	UserToken string
	FirstTime bool
	Event     lex.Event
}

// Dispatcher routes a turn to the handler for its intent. It holds no
// per-turn state and is safe for concurrent use.
type Dispatcher struct {
	templates TemplateStore
	matcher   Matcher
	issuer    LinkIssuer
	delivery  ContactCardDeliverer
	links     Links
}

// NewDispatcher wires the handlers to their collaborators.
func NewDispatcher(templates TemplateStore, matcher Matcher, issuer LinkIssuer, delivery ContactCardDeliverer, links Links) *Dispatcher {
	return &Dispatcher{
		templates: templates,
		matcher:   matcher,
		issuer:    issuer,
		delivery:  delivery,
		links:     links,
	}
}

// Dispatch builds the reply for turn. An unrecognized intent is not an error:
// it yields a Failed reply with an apology.
func (d *Dispatcher) Dispatch(ctx context.Context, turn Turn) (lex.Reply, error) {
	raw := turn.Event.CurrentIntent.Name
	log.Printf("[intent] request received for token=%s, intent=%s", turn.UserToken, raw)

	name, ok := Parse(raw)
	if !ok {
		log.Printf("[intent] unhandled intent received: %s", raw)
		return lex.Close(turn.Event.SessionAttributes, lex.Failed, unknownIntentMessage), nil
	}

	switch name {
	case Hello:
		return d.hello(ctx, turn)
	case SendVcard:
		return d.sendVcard(ctx, turn)
	case Help:
		return d.help(turn)
	case StorePassword:
		return d.storePassword(ctx, turn)
	case RetrievePassword:
		return d.retrievePassword(ctx, turn)
	}
	return lex.Close(turn.Event.SessionAttributes, lex.Failed, unknownIntentMessage), nil
}
