package intent

import (
	"context"
	"fmt"

	"github.com/rosabot/rosa/backend/internal/model/application"
	"github.com/rosabot/rosa/backend/internal/model/lex"
	"github.com/rosabot/rosa/backend/internal/service/authreq"
	"github.com/rosabot/rosa/backend/internal/service/templates"
)

// hello greets the user. First-time users also get the contact card.
func (d *Dispatcher) hello(ctx context.Context, turn Turn) (lex.Reply, error) {
	name := tmplHello
	if turn.FirstTime {
		name = tmplHelloFirstTime
	}

	msg, err := d.templates.Load(name)
	if err != nil {
		return lex.Reply{}, err
	}

	if turn.FirstTime {
		if err := d.delivery.DeliverContactCard(ctx, turn.Phone, turn.UserToken); err != nil {
			return lex.Reply{}, err
		}
	}

	return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
}

func (d *Dispatcher) sendVcard(ctx context.Context, turn Turn) (lex.Reply, error) {
	if err := d.delivery.DeliverContactCard(ctx, turn.Phone, turn.UserToken); err != nil {
		return lex.Reply{}, err
	}

	msg, err := d.templates.Load(tmplVcard)
	if err != nil {
		return lex.Reply{}, err
	}
	return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
}

func (d *Dispatcher) help(turn Turn) (lex.Reply, error) {
	msg, err := d.templates.Load(tmplHelp)
	if err != nil {
		return lex.Reply{}, err
	}
	return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
}

func (d *Dispatcher) storePassword(ctx context.Context, turn Turn) (lex.Reply, error) {
	rawApplication := turn.Event.Slot(applicationSlot)

	arid, err := d.issuer.Issue(ctx, turn.Phone, rawApplication, authreq.ActionSet)
	if err != nil {
		return lex.Reply{}, err
	}

	msg, err := d.render(tmplStore, map[string]string{
		"rawApplication": rawApplication,
		"url":            d.links.URL(authreq.ActionSet, arid),
	})
	if err != nil {
		return lex.Reply{}, err
	}
	return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
}

func (d *Dispatcher) retrievePassword(ctx context.Context, turn Turn) (lex.Reply, error) {
	rawApplication := turn.Event.Slot(applicationSlot)

	found, err := d.matcher.Match(ctx, rawApplication, turn.UserToken)
	if err != nil {
		return lex.Reply{}, err
	}

	var (
		tmpl       string
		normalized string
	)
	switch m := found.(type) {
	case application.NotFound:
		msg, err := d.render(tmplRetrieveNotFound, map[string]string{"rawApplication": rawApplication})
		if err != nil {
			return lex.Reply{}, err
		}
		return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
	case application.ExactFound:
		tmpl, normalized = tmplRetrieve, m.Name
	case application.SimilarFound:
		tmpl, normalized = tmplRetrieveSimilar, m.Name
	default:
		return lex.Reply{}, fmt.Errorf("unexpected match result %T", found)
	}

	// normalized is already canonical; the issuer's own normalization leaves it unchanged.
	arid, err := d.issuer.Issue(ctx, turn.Phone, normalized, authreq.ActionGet)
	if err != nil {
		return lex.Reply{}, err
	}

	msg, err := d.render(tmpl, map[string]string{
		"rawApplication": rawApplication,
		"url":            d.links.URL(authreq.ActionGet, arid),
	})
	if err != nil {
		return lex.Reply{}, err
	}
	return lex.Close(turn.Event.SessionAttributes, lex.Fulfilled, msg), nil
}

func (d *Dispatcher) render(name string, view map[string]string) (string, error) {
	text, err := d.templates.Load(name)
	if err != nil {
		return "", err
	}
	return templates.Render(text, view)
}
