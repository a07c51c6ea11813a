package turn

import (
	"context"
	"fmt"
	"log"

	"github.com/rosabot/rosa/backend/internal/model/lex"
	"github.com/rosabot/rosa/backend/internal/service/identity"
	"github.com/rosabot/rosa/backend/internal/service/intent"
)

// IdentityResolver maps the platform user id to a user token.
type IdentityResolver interface {
	TokenExists(ctx context.Context, phone string) (bool, error)
	TokenFor(ctx context.Context, phone string) (string, error)
}

// AnalyticsRecorder records both sides of a conversation.
type AnalyticsRecorder interface {
	RecordInbound(ctx context.Context, userToken, transcript string, platform lex.PlatformContext) error
	RecordOutbound(ctx context.Context, userToken, message string, platform lex.PlatformContext) error
}

// Dispatcher builds the reply for a resolved turn.
type Dispatcher interface {
	Dispatch(ctx context.Context, turn intent.Turn) (lex.Reply, error)
}

// Service runs one inbound event through identity, analytics and intent
// dispatch. Collaborators are called strictly in sequence.
type Service struct {
	identity   IdentityResolver
	analytics  AnalyticsRecorder
	dispatcher Dispatcher
}

// NewService wires the orchestrator.
func NewService(identity IdentityResolver, analytics AnalyticsRecorder, dispatcher Dispatcher) *Service {
	return &Service{
		identity:   identity,
		analytics:  analytics,
		dispatcher: dispatcher,
	}
}

// HandleTurn returns the reply for event. Any collaborator failure aborts the
// turn and no reply is produced.
func (s *Service) HandleTurn(ctx context.Context, event lex.Event) (lex.Reply, error) {
	phone := event.UserID
	if override, ok := identity.ApplyTestOverride(phone); ok {
		log.Printf("[turn] test session detected, using placeholder identity")
		phone = override
		event.UserID = override
	}

	exists, err := s.identity.TokenExists(ctx, phone)
	if err != nil {
		return lex.Reply{}, fmt.Errorf("check user token: %w", err)
	}

	token, err := s.identity.TokenFor(ctx, phone)
	if err != nil {
		return lex.Reply{}, fmt.Errorf("resolve user token: %w", err)
	}

	platform := event.Redacted()
	if err := s.analytics.RecordInbound(ctx, token, event.InputTranscript, platform); err != nil {
		return lex.Reply{}, fmt.Errorf("record inbound: %w", err)
	}

	reply, err := s.dispatcher.Dispatch(ctx, intent.Turn{
		Phone:     phone,
		UserToken: token,
		FirstTime: !exists,
		Event:     event,
	})
	if err != nil {
		return lex.Reply{}, fmt.Errorf("dispatch %s: %w", event.CurrentIntent.Name, err)
	}

	if err := s.analytics.RecordOutbound(ctx, token, reply.Content(), platform); err != nil {
		return lex.Reply{}, fmt.Errorf("record outbound: %w", err)
	}

	log.Printf("[turn] completed token=%s intent=%s state=%s", token, event.CurrentIntent.Name, reply.DialogAction.FulfillmentState)
	return reply, nil
}
