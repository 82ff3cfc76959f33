package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/messenger-backend/internal/domain"
	"github.com/heartmarshall/messenger-backend/internal/service/messenger"
	"github.com/heartmarshall/messenger-backend/internal/service/user"
	"github.com/heartmarshall/messenger-backend/pkg/ctxutil"
)

// DemoResult summarizes a RunDemo invocation.
type DemoResult struct {
	Users          []domain.User
	ConversationID uuid.UUID
	Participants   []uuid.UUID
	Messages       []domain.Message
	// Rejected is the error returned for the send by the removed participant.
	Rejected error
}

// RunDemo registers three users under emailDomain and plays a membership
// round through the services: U1 starts a conversation with U2, adds U3,
// removes U2, U3 says "hi" and U2 is then refused. Every email carries the
// run tag so repeated runs do not collide.
func (a *App) RunDemo(ctx context.Context, emailDomain, tag string) (DemoResult, error) {
	var res DemoResult

	for i := 1; i <= 3; i++ {
		u, err := a.Users.Register(ctx, user.RegisterInput{
			Email: fmt.Sprintf("u%d+%s@%s", i, tag, emailDomain),
		})
		if err != nil {
			return res, fmt.Errorf("register u%d: %w", i, err)
		}
		res.Users = append(res.Users, *u)
	}
	u1, u2, u3 := res.Users[0], res.Users[1], res.Users[2]

	as := func(u domain.User) context.Context { return ctxutil.WithUserID(ctx, u.ID) }

	state, err := a.Messenger.CreateConversation(as(u1), messenger.CreateConversationInput{
		ParticipantIDs: []uuid.UUID{u2.ID},
	})
	if err != nil {
		return res, fmt.Errorf("create conversation: %w", err)
	}
	res.ConversationID = state.ID

	if err := a.Messenger.AddParticipant(as(u1), messenger.MembershipInput{ConversationID: state.ID, UserID: u3.ID}); err != nil {
		return res, fmt.Errorf("add u3: %w", err)
	}
	if err := a.Messenger.RemoveParticipant(as(u1), messenger.MembershipInput{ConversationID: state.ID, UserID: u2.ID}); err != nil {
		return res, fmt.Errorf("remove u2: %w", err)
	}
	if _, err := a.Messenger.SendMessage(as(u3), messenger.SendMessageInput{ConversationID: state.ID, Content: "hi"}); err != nil {
		return res, fmt.Errorf("u3 send: %w", err)
	}

	_, res.Rejected = a.Messenger.SendMessage(as(u2), messenger.SendMessageInput{ConversationID: state.ID, Content: "hi"})
	if !errors.Is(res.Rejected, domain.ErrUnauthorized) {
		return res, fmt.Errorf("u2 send: expected unauthorized, got %v", res.Rejected)
	}

	final, err := a.Messenger.GetConversation(as(u1), state.ID)
	if err != nil {
		return res, fmt.Errorf("reload conversation: %w", err)
	}
	res.Participants = final.ParticipantIDs
	res.Messages = final.Messages

	a.Log.InfoContext(ctx, "demo completed",
		slog.String("conversation_id", state.ID.String()),
		slog.Int("participants", len(res.Participants)),
		slog.Int("messages", len(res.Messages)),
	)

	return res, nil
}
