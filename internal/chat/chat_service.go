package chat

import (
	"context"

	"github.com/google/uuid"

	"trumpet/internal/common"
	"trumpet/internal/dbmysql"
	"trumpet/internal/user"
)

type MessageResponse struct {
	*dbmysql.Message
	Sender   *dbmysql.User `json:"sender"`
	Receiver *dbmysql.User `json:"receiver"`
}

// ConversationSummary is one inbox entry: the partner, the most recent
// message exchanged with them, and how many of their messages to self are
// still unread.
type ConversationSummary struct {
	User        *dbmysql.User    `json:"user"`
	LastMessage *MessageResponse `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID, receiverID, content string) (*MessageResponse, error)
	GetConversations(ctx context.Context, userID string) ([]*ConversationSummary, error)
	GetThread(ctx context.Context, userID, partnerID string, skip, limit int) ([]*MessageResponse, error)
}

type chatService struct {
	chatRepo ChatRepository
	userRepo user.UserRepository
}

func NewChatService(chatRepo ChatRepository, userRepo user.UserRepository) ChatService {
	return &chatService{chatRepo: chatRepo, userRepo: userRepo}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*MessageResponse, error) {
	if content == "" {
		return nil, common.Invalidf("message content required")
	}
	if senderID == receiverID {
		return nil, common.Invalidf("cannot message yourself")
	}
	receiver, err := s.userRepo.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	msg := &dbmysql.Message{
		ID:         uuid.NewString(),
		Content:    content,
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	if err := s.chatRepo.Save(ctx, msg); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: msg, Sender: sender, Receiver: receiver}, nil
}

// GetConversations derives the per-partner inbox from the flat message log.
// One descending scan: the first message seen for a partner is the most
// recent one and becomes last_message, and the entry order follows first
// encounter, so the partner with the latest activity comes first. Unread
// counting looks at every scanned message addressed to self, not just the
// last one.
func (s *chatService) GetConversations(ctx context.Context, userID string) ([]*ConversationSummary, error) {
	messages, err := s.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]*ConversationSummary)
	var order []string
	for _, msg := range messages {
		partnerID := msg.SenderID
		if partnerID == userID {
			partnerID = msg.ReceiverID
		}

		entry, seen := summaries[partnerID]
		if !seen {
			entry = &ConversationSummary{LastMessage: &MessageResponse{Message: msg}}
			summaries[partnerID] = entry
			order = append(order, partnerID)
		}
		if msg.ReceiverID == userID && !msg.IsRead {
			entry.UnreadCount++
		}
	}

	partners, err := s.userRepo.GetUsersByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	self, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*ConversationSummary, 0, len(order))
	for _, partnerID := range order {
		entry := summaries[partnerID]
		entry.User = partners[partnerID]
		last := entry.LastMessage
		if last.SenderID == userID {
			last.Sender, last.Receiver = self, partners[partnerID]
		} else {
			last.Sender, last.Receiver = partners[partnerID], self
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetThread returns the exchange with partnerID in chronological order and,
// as a side effect of the read, marks the partner's unread messages to self
// as read.
func (s *chatService) GetThread(ctx context.Context, userID, partnerID string, skip, limit int) ([]*MessageResponse, error) {
	partner, err := s.userRepo.GetUserByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	self, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.FetchThread(ctx, userID, partnerID, skip, limit)
	if err != nil {
		return nil, err
	}

	// Queried newest-first for pagination; returned oldest-first.
	out := make([]*MessageResponse, len(messages))
	for i, msg := range messages {
		if msg.SenderID == partnerID {
			// The fetch marked these read; reflect that in the response.
			msg.IsRead = true
		}
		resp := &MessageResponse{Message: msg}
		if msg.SenderID == userID {
			resp.Sender, resp.Receiver = self, partner
		} else {
			resp.Sender, resp.Receiver = partner, self
		}
		out[len(messages)-1-i] = resp
	}
	return out, nil
}
