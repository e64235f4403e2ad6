package usecase

import (
	"context"
	"fmt"
	"time"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/internal/infrastructure/ratelimit"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
	"freelancehub/pkg/utils"
)

const offerValidityDays = 7

type ChatUsecase struct {
	conversationRepo    repository.ConversationRepository
	userRepo            repository.UserRepository
	notificationUsecase *NotificationUsecase
	paymentUsecase      *PaymentUsecase
	pusher              RealtimePusher
	rateLimiter         *ratelimit.RateLimiter
}

func NewChatUsecase(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	notificationUsecase *NotificationUsecase,
	paymentUsecase *PaymentUsecase,
	pusher RealtimePusher,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUsecase {
	return &ChatUsecase{
		conversationRepo:    conversationRepo,
		userRepo:            userRepo,
		notificationUsecase: notificationUsecase,
		paymentUsecase:      paymentUsecase,
		pusher:              pusher,
		rateLimiter:         rateLimiter,
	}
}

// validateParticipants enforces the two-distinct-participants invariant
// before anything touches the store.
func validateParticipants(participants []string) error {
	if len(participants) != 2 {
		return errors.BadRequest("Conversation requires exactly two participants", nil)
	}
	if participants[0] == participants[1] {
		return errors.BadRequest("Conversation participants must be distinct", nil)
	}
	return nil
}

// StartConversation returns the existing conversation between the pair or
// creates a new one.
func (u *ChatUsecase) StartConversation(ctx context.Context, userID, otherUserID string) (*entity.Conversation, error) {
	participants := []string{userID, otherUserID}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	if existing, err := u.conversationRepo.FindByParticipants(ctx, userID, otherUserID); err == nil {
		return existing, nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	conversation := &entity.Conversation{
		Participants: participants,
		LastActivity: time.Now(),
		UnreadCount:  map[string]int{userID: 0, otherUserID: 0},
	}

	if err := u.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return conversation, nil
}

type SendMessageInput struct {
	Content     string              `json:"content"`
	Type        string              `json:"type" validate:"omitempty,oneof=text file offer"`
	Attachments []string            `json:"attachments"`
	CustomOffer *entity.CustomOffer `json:"custom_offer"`
}

// SendMessage appends a message, updates the conversation's denormalized
// state and pushes the message to the receiver.
func (u *ChatUsecase) SendMessage(ctx context.Context, senderID, conversationID string, input SendMessageInput) (*entity.Message, error) {
	if allowed, wait := u.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages, retry in %s", wait.Round(time.Second)))
	}

	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	receiverID := conversation.OtherParticipant(senderID)
	if conversation.Blocked[senderID] || conversation.Blocked[receiverID] {
		return nil, errors.Forbidden("Conversation is blocked", nil)
	}

	messageType := input.Type
	if messageType == "" {
		messageType = "text"
	}

	if messageType == "offer" {
		if input.CustomOffer == nil {
			return nil, errors.BadRequest("Offer messages require a custom offer", nil)
		}
		if input.CustomOffer.Price < 5.00 {
			return nil, errors.LimitExceeded("Offer price must be at least $5")
		}
		input.CustomOffer.Status = entity.OfferStatusPending
		if input.CustomOffer.ExpiresAt.IsZero() {
			input.CustomOffer.ExpiresAt = time.Now().Add(offerValidityDays * 24 * time.Hour)
		}
	} else if input.Content == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        input.Content,
		Type:           messageType,
		Attachments:    input.Attachments,
		CustomOffer:    input.CustomOffer,
	}

	if err := u.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = message.Content
	if messageType == "offer" {
		conversation.LastMessage = fmt.Sprintf("Custom offer: %s", input.CustomOffer.Title)
	}
	conversation.LastActivity = message.CreatedAt
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = map[string]int{}
	}
	conversation.UnreadCount[receiverID]++

	if err := u.conversationRepo.Update(ctx, conversation); err != nil {
		return nil, err
	}

	if u.pusher != nil {
		if err := u.pusher.SendEventToUser(receiverID, "message", message); err != nil {
			logger.Warn("Real-time message push failed for %s: %v", receiverID, err)
		}
	}

	if _, err := u.notificationUsecase.Notify(ctx, receiverID, senderID,
		entity.NotificationNewMessage, "New message", conversation.LastMessage,
		map[string]interface{}{"conversation_id": conversationID, "message_id": message.ID}); err != nil {
		logger.Error("Failed to send message notification: %v", err)
	}

	return message, nil
}

func (u *ChatUsecase) ListConversations(ctx context.Context, userID string, pagination utils.PaginationParams) ([]*entity.Conversation, int64, error) {
	return u.conversationRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (u *ChatUsecase) GetMessages(ctx context.Context, userID, conversationID string, pagination utils.PaginationParams) ([]*entity.Message, int64, error) {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return u.conversationRepo.ListMessages(ctx, conversationID, pagination.PageSize, pagination.Offset)
}

// MarkThreadRead flags the reader's unread messages and zeroes their
// counter. The two writes hit different collections and are not atomic; a
// failure in between self-heals on the next call.
func (u *ChatUsecase) MarkThreadRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if err := u.conversationRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		return err
	}

	if conversation.UnreadCount == nil {
		conversation.UnreadCount = map[string]int{}
	}
	conversation.UnreadCount[userID] = 0

	return u.conversationRepo.Update(ctx, conversation)
}

// AcceptOffer converts a pending custom offer into an order with an open
// checkout session. Only the offer's receiver may accept.
func (u *ChatUsecase) AcceptOffer(ctx context.Context, userID, conversationID, messageID string) (*CheckoutResult, error) {
	message, err := u.conversationRepo.GetMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return nil, err
	}

	if message.CustomOffer == nil {
		return nil, errors.BadRequest("Message does not carry a custom offer", nil)
	}
	if message.ReceiverID != userID {
		return nil, errors.Forbidden("Only the offer recipient can accept it", nil)
	}
	if message.CustomOffer.Status != entity.OfferStatusPending {
		return nil, errors.Conflict("Offer is no longer pending")
	}

	if time.Now().After(message.CustomOffer.ExpiresAt) {
		message.CustomOffer.Status = entity.OfferStatusExpired
		if err := u.conversationRepo.UpdateMessage(ctx, conversationID, message); err != nil {
			logger.Error("Failed to expire offer %s: %v", messageID, err)
		}
		return nil, errors.Conflict("Offer has expired")
	}

	message.CustomOffer.Status = entity.OfferStatusAccepted
	if err := u.conversationRepo.UpdateMessage(ctx, conversationID, message); err != nil {
		return nil, err
	}

	return u.paymentUsecase.CreateCustomOrderCheckout(ctx, userID, message.SenderID, message.CustomOffer)
}

// DeclineOffer marks a pending custom offer as declined.
func (u *ChatUsecase) DeclineOffer(ctx context.Context, userID, conversationID, messageID string) error {
	message, err := u.conversationRepo.GetMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return err
	}

	if message.CustomOffer == nil {
		return errors.BadRequest("Message does not carry a custom offer", nil)
	}
	if message.ReceiverID != userID {
		return errors.Forbidden("Only the offer recipient can decline it", nil)
	}
	if message.CustomOffer.Status != entity.OfferStatusPending {
		return errors.Conflict("Offer is no longer pending")
	}

	message.CustomOffer.Status = entity.OfferStatusDeclined
	return u.conversationRepo.UpdateMessage(ctx, conversationID, message)
}

// SetArchived flips the caller's archive flag on the conversation.
func (u *ChatUsecase) SetArchived(ctx context.Context, userID, conversationID string, archived bool) error {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if conversation.Archived == nil {
		conversation.Archived = map[string]bool{}
	}
	conversation.Archived[userID] = archived

	return u.conversationRepo.Update(ctx, conversation)
}

// SetBlocked flips the caller's block flag; a blocked conversation rejects
// new messages from either side.
func (u *ChatUsecase) SetBlocked(ctx context.Context, userID, conversationID string, blocked bool) error {
	conversation, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if conversation.Blocked == nil {
		conversation.Blocked = map[string]bool{}
	}
	conversation.Blocked[userID] = blocked

	return u.conversationRepo.Update(ctx, conversation)
}
