package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/service"
	"freelancehub/pkg/errors"
)

// In-memory repository fakes mirroring the Firestore adapters' behavior:
// IDs and timestamps are assigned on create, missing documents map to
// NOT_FOUND.

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	order.UpdatedAt = time.Now()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Order, int64, error) {
	var result []*entity.Order
	for _, order := range f.orders {
		if role == "buyer" && order.BuyerID != userID {
			continue
		}
		if role == "seller" && order.SellerID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		result = append(result, order)
	}
	return result, int64(len(result)), nil
}

func (f *fakeOrderRepo) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Order, error) {
	for _, order := range f.orders {
		if order.CheckoutSessionID == sessionID {
			return order, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (f *fakeOrderRepo) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error) {
	for _, order := range f.orders {
		if order.PaymentIntentID == paymentIntentID {
			return order, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

type fakeGigRepo struct {
	gigs map[string]*entity.Gig
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: make(map[string]*entity.Gig)}
}

func (f *fakeGigRepo) Create(ctx context.Context, gig *entity.Gig) error {
	if gig.ID == "" {
		gig.ID = uuid.New().String()
	}
	now := time.Now()
	gig.CreatedAt = now
	gig.UpdatedAt = now
	f.gigs[gig.ID] = gig
	return nil
}

func (f *fakeGigRepo) GetByID(ctx context.Context, id string) (*entity.Gig, error) {
	gig, ok := f.gigs[id]
	if !ok {
		return nil, errors.NotFound("Gig", nil)
	}
	return gig, nil
}

func (f *fakeGigRepo) Update(ctx context.Context, gig *entity.Gig) error {
	if _, ok := f.gigs[gig.ID]; !ok {
		return errors.NotFound("Gig", nil)
	}
	gig.UpdatedAt = time.Now()
	f.gigs[gig.ID] = gig
	return nil
}

func (f *fakeGigRepo) Delete(ctx context.Context, id string) error {
	gig, ok := f.gigs[id]
	if !ok {
		return errors.NotFound("Gig", nil)
	}
	now := time.Now()
	gig.DeletedAt = &now
	return nil
}

func (f *fakeGigRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Gig, int64, error) {
	var result []*entity.Gig
	for _, gig := range f.gigs {
		if gig.DeletedAt != nil {
			continue
		}
		if category, ok := filter["category"]; ok && gig.Category != category {
			continue
		}
		if status, ok := filter["status"]; ok && gig.Status != status {
			continue
		}
		if sellerID, ok := filter["sellerId"]; ok && gig.SellerID != sellerID {
			continue
		}
		result = append(result, gig)
	}
	return result, int64(len(result)), nil
}

func (f *fakeGigRepo) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Gig, int64, error) {
	var result []*entity.Gig
	for _, gig := range f.gigs {
		if gig.DeletedAt != nil {
			continue
		}
		if strings.Contains(strings.ToLower(gig.Title), strings.ToLower(query)) {
			result = append(result, gig)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeGigRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Gig, int64, error) {
	return f.List(ctx, map[string]interface{}{"sellerId": sellerID}, "", limit, offset)
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

type fakeReviewRepo struct {
	reviews []*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.ID == id {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (f *fakeReviewRepo) GetByOrderAndReviewer(ctx context.Context, orderID, reviewerID string) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.OrderID == orderID && review.ReviewerID == reviewerID {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (f *fakeReviewRepo) ListByGigID(ctx context.Context, gigID string) ([]*entity.Review, error) {
	var result []*entity.Review
	for _, review := range f.reviews {
		if review.GigID == gigID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) ListByRevieweeID(ctx context.Context, revieweeID string) ([]*entity.Review, error) {
	var result []*entity.Review
	for _, review := range f.reviews {
		if review.RevieweeID == revieweeID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Review, int64, error) {
	var result []*entity.Review
	for _, review := range f.reviews {
		if gigID, ok := filter["gigId"]; ok && review.GigID != gigID {
			continue
		}
		if revieweeID, ok := filter["revieweeId"]; ok && review.RevieweeID != revieweeID {
			continue
		}
		result = append(result, review)
	}
	return result, int64(len(result)), nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	var result []*entity.Notification
	for _, n := range f.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, int64(len(result)), nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	for _, n := range f.notifications {
		if n.ID == id && n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) countByType(recipientID, notificationType string) int {
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && n.Type == notificationType {
			count++
		}
	}
	return count
}

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (f *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (f *fakeConversationRepo) FindByParticipants(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	for _, c := range f.conversations {
		if c.HasParticipant(userA) && c.HasParticipant(userB) {
			return c, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (f *fakeConversationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	var result []*entity.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			result = append(result, c)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	if _, ok := f.conversations[conversation.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.UpdatedAt = time.Now()
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	f.messages[message.ConversationID] = append(f.messages[message.ConversationID], message)
	return nil
}

func (f *fakeConversationRepo) GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	for _, m := range f.messages[conversationID] {
		if m.ID == messageID {
			return m, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (f *fakeConversationRepo) UpdateMessage(ctx context.Context, conversationID string, message *entity.Message) error {
	for i, m := range f.messages[conversationID] {
		if m.ID == message.ID {
			f.messages[conversationID][i] = message
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (f *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	messages := f.messages[conversationID]
	return messages, int64(len(messages)), nil
}

func (f *fakeConversationRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) error {
	for _, m := range f.messages[conversationID] {
		if m.ReceiverID == readerID {
			m.IsRead = true
		}
	}
	return nil
}

// fakePusher records pushes; Fail simulates an unstarted channel.
type fakePusher struct {
	events []string
	users  []string
	Fail   bool
}

func (f *fakePusher) SendEventToUser(userID, eventName string, payload interface{}) error {
	if f.Fail {
		return errors.Internal("channel not started", nil)
	}
	f.events = append(f.events, eventName)
	f.users = append(f.users, userID)
	return nil
}

// fakeGateway returns canned checkout sessions.
type fakeGateway struct {
	sessions      int
	retrievals    int
	paymentStatus string
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req service.CheckoutSessionRequest) (*service.CheckoutSession, error) {
	f.sessions++
	return &service.CheckoutSession{
		ID:  "cs_test_" + req.OrderID,
		URL: "https://checkout.example.com/cs_test_" + req.OrderID,
	}, nil
}

func (f *fakeGateway) RetrieveSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	f.retrievals++
	status := f.paymentStatus
	if status == "" {
		status = "paid"
	}
	return &service.CheckoutSession{
		ID:              sessionID,
		PaymentStatus:   status,
		PaymentIntentID: "pi_test_1",
	}, nil
}
