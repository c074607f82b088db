package services

import (
	"context"
	"time"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
	"blogupBack/internal/notify"
)

// Стабы-хранилища в памяти для сценарных тестов сервисов.

type stubListingStore struct {
	listings   map[int]models.Listing
	increments []int
	incErr     error
}

func (s *stubListingStore) GetListingByID(_ context.Context, id int) (models.Listing, error) {
	l, ok := s.listings[id]
	if !ok {
		return models.Listing{}, models.ErrListingNotFound
	}
	return l, nil
}

func (s *stubListingStore) IncrementResponsesCount(_ context.Context, id int) error {
	if s.incErr != nil {
		return s.incErr
	}
	s.increments = append(s.increments, id)
	return nil
}

type stubResponseStore struct {
	responses map[int]models.Response
	nextID    int
}

func newStubResponseStore() *stubResponseStore {
	return &stubResponseStore{responses: make(map[int]models.Response), nextID: 1}
}

func (s *stubResponseStore) CreateResponse(_ context.Context, resp models.Response) (int, error) {
	id := s.nextID
	s.nextID++
	resp.ID = id
	s.responses[id] = resp
	return id, nil
}

func (s *stubResponseStore) GetResponseByID(_ context.Context, id int) (models.Response, error) {
	r, ok := s.responses[id]
	if !ok {
		return models.Response{}, models.ErrResponseNotFound
	}
	return r, nil
}

func (s *stubResponseStore) transition(id int, from, to string, mutate func(*models.Response)) error {
	r, ok := s.responses[id]
	if !ok {
		return models.ErrResponseNotFound
	}
	if r.Status != from {
		return models.ErrNotPending
	}
	r.Status = to
	if mutate != nil {
		mutate(&r)
	}
	s.responses[id] = r
	return nil
}

func (s *stubResponseStore) MarkAccepted(_ context.Context, id int, at time.Time) error {
	return s.transition(id, fsm.StatusPending, fsm.StatusAccepted, func(r *models.Response) {
		r.AcceptedAt = &at
	})
}

func (s *stubResponseStore) MarkRejected(_ context.Context, id int, reason string, at time.Time) error {
	return s.transition(id, fsm.StatusPending, fsm.StatusRejected, func(r *models.Response) {
		r.RejectionReason = &reason
		r.RejectedAt = &at
	})
}

func (s *stubResponseStore) MarkWithdrawn(_ context.Context, id int) error {
	return s.transition(id, fsm.StatusPending, fsm.StatusWithdrawn, nil)
}

func (s *stubResponseStore) ListByListingID(_ context.Context, listingID int) ([]models.Response, error) {
	var out []models.Response
	for _, r := range s.responses {
		if r.ListingID != nil && *r.ListingID == listingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResponseStore) ListByBloggerID(_ context.Context, bloggerID int) ([]models.Response, error) {
	var out []models.Response
	for _, r := range s.responses {
		if r.BloggerID == bloggerID && r.OfferID == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResponseStore) ListByAdvertiserID(_ context.Context, advertiserID int) ([]models.Response, error) {
	var out []models.Response
	for _, r := range s.responses {
		if r.AdvertiserID == advertiserID && r.OfferID == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubOfferStore struct {
	offers    map[int]models.Offer
	nextID    int
	responses *stubResponseStore // тред, создаваемый принятием оффера
	acceptErr error
}

func newStubOfferStore(responses *stubResponseStore) *stubOfferStore {
	return &stubOfferStore{offers: make(map[int]models.Offer), nextID: 1, responses: responses}
}

func (s *stubOfferStore) CreateOffer(_ context.Context, offer models.Offer) (int, error) {
	id := s.nextID
	s.nextID++
	offer.ID = id
	s.offers[id] = offer
	return id, nil
}

func (s *stubOfferStore) GetOfferByID(_ context.Context, id int) (models.Offer, error) {
	o, ok := s.offers[id]
	if !ok {
		return models.Offer{}, models.ErrOfferNotFound
	}
	return o, nil
}

func (s *stubOfferStore) HasPendingOffer(_ context.Context, advertiserID, bloggerID int) (bool, error) {
	for _, o := range s.offers {
		if o.AdvertiserID == advertiserID && o.BloggerID == bloggerID && o.Status == fsm.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

// Accept имитирует транзакцию: при ошибке ни оффер, ни тред не меняются.
func (s *stubOfferStore) Accept(_ context.Context, offer models.Offer, at time.Time) (int, error) {
	o, ok := s.offers[offer.ID]
	if !ok {
		return 0, models.ErrOfferNotFound
	}
	if o.Status != fsm.StatusPending {
		return 0, models.ErrNotPending
	}
	if s.acceptErr != nil {
		return 0, s.acceptErr
	}

	o.Status = fsm.StatusAccepted
	o.AcceptedAt = &at
	s.offers[offer.ID] = o

	id := s.responses.nextID
	s.responses.nextID++
	offerID := offer.ID
	s.responses.responses[id] = models.Response{
		ID:           id,
		OfferID:      &offerID,
		AdvertiserID: offer.AdvertiserID,
		BloggerID:    offer.BloggerID,
		Status:       fsm.StatusAccepted,
		AcceptedAt:   &at,
		CreatedAt:    at,
	}
	return id, nil
}

func (s *stubOfferStore) MarkRejected(_ context.Context, id int, reason *string, at time.Time) error {
	o, ok := s.offers[id]
	if !ok {
		return models.ErrOfferNotFound
	}
	if o.Status != fsm.StatusPending {
		return models.ErrNotPending
	}
	o.Status = fsm.StatusRejected
	o.RejectionReason = reason
	o.RejectedAt = &at
	s.offers[id] = o
	return nil
}

func (s *stubOfferStore) ListByUserID(_ context.Context, userID int) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range s.offers {
		if o.AdvertiserID == userID || o.BloggerID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubMessageStore struct {
	messages map[int]models.Message
	nextID   int
}

func newStubMessageStore() *stubMessageStore {
	return &stubMessageStore{messages: make(map[int]models.Message), nextID: 1}
}

func (s *stubMessageStore) CreateMessage(_ context.Context, message models.Message) (int, error) {
	id := s.nextID
	s.nextID++
	message.ID = id
	s.messages[id] = message
	return id, nil
}

func (s *stubMessageStore) GetMessageByID(_ context.Context, id int) (models.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return models.Message{}, models.ErrMessageNotFound
	}
	return m, nil
}

func (s *stubMessageStore) ListByResponseID(_ context.Context, responseID, page, limit int) ([]models.Message, int, error) {
	var all []models.Message
	for _, m := range s.messages {
		if m.ResponseID == responseID {
			all = append(all, m)
		}
	}
	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []models.Message{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *stubMessageStore) MarkRead(_ context.Context, id int, at time.Time) error {
	m, ok := s.messages[id]
	if !ok {
		return models.ErrMessageNotFound
	}
	if !m.IsRead {
		m.IsRead = true
		m.ReadAt = &at
		s.messages[id] = m
	}
	return nil
}

func (s *stubMessageStore) UnreadCountForUser(_ context.Context, userID int) (int, error) {
	count := 0
	for _, m := range s.messages {
		if !m.IsRead && m.SenderID != userID {
			count++
		}
	}
	return count, nil
}

type stubThreadStore struct {
	threads map[int]models.ThreadParticipants
}

func (s *stubThreadStore) GetThreadParticipants(_ context.Context, responseID int) (models.ThreadParticipants, error) {
	p, ok := s.threads[responseID]
	if !ok {
		return models.ThreadParticipants{}, models.ErrResponseNotFound
	}
	return p, nil
}

type stubChatStore struct {
	chats []models.ChatSummary
}

func (s *stubChatStore) ListChatsByUserID(_ context.Context, _ int) ([]models.ChatSummary, error) {
	return s.chats, nil
}

type stubUserStore struct {
	users map[int]models.User
}

func (s *stubUserStore) GetUserByID(_ context.Context, id int) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

type stubNotifier struct {
	events []notify.Event
}

func (s *stubNotifier) Enqueue(ev notify.Event) {
	s.events = append(s.events, ev)
}

func (s *stubNotifier) last() notify.Event {
	if len(s.events) == 0 {
		return notify.Event{}
	}
	return s.events[len(s.events)-1]
}

type stubBroadcaster struct {
	responseIDs []int
	messages    []models.Message
}

func (s *stubBroadcaster) BroadcastMessage(responseID int, msg models.Message) {
	s.responseIDs = append(s.responseIDs, responseID)
	s.messages = append(s.messages, msg)
}

type stubUnreadCache struct {
	values      map[int]int
	invalidated []int
}

func newStubUnreadCache() *stubUnreadCache {
	return &stubUnreadCache{values: make(map[int]int)}
}

func (s *stubUnreadCache) Get(_ context.Context, userID int) (int, bool) {
	v, ok := s.values[userID]
	return v, ok
}

func (s *stubUnreadCache) Set(_ context.Context, userID, count int) {
	s.values[userID] = count
}

func (s *stubUnreadCache) Invalidate(_ context.Context, userID int) {
	delete(s.values, userID)
	s.invalidated = append(s.invalidated, userID)
}
