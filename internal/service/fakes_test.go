package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
)

// In-memory repositories backing the service tests. Mutations take a lock so
// concurrent sends exercise the same guarantees the SQL layer gives.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SearchByUsernamePrefix(_ context.Context, prefix string, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if strings.HasPrefix(u.Username, prefix) && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) setLanguage(id uuid.UUID, lang domain.Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[id]
	u.Language = lang
	r.users[id] = u
}

type fakeConversationRepo struct {
	mu       sync.Mutex
	convs    map[string]domain.Conversation
	messages *fakeMessageRepo // emulates ON DELETE CASCADE

	activityErrs int // fail this many RecordActivity calls
}

func newFakeConversationRepo(messages *fakeMessageRepo) *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:    make(map[string]domain.Conversation),
		messages: messages,
	}
}

func (r *fakeConversationRepo) Upsert(_ context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.convs[conv.ID]; ok {
		existing.Details = conv.Details
		existing.UpdatedAt = time.Now()
		r.convs[conv.ID] = existing
		return nil
	}
	fresh := *conv
	now := time.Now()
	fresh.LastMessageAt = now
	fresh.CreatedAt = now
	fresh.UpdatedAt = now
	r.convs[conv.ID] = fresh
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.convs[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListForUser(_ context.Context, userID uuid.UUID, includeArchived bool) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, c := range r.convs {
		if c.User1ID != userID && c.User2ID != userID {
			continue
		}
		if !includeArchived && c.ArchivedFor(userID) {
			continue
		}
		out = append(out, c)
	}
	// last activity first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastMessageAt.After(out[i].LastMessageAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) RecordActivity(_ context.Context, id string, preview string, incrementUnreadFor *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activityErrs > 0 {
		r.activityErrs--
		return errors.New("storage write failure")
	}
	c, ok := r.convs[id]
	if !ok {
		return errors.New("conversation not found")
	}
	c.LastMessage = preview
	c.LastMessageAt = time.Now()
	if incrementUnreadFor != nil {
		switch *incrementUnreadFor {
		case c.User1ID:
			c.User1Unread++
		case c.User2ID:
			c.User2Unread++
		}
	}
	r.convs[id] = c
	return nil
}

func (r *fakeConversationRepo) SetUnread(_ context.Context, id string, userID uuid.UUID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.convs[id]
	if userID == c.User1ID {
		c.User1Unread = count
	} else {
		c.User2Unread = count
	}
	r.convs[id] = c
	return nil
}

func (r *fakeConversationRepo) SetArchived(_ context.Context, id string, userID uuid.UUID, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.convs[id]
	if userID == c.User1ID {
		c.User1Archived = archived
	} else {
		c.User2Archived = archived
	}
	r.convs[id] = c
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.convs, id)
	r.mu.Unlock()
	if r.messages != nil {
		r.messages.deleteByConversation(id)
	}
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]domain.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uuid.UUID]domain.Message)}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	// monotonic stand-in for the database clock
	msg.CreatedAt = time.Unix(0, int64(r.seq)*int64(time.Millisecond))
	r.messages[msg.ID] = *msg
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

// ListByConversation orders by (created_at, id) and compares the cursor as a
// tuple, matching the SQL implementation so timestamp ties paginate cleanly.
func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string, before *uuid.UUID, limit int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Message
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if before != nil {
			cutoff, ok := r.messages[*before]
			if ok && !messageBefore(m, cutoff) {
				continue
			}
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return messageBefore(all[i], all[j]) })
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func messageBefore(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func (r *fakeMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.messages[msg.ID]
	m.Text = msg.Text
	m.TranslatedText = msg.TranslatedText
	m.Edited = true
	now := time.Now()
	m.EditedAt = &now
	r.messages[msg.ID] = m
	return nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
	return nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, conversationID string, readerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID {
			m.Read = true
			r.messages[id] = m
		}
	}
	return nil
}

func (r *fakeMessageRepo) deleteByConversation(conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if m.ConversationID == conversationID {
			delete(r.messages, id)
		}
	}
}

func (r *fakeMessageRepo) setCreatedAt(id uuid.UUID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.messages[id]
	m.CreatedAt = at
	r.messages[id] = m
}

func (r *fakeMessageRepo) countByConversation(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			n++
		}
	}
	return n
}

type fakeFriendshipRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]domain.Friendship
	users *fakeUserRepo
}

func newFakeFriendshipRepo(users *fakeUserRepo) *fakeFriendshipRepo {
	return &fakeFriendshipRepo{rows: make(map[uuid.UUID]domain.Friendship), users: users}
}

func (r *fakeFriendshipRepo) Create(_ context.Context, f *domain.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[f.ID] = *f
	return nil
}

func (r *fakeFriendshipRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.rows[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (r *fakeFriendshipRepo) GetByUsers(_ context.Context, user1ID, user2ID uuid.UUID) (*domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.User1ID == user1ID && f.User2ID == user2ID {
			return &f, nil
		}
	}
	return nil, nil
}

func (r *fakeFriendshipRepo) Accept(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.rows[id]
	f.Status = domain.FriendshipAccepted
	now := time.Now()
	f.AcceptedAt = &now
	r.rows[id] = f
	return nil
}

func (r *fakeFriendshipRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeFriendshipRepo) ListPending(_ context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Friendship
	for _, f := range r.rows {
		if f.Status == domain.FriendshipPending && (f.User1ID == userID || f.User2ID == userID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFriendshipRepo) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, f := range r.rows {
		if f.Status != domain.FriendshipAccepted {
			continue
		}
		var otherID uuid.UUID
		switch userID {
		case f.User1ID:
			otherID = f.User2ID
		case f.User2ID:
			otherID = f.User1ID
		default:
			continue
		}
		if u, ok := r.users.users[otherID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeTranslator scripts the gateway. The default behavior tags the text with
// the target language so assertions can see which pair was requested.
type fakeTranslator struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (t *fakeTranslator) Translate(_ context.Context, text string, source, target domain.Language) (string, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.fail {
		return "", errors.New("model timeout")
	}
	return "[" + string(target) + "] " + text, nil
}

func (t *fakeTranslator) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
