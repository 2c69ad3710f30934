package services

import (
	"context"
	"sort"
	"time"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/repositories"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// fakeUserStore is an in-memory UserStore for service tests
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
	for _, u := range users {
		store.users[u.ID] = u
		if u.ID >= store.nextID {
			store.nextID = u.ID + 1
		}
	}
	return store
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetManyByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (f *fakeUserStore) SetOnlineStatus(_ context.Context, userID int64, online bool) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsOnline = online
	if !online {
		now := time.Now()
		u.LastSeenAt = &now
	}
	return nil
}

// fakeTicketStore is an in-memory TicketStore for service tests
type fakeTicketStore struct {
	tickets map[int64]*models.Ticket
	nextID  int64
}

func newFakeTicketStore(tickets ...*models.Ticket) *fakeTicketStore {
	store := &fakeTicketStore{tickets: make(map[int64]*models.Ticket), nextID: 1}
	for _, t := range tickets {
		store.tickets[t.ID] = t
		if t.ID >= store.nextID {
			store.nextID = t.ID + 1
		}
	}
	return store
}

func (f *fakeTicketStore) Create(_ context.Context, ticket *models.Ticket) (int64, error) {
	ticket.ID = f.nextID
	f.nextID++
	ticket.Status = models.TicketStatusOpen
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.tickets[ticket.ID] = ticket
	return ticket.ID, nil
}

func (f *fakeTicketStore) GetByID(_ context.Context, id int64) (*models.Ticket, error) {
	if t, ok := f.tickets[id]; ok {
		// Return a detached copy like the real repository's row scan,
		// so service-side mutations don't alias the stored ticket.
		cp := *t
		cp.Replies = append([]models.TicketReply(nil), t.Replies...)
		return &cp, nil
	}
	return nil, apperrors.ErrTicketNotFound
}

func (f *fakeTicketStore) List(_ context.Context, filter repositories.TicketFilter) ([]*models.Ticket, error) {
	var result []*models.Ticket
	for _, t := range f.tickets {
		if filter.StudentID != nil && t.StudentID != *filter.StudentID {
			continue
		}
		if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTicketStore) AddReply(_ context.Context, reply *models.TicketReply, newStatus models.TicketStatus) error {
	t, ok := f.tickets[reply.TicketID]
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	reply.ID = int64(len(t.Replies) + 1)
	reply.CreatedAt = time.Now()
	t.Replies = append(t.Replies, *reply)
	t.Status = newStatus
	return nil
}

func (f *fakeTicketStore) Assign(_ context.Context, ticketID, assigneeID int64) error {
	t, ok := f.tickets[ticketID]
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	t.AssignedTo = &assigneeID
	if t.Status == models.TicketStatusOpen {
		t.Status = models.TicketStatusInProgress
	}
	return nil
}

func (f *fakeTicketStore) UpdateStatus(_ context.Context, ticketID int64, status models.TicketStatus) error {
	t, ok := f.tickets[ticketID]
	if !ok {
		return apperrors.ErrTicketNotFound
	}
	t.Status = status
	return nil
}

// fakeAppointmentStore is an in-memory AppointmentStore for service tests
type fakeAppointmentStore struct {
	appointments map[int64]*models.Appointment
	nextID       int64
}

func newFakeAppointmentStore(appointments ...*models.Appointment) *fakeAppointmentStore {
	store := &fakeAppointmentStore{appointments: make(map[int64]*models.Appointment), nextID: 1}
	for _, a := range appointments {
		store.appointments[a.ID] = a
		if a.ID >= store.nextID {
			store.nextID = a.ID + 1
		}
	}
	return store
}

func (f *fakeAppointmentStore) Create(_ context.Context, appointment *models.Appointment) (int64, error) {
	appointment.ID = f.nextID
	f.nextID++
	appointment.Status = models.AppointmentStatusPending
	appointment.CreatedAt = time.Now()
	f.appointments[appointment.ID] = appointment
	return appointment.ID, nil
}

func (f *fakeAppointmentStore) GetByID(_ context.Context, id int64) (*models.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAppointmentNotFound
}

func (f *fakeAppointmentStore) List(_ context.Context, filter repositories.AppointmentFilter) ([]*models.Appointment, error) {
	var result []*models.Appointment
	for _, a := range f.appointments {
		if filter.LecturerID != nil && a.LecturerID != *filter.LecturerID {
			continue
		}
		if filter.StudentID != nil && a.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentStore) UpdateStatus(_ context.Context, id int64, status models.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return apperrors.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return apperrors.ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	return nil
}

// fakeForumStore is an in-memory ForumStore for service tests
type fakeForumStore struct {
	posts  map[int64]*models.ForumPost
	votes  map[int64]map[int64]int
	nextID int64
}

func newFakeForumStore(posts ...*models.ForumPost) *fakeForumStore {
	store := &fakeForumStore{
		posts:  make(map[int64]*models.ForumPost),
		votes:  make(map[int64]map[int64]int),
		nextID: 1,
	}
	for _, p := range posts {
		store.posts[p.ID] = p
		if p.ID >= store.nextID {
			store.nextID = p.ID + 1
		}
	}
	return store
}

func (f *fakeForumStore) CreatePost(_ context.Context, post *models.ForumPost) (int64, error) {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.LastActivityAt = post.CreatedAt
	f.posts[post.ID] = post
	return post.ID, nil
}

func (f *fakeForumStore) GetPostByID(_ context.Context, id int64) (*models.ForumPost, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrForumPostNotFound
}

func (f *fakeForumStore) ListPosts(_ context.Context, departmentID *int64) ([]*models.ForumPost, error) {
	var result []*models.ForumPost
	for _, p := range f.posts {
		if departmentID != nil && p.DepartmentID != *departmentID {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeForumStore) AddReply(_ context.Context, reply *models.ForumReply) error {
	p, ok := f.posts[reply.PostID]
	if !ok {
		return apperrors.ErrForumPostNotFound
	}
	reply.ID = int64(len(p.Replies) + 1)
	reply.CreatedAt = time.Now()
	p.Replies = append(p.Replies, *reply)
	p.LastActivityAt = reply.CreatedAt
	return nil
}

func (f *fakeForumStore) Vote(_ context.Context, vote *models.ForumVote) error {
	p, ok := f.posts[vote.PostID]
	if !ok {
		return apperrors.ErrForumPostNotFound
	}
	if f.votes[vote.PostID] == nil {
		f.votes[vote.PostID] = make(map[int64]int)
	}
	f.votes[vote.PostID][vote.UserID] = vote.Value
	score := 0
	for _, v := range f.votes[vote.PostID] {
		score += v
	}
	p.VoteScore = score
	return nil
}

func (f *fakeForumStore) SetResolved(_ context.Context, postID int64, resolved bool) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperrors.ErrForumPostNotFound
	}
	p.Resolved = resolved
	return nil
}

// fakeChatStore is an in-memory ChatStore for service tests
type fakeChatStore struct {
	messages []*models.Message
	nextID   int64
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{nextID: 1}
}

func (f *fakeChatStore) CreateMessage(_ context.Context, message *models.Message) (int64, error) {
	message.ID = f.nextID
	f.nextID++
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return message.ID, nil
}

func (f *fakeChatStore) GetThread(_ context.Context, chatKey string) ([]*models.Message, error) {
	var result []*models.Message
	for _, m := range f.messages {
		if m.ChatKey == chatKey {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeChatStore) ListConversations(_ context.Context, userID int64) ([]repositories.ConversationRow, error) {
	latest := make(map[string]*models.Message)
	unread := make(map[string]int)
	for _, m := range f.messages {
		if m.SenderID != userID && m.RecipientID != userID {
			continue
		}
		if prev, ok := latest[m.ChatKey]; !ok || m.CreatedAt.After(prev.CreatedAt) {
			latest[m.ChatKey] = m
		}
		if m.RecipientID == userID && !m.IsRead {
			unread[m.ChatKey]++
		}
	}

	var rows []repositories.ConversationRow
	for key, m := range latest {
		other := m.SenderID
		if other == userID {
			other = m.RecipientID
		}
		rows = append(rows, repositories.ConversationRow{
			ChatKey:     key,
			OtherUserID: other,
			LastMessage: *m,
			UnreadCount: unread[key],
		})
	}
	// Latest message first, matching the repository's outer ORDER BY.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LastMessage.CreatedAt.After(rows[j].LastMessage.CreatedAt)
	})
	return rows, nil
}

func (f *fakeChatStore) MarkRead(_ context.Context, chatKey string, recipientID int64) error {
	for _, m := range f.messages {
		if m.ChatKey == chatKey && m.RecipientID == recipientID {
			m.IsRead = true
		}
	}
	return nil
}

// fakeLostFoundStore is an in-memory LostFoundStore for service tests
type fakeLostFoundStore struct {
	items  map[int64]*models.LostFoundItem
	nextID int64
}

func newFakeLostFoundStore(items ...*models.LostFoundItem) *fakeLostFoundStore {
	store := &fakeLostFoundStore{items: make(map[int64]*models.LostFoundItem), nextID: 1}
	for _, item := range items {
		store.items[item.ID] = item
		if item.ID >= store.nextID {
			store.nextID = item.ID + 1
		}
	}
	return store
}

func (f *fakeLostFoundStore) Create(_ context.Context, item *models.LostFoundItem) (int64, error) {
	item.ID = f.nextID
	f.nextID++
	item.Status = models.LostFoundStatusOpen
	item.CreatedAt = time.Now()
	f.items[item.ID] = item
	return item.ID, nil
}

func (f *fakeLostFoundStore) GetByID(_ context.Context, id int64) (*models.LostFoundItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, apperrors.ErrListingNotFound
}

func (f *fakeLostFoundStore) matches(item *models.LostFoundItem, filter repositories.LostFoundFilter) bool {
	if filter.Type != nil && item.Type != *filter.Type {
		return false
	}
	if filter.Status != nil && item.Status != *filter.Status {
		return false
	}
	return true
}

func (f *fakeLostFoundStore) List(_ context.Context, filter repositories.LostFoundFilter) ([]*models.LostFoundItem, error) {
	var result []*models.LostFoundItem
	for _, item := range f.items {
		if f.matches(item, filter) {
			result = append(result, item)
		}
	}
	// newest first, like the repository's ORDER BY
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if filter.Offset > 0 {
		if int(filter.Offset) >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (f *fakeLostFoundStore) Count(_ context.Context, filter repositories.LostFoundFilter) (int64, error) {
	var total int64
	for _, item := range f.items {
		if f.matches(item, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeLostFoundStore) UpdateStatus(_ context.Context, id int64, status models.LostFoundStatus) error {
	item, ok := f.items[id]
	if !ok {
		return apperrors.ErrListingNotFound
	}
	item.Status = status
	return nil
}

func (f *fakeLostFoundStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.ErrListingNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeDepartmentStore is an in-memory DepartmentStore for service tests
type fakeDepartmentStore struct {
	departments map[int64]models.Department
	nextID      int64
}

func newFakeDepartmentStore(departments ...models.Department) *fakeDepartmentStore {
	store := &fakeDepartmentStore{departments: make(map[int64]models.Department), nextID: 1}
	for _, d := range departments {
		store.departments[d.ID] = d
		if d.ID >= store.nextID {
			store.nextID = d.ID + 1
		}
	}
	return store
}

func (f *fakeDepartmentStore) Create(_ context.Context, department *models.Department) (int64, error) {
	for _, d := range f.departments {
		if d.Code == department.Code {
			return 0, apperrors.ErrDepartmentAlreadyExists
		}
	}
	department.ID = f.nextID
	f.nextID++
	f.departments[department.ID] = *department
	return department.ID, nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	if d, ok := f.departments[id]; ok {
		return &d, nil
	}
	return nil, apperrors.ErrDepartmentNotFound
}

func (f *fakeDepartmentStore) GetAll(_ context.Context) ([]models.Department, error) {
	var result []models.Department
	for _, d := range f.departments {
		result = append(result, d)
	}
	return result, nil
}

// fakeAnnouncementStore is an in-memory AnnouncementStore for service tests
type fakeAnnouncementStore struct {
	announcements map[int64]*models.Announcement
	nextID        int64
}

func newFakeAnnouncementStore(announcements ...*models.Announcement) *fakeAnnouncementStore {
	store := &fakeAnnouncementStore{announcements: make(map[int64]*models.Announcement), nextID: 1}
	for _, a := range announcements {
		store.announcements[a.ID] = a
		if a.ID >= store.nextID {
			store.nextID = a.ID + 1
		}
	}
	return store
}

func (f *fakeAnnouncementStore) Create(_ context.Context, announcement *models.Announcement) (int64, error) {
	announcement.ID = f.nextID
	f.nextID++
	announcement.CreatedAt = time.Now()
	f.announcements[announcement.ID] = announcement
	return announcement.ID, nil
}

func (f *fakeAnnouncementStore) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	if a, ok := f.announcements[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementStore) ListVisible(_ context.Context, role models.RoleType, now time.Time) ([]*models.Announcement, error) {
	var result []*models.Announcement
	for _, a := range f.announcements {
		if a.VisibleTo(role, now) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.announcements[id]; !ok {
		return apperrors.ErrAnnouncementNotFound
	}
	delete(f.announcements, id)
	return nil
}
