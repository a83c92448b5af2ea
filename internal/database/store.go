package database

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/idnildas/hipchat/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// UserRecord is a stored user plus its password hash, which never leaves
// the store through the API.
type UserRecord struct {
	models.User
	PasswordHash string
}

type conversation struct{ a, b int64 }

func conversationKey(a, b int64) conversation {
	if a > b {
		a, b = b, a
	}
	return conversation{a, b}
}

// Store keeps the stand-in service's state in memory. All methods return
// copies and are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	nextRoomID    int64
	nextUserID    int64
	nextWebhookID int64

	rooms    map[int64]*models.Room
	users    map[int64]*UserRecord
	members  map[int64]map[int64][]string
	invites  map[int64]map[int64]string
	history  map[int64][]models.Message
	private  map[conversation][]models.Message
	webhooks map[int64]map[int64]*models.Webhook

	now func() time.Time
}

func New() *Store {
	return &Store{
		nextRoomID:    1,
		nextUserID:    1,
		nextWebhookID: 1,
		rooms:         make(map[int64]*models.Room),
		users:         make(map[int64]*UserRecord),
		members:       make(map[int64]map[int64][]string),
		invites:       make(map[int64]map[int64]string),
		history:       make(map[int64][]models.Message),
		private:       make(map[conversation][]models.Message),
		webhooks:      make(map[int64]map[int64]*models.Webhook),
		now:           time.Now,
	}
}

// CreateRoom stores room, assigning its id and creation time. Names are
// unique, case-insensitively.
func (s *Store) CreateRoom(room models.Room) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roomByName(room.Name); ok {
		return models.Room{}, ErrConflict
	}
	created := s.now().UTC()
	room.ID = s.nextRoomID
	room.Created = &created
	s.nextRoomID++
	s.rooms[room.ID] = &room
	return room, nil
}

// FindRoom resolves a numeric id or a room name.
func (s *Store) FindRoom(idOrName string) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.findRoom(idOrName)
	if !ok {
		return models.Room{}, ErrNotFound
	}
	return *room, nil
}

func (s *Store) findRoom(idOrName string) (*models.Room, bool) {
	if id, err := strconv.ParseInt(idOrName, 10, 64); err == nil {
		room, ok := s.rooms[id]
		return room, ok
	}
	return s.roomByName(idOrName)
}

func (s *Store) roomByName(name string) (*models.Room, bool) {
	for _, room := range s.rooms {
		if strings.EqualFold(room.Name, name) {
			return room, true
		}
	}
	return nil, false
}

// ListRooms returns rooms ordered by id.
func (s *Store) ListRooms(start, limit int, includeArchived bool) []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make([]models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if room.IsArchived && !includeArchived {
			continue
		}
		rooms = append(rooms, *room)
	}
	slices.SortFunc(rooms, func(a, b models.Room) int { return int(a.ID - b.ID) })
	return page(rooms, start, limit)
}

// UpdateRoom applies update to the stored room.
func (s *Store) UpdateRoom(id int64, update func(*models.Room)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	update(room)
	return nil
}

// DeleteRoom removes the room and everything attached to it.
func (s *Store) DeleteRoom(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(s.rooms, id)
	delete(s.members, id)
	delete(s.invites, id)
	delete(s.history, id)
	delete(s.webhooks, id)
	return nil
}

// AppendMessage records message in room history, stamping id and date.
func (s *Store) AppendMessage(roomID int64, message models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return models.Message{}, ErrNotFound
	}
	message.Date = s.now().UTC()
	s.history[roomID] = append(s.history[roomID], message)
	return message, nil
}

// FindMessage looks a message up by id in room history.
func (s *Store) FindMessage(roomID int64, messageID string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, message := range s.history[roomID] {
		if message.ID == messageID {
			return message, nil
		}
	}
	return models.Message{}, ErrNotFound
}

// History returns up to limit room messages starting at start, oldest first.
func (s *Store) History(roomID int64, start, limit int) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page(slices.Clone(s.history[roomID]), start, limit)
}

// Statistics counts messages and reports the last message date.
func (s *Store) Statistics(roomID int64) models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.history[roomID]
	stats := models.Statistics{MessagesSent: len(messages)}
	if len(messages) > 0 {
		last := messages[len(messages)-1].Date
		stats.LastActive = &last
	}
	return stats
}

// SetMember grants roles in room to user.
func (s *Store) SetMember(roomID, userID int64, roles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrNotFound
	}
	if s.members[roomID] == nil {
		s.members[roomID] = make(map[int64][]string)
	}
	s.members[roomID][userID] = slices.Clone(roles)
	return nil
}

// Members lists the memberships of room ordered by user id.
func (s *Store) Members(roomID int64) []models.RoomMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]models.RoomMember, 0, len(s.members[roomID]))
	for userID, roles := range s.members[roomID] {
		members = append(members, models.RoomMember{RoomID: roomID, UserID: userID, Roles: slices.Clone(roles)})
	}
	slices.SortFunc(members, func(a, b models.RoomMember) int { return int(a.UserID - b.UserID) })
	return members
}

// Invite records an invitation with its reason.
func (s *Store) Invite(roomID, userID int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrNotFound
	}
	if s.invites[roomID] == nil {
		s.invites[roomID] = make(map[int64]string)
	}
	s.invites[roomID][userID] = reason
	return nil
}

// Invitation returns the recorded invitation reason.
func (s *Store) Invitation(roomID, userID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reason, ok := s.invites[roomID][userID]
	return reason, ok
}

// CreateWebhook stores hook for room, assigning its id.
func (s *Store) CreateWebhook(roomID int64, hook models.Webhook) (models.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return models.Webhook{}, ErrNotFound
	}
	hook.ID = s.nextWebhookID
	s.nextWebhookID++
	if s.webhooks[roomID] == nil {
		s.webhooks[roomID] = make(map[int64]*models.Webhook)
	}
	s.webhooks[roomID][hook.ID] = &hook
	return hook, nil
}

// Webhook returns one webhook of room.
func (s *Store) Webhook(roomID, hookID int64) (models.Webhook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hook, ok := s.webhooks[roomID][hookID]
	if !ok {
		return models.Webhook{}, ErrNotFound
	}
	return *hook, nil
}

// Webhooks lists the webhooks of room ordered by id.
func (s *Store) Webhooks(roomID int64, start, limit int) []models.Webhook {
	s.mu.Lock()
	defer s.mu.Unlock()

	hooks := make([]models.Webhook, 0, len(s.webhooks[roomID]))
	for _, hook := range s.webhooks[roomID] {
		hooks = append(hooks, *hook)
	}
	slices.SortFunc(hooks, func(a, b models.Webhook) int { return int(a.ID - b.ID) })
	return page(hooks, start, limit)
}

// DeleteWebhook removes one webhook of room.
func (s *Store) DeleteWebhook(roomID, hookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.webhooks[roomID][hookID]; !ok {
		return ErrNotFound
	}
	delete(s.webhooks[roomID], hookID)
	return nil
}

// CreateUser stores user, assigning its id. Emails and mention names are unique.
func (s *Store) CreateUser(user UserRecord) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) ||
			(user.MentionName != "" && strings.EqualFold(existing.MentionName, user.MentionName)) {
			return UserRecord{}, ErrConflict
		}
	}
	created := s.now().UTC()
	user.ID = s.nextUserID
	user.Created = &created
	s.nextUserID++
	s.users[user.ID] = &user
	return user, nil
}

// FindUser resolves a numeric id, an email address or an @mention name.
func (s *Store) FindUser(ref string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findUser(ref)
	if !ok {
		return UserRecord{}, ErrNotFound
	}
	return *user, nil
}

func (s *Store) findUser(ref string) (*UserRecord, bool) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		user, ok := s.users[id]
		return user, ok
	}
	mention, isMention := strings.CutPrefix(ref, "@")
	for _, user := range s.users {
		if isMention && strings.EqualFold(user.MentionName, mention) {
			return user, true
		}
		if !isMention && strings.EqualFold(user.Email, ref) {
			return user, true
		}
	}
	return nil, false
}

// ListUsers returns users ordered by id.
func (s *Store) ListUsers(start, limit int) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.User)
	}
	slices.SortFunc(users, func(a, b models.User) int { return int(a.ID - b.ID) })
	return page(users, start, limit)
}

// UpdateUser applies update to the stored user.
func (s *Store) UpdateUser(id int64, update func(*UserRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	update(user)
	return nil
}

// DeleteUser removes the user and its memberships.
func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	for _, members := range s.members {
		delete(members, id)
	}
	return nil
}

// AppendPrivate records message in the private chat between from and to.
func (s *Store) AppendPrivate(from, to int64, message models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[to]; !ok {
		return models.Message{}, ErrNotFound
	}
	message.Date = s.now().UTC()
	key := conversationKey(from, to)
	s.private[key] = append(s.private[key], message)
	return message, nil
}

// PrivateHistory returns the newest limit messages between a and b, oldest first.
func (s *Store) PrivateHistory(a, b int64, limit int) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := slices.Clone(s.private[conversationKey(a, b)])
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages
}

func page[T any](items []T, start, limit int) []T {
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return []T{}
	}
	items = items[start:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
