package store

import (
	"surfceylon.app/server/core/db"
)

type Stores struct {
	db *db.DB
}

func NewStores(database *db.DB) *Stores {
	return &Stores{db: database}
}

func (s *Stores) Users() UserStore {
	return &userStore{q: s.db.Pool()}
}

func (s *Stores) Follows() FollowStore {
	return &followStore{q: s.db.Pool()}
}

func (s *Stores) Posts() PostStore {
	return &postStore{q: s.db.Pool()}
}

// Conversations and Messages take the full DB handle: direct-conversation
// resolution and seq assignment are multi-statement transactions.
func (s *Stores) Conversations() ConversationStore {
	return &conversationStore{db: s.db}
}

func (s *Stores) Messages() MessageStore {
	return &messageStore{db: s.db}
}

func (s *Stores) Notifications() NotificationStore {
	return newNotificationStore(s.db.Pool())
}

// TxStores binds stores to a single transaction's Querier, so multi-row
// writes (notification fan-out) commit or roll back as one unit.
type TxStores struct {
	q db.Querier
}

func NewTxStores(q db.Querier) *TxStores {
	return &TxStores{q: q}
}

func (s *TxStores) Notifications() NotificationStore {
	return newNotificationStore(s.q)
}
