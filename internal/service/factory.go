package service

import (
	"time"

	"surfceylon.app/server/core/config"
	"surfceylon.app/server/internal/queue"
	"surfceylon.app/server/internal/store"
)

type Services struct {
	stores      *store.Stores
	txRunner    TxRunner
	producer    queue.Producer
	feedCfg     config.FeedConfig
	convCfg     config.ConversationConfig
	storageWait time.Duration
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, cfg *config.Config) *Services {
	return &Services{
		stores:      stores,
		txRunner:    txRunner,
		producer:    producer,
		feedCfg:     cfg.Feed,
		convCfg:     cfg.Conversation,
		storageWait: cfg.StorageTimeout,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.storageWait)
}

func (s *Services) Follows() FollowService {
	return NewFollowService(s.stores.Follows(), s.stores.Users(), s.producer, s.storageWait, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
}

func (s *Services) Posts() PostService {
	return NewPostService(s.stores.Posts(), s.stores.Users(), s.storageWait, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
}

func (s *Services) Feed() FeedService {
	return NewFeedService(s.stores.Follows(), s.stores.Posts(), s.storageWait, s.feedCfg.FanoutChunk, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
}

func (s *Services) Conversations() ConversationService {
	return NewConversationService(s.stores.Conversations(), s.stores.Messages(), s.stores.Users(), s.storageWait, s.convCfg.MaxMembers)
}

func (s *Services) Messages() MessageService {
	return NewMessageService(s.stores.Messages(), s.stores.Conversations(), s.producer, s.storageWait, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.stores.Notifications(), s.storageWait, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
}
