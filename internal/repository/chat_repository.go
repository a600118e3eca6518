package repository

import (
	"context"
	"errors"
	"time"

	"estate-chat/internal/domain"
	chat_errors "estate-chat/pkg/errors"

	"gorm.io/gorm"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	res := r.db.WithContext(ctx).Create(chat)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return chat_errors.ErrAlreadyExists
		}
		return chat_errors.WrapStorage(res.Error)
	}
	return nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id string) (domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, seq ASC")
		}).
		Where("id = ?", id).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Chat{}, chat_errors.ErrNotFound
		}
		return domain.Chat{}, chat_errors.WrapStorage(err)
	}
	return chat, nil
}

func (r *PostgresChatRepository) GetByPairKey(ctx context.Context, pairKey string) (domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", pairKey).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Chat{}, chat_errors.ErrNotFound
		}
		return domain.Chat{}, chat_errors.WrapStorage(err)
	}
	return chat, nil
}

func (r *PostgresChatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_ids @> ?", jsonbElem(userID)).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, chat_errors.WrapStorage(err)
	}
	return chats, nil
}

func (r *PostgresChatRepository) AddSeen(ctx context.Context, chatID, userID string) error {
	elem := jsonbElem(userID)
	res := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND NOT seen_by @> ?", chatID, elem).
		Update("seen_by", gorm.Expr("seen_by || ?::jsonb", elem))
	if res.Error != nil {
		return chat_errors.WrapStorage(res.Error)
	}
	// Zero rows means the user already saw the chat; that is not a fault.
	return nil
}

func (r *PostgresChatRepository) ReplaceSeen(ctx context.Context, chatID string, seenBy []string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("seen_by", gorm.Expr("?::jsonb", jsonbArray(seenBy)))
	if res.Error != nil {
		return chat_errors.WrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return chat_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.Chat{}).
			Where("id = ?", msg.ChatID).
			Updates(map[string]interface{}{
				"seen_by":      gorm.Expr("?::jsonb", jsonbElem(msg.SenderID)),
				"last_message": msg.Content,
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat_errors.ErrNotFound
		}
		return chat_errors.WrapStorage(err)
	}
	return nil
}

func (r *PostgresChatRepository) CountUnseen(ctx context.Context, userID string) (int64, error) {
	elem := jsonbElem(userID)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("user_ids @> ? AND NOT seen_by @> ?", elem, elem).
		Count(&count).Error
	if err != nil {
		return 0, chat_errors.WrapStorage(err)
	}
	return count, nil
}
