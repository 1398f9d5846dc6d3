package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"novasphere/internal/models"
)

const (
	sessionSlot = "session"
	cartSlot    = "cart"
)

// StateSlot is a named JSON blob in the local state database.
type StateSlot struct {
	Key   string `gorm:"primaryKey;type:varchar(32)"`
	Value string `gorm:"type:text"`
}

// GORMStateRepository stores the state slots in a local SQLite database.
type GORMStateRepository struct {
	db *gorm.DB
}

// NewGORMStateRepository creates a repository backed by the given GORM
// connection. The caller is expected to have run AutoMigrate for StateSlot.
func NewGORMStateRepository(db *gorm.DB) *GORMStateRepository {
	return &GORMStateRepository{db: db}
}

// LoadSession reads the persisted session. A missing or corrupt slot reads
// as no session.
func (r *GORMStateRepository) LoadSession() (*models.User, error) {
	raw, err := r.load(sessionSlot)
	if err != nil || raw == "" {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("Corrupt session slot, treating as absent: %v", err)
		return nil, nil
	}
	return &user, nil
}

// SaveSession writes the session slot.
func (r *GORMStateRepository) SaveSession(user *models.User) error {
	return r.save(sessionSlot, user)
}

// ClearSession removes the session slot.
func (r *GORMStateRepository) ClearSession() error {
	if err := r.db.Delete(&StateSlot{}, "key = ?", sessionSlot).Error; err != nil {
		return fmt.Errorf("failed to clear session slot: %w", err)
	}
	return nil
}

// LoadCart reads the persisted cart snapshot. A missing or corrupt slot
// reads as an empty cart.
func (r *GORMStateRepository) LoadCart() ([]models.CartItem, error) {
	raw, err := r.load(cartSlot)
	if err != nil || raw == "" {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Corrupt cart slot, treating as absent: %v", err)
		return nil, nil
	}
	return items, nil
}

// SaveCart writes the cart slot.
func (r *GORMStateRepository) SaveCart(items []models.CartItem) error {
	return r.save(cartSlot, items)
}

func (r *GORMStateRepository) load(key string) (string, error) {
	var slot StateSlot
	err := r.db.First(&slot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s slot: %w", key, err)
	}
	return slot.Value, nil
}

func (r *GORMStateRepository) save(key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s slot: %w", key, err)
	}
	slot := StateSlot{Key: key, Value: string(body)}
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&slot).Error; err != nil {
		return fmt.Errorf("failed to save %s slot: %w", key, err)
	}
	return nil
}
