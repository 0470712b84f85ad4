package relational

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgo/agora/api/internal/model"
)

type userRow struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Email     string  `gorm:"uniqueIndex;size:255;not null"`
	Username  *string `gorm:"size:100"`
	Hash      *string `gorm:"size:255"`
	Role      string  `gorm:"size:20;not null;default:member"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

// BeforeCreate assigns a random id to rows created without one
func (u *userRow) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *userRow) toModel() *model.User {
	return &model.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Hash:      u.Hash,
		Role:      model.UserRole(u.Role),
		CreatedOn: u.CreatedAt,
		UpdatedOn: u.UpdatedAt,
	}
}

type postRow struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Title     string  `gorm:"size:100;not null;index"`
	Content   string  `gorm:"type:text;not null"`
	UserID    string  `gorm:"size:36;not null;index"`
	User      userRow `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postRow) TableName() string { return "posts" }

func (p *postRow) toModel() model.Post {
	return model.Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		OwnerID:    p.UserID,
		OwnerEmail: p.User.Email,
		OwnerName:  p.User.Username,
		CreatedOn:  p.CreatedAt,
		UpdatedOn:  p.UpdatedAt,
	}
}

// Migrate creates or updates the tables used by the relational store
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRow{}, &postRow{})
}
