package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forgo/agora/api/internal/database"
	"github.com/forgo/agora/api/internal/model"
)

// PostRepository handles board post data access on a relational store
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create stores a new post and assigns its id
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	row := postRow{
		Title:   post.Title,
		Content: post.Content,
		UserID:  post.OwnerID,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(&row).Error; err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	post.ID = row.ID
	post.CreatedOn = row.CreatedAt
	post.UpdatedOn = row.UpdatedAt
	return nil
}

// GetByID retrieves a post by id. Returns nil when absent.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var row postRow
	err := r.db.WithContext(ctx).Preload("User").First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	post := row.toModel()
	return &post, nil
}

// List returns one page of posts in ascending id order
func (r *PostRepository) List(ctx context.Context, req model.PageRequest) (*model.Page[model.Post], error) {
	return r.page(r.db.WithContext(ctx).Model(&postRow{}), req)
}

// SearchByTitle returns one page of posts whose title contains keyword.
// Matching is case-sensitive on both dialects.
func (r *PostRepository) SearchByTitle(ctx context.Context, keyword string, req model.PageRequest) (*model.Page[model.Post], error) {
	db := r.db.WithContext(ctx).Model(&postRow{})
	switch r.db.Dialector.Name() {
	case "postgres":
		db = db.Where("strpos(title, ?) > 0", keyword)
	default:
		db = db.Where("instr(title, ?) > 0", keyword)
	}
	return r.page(db, req)
}

// Update applies the non-nil fields of upd under a row lock and returns the
// stored post. Returns nil without writing when the post does not exist.
func (r *PostRepository) Update(ctx context.Context, id int64, upd model.PostUpdate) (*model.Post, error) {
	var updated *model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row postRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		fields := map[string]interface{}{}
		if upd.Title != nil {
			fields["title"] = *upd.Title
		}
		if upd.Content != nil {
			fields["content"] = *upd.Content
		}
		if len(fields) > 0 {
			if err := tx.Model(&row).Updates(fields).Error; err != nil {
				return err
			}
		}

		if err := tx.Preload("User").First(&row, id).Error; err != nil {
			return err
		}
		post := row.toModel()
		updated = &post
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return updated, nil
}

// Delete removes a post. Deleting a missing post is not an error.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&postRow{}, id).Error; err != nil {
		return fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	return nil
}

func (r *PostRepository) page(db *gorm.DB, req model.PageRequest) (*model.Page[model.Post], error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	var rows []postRow
	err := db.Session(&gorm.Session{}).Preload("User").
		Order("id ASC").Limit(req.Size).Offset(req.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	posts := make([]model.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toModel())
	}
	return model.NewPage(posts, req, total), nil
}
