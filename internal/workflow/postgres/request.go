package postgres

import (
	"github.com/peoplepulse/peoplepulse/internal/workflow"
	"gorm.io/gorm"

	internal "github.com/peoplepulse/peoplepulse/internal"
)

// RequestRepository implements the workflow.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) workflow.Repository {
	return &RequestRepository{db: db}
}

// Create saves a new request to the database
func (r *RequestRepository) Create(req *workflow.Request) error {
	return r.db.Create(req).Error
}

// GetByID retrieves a request with its comments ordered oldest first
func (r *RequestRepository) GetByID(id int64) (*workflow.Request, error) {
	var req workflow.Request
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ?", id).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List retrieves requests newest first with pagination. Role-based
// visibility is applied by the service, not here.
func (r *RequestRepository) List(limit, offset int) ([]*workflow.Request, error) {
	var requests []*workflow.Request
	err := r.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

// Update updates an existing request
func (r *RequestRepository) Update(req *workflow.Request) error {
	result := r.db.Omit("Comments").Save(req)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRequestNotFound
	}
	return nil
}

// AddComment appends a comment to a request
func (r *RequestRepository) AddComment(comment *workflow.Comment) error {
	return r.db.Create(comment).Error
}

// ListOpen retrieves every request not yet approved or rejected, oldest
// due date first. Used by the overdue scanner.
func (r *RequestRepository) ListOpen() ([]*workflow.Request, error) {
	var requests []*workflow.Request
	err := r.db.Where("status NOT IN ?", []string{workflow.StatusApproved, workflow.StatusRejected}).
		Order("due_date ASC").
		Find(&requests).Error
	return requests, err
}
