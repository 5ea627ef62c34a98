package workflow

import (
	"strings"

	errors "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/core/common/validation"
)

// SubmitRequestDTO is the payload for creating a request. Only subject and
// description are required; everything else defaults.
type SubmitRequestDTO struct {
	RequestType string `json:"request_type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (dto *SubmitRequestDTO) Validate() *errors.AppError {
	if dto.RequestType == "" {
		dto.RequestType = TypeGeneralQuery
	}
	if dto.Priority == "" {
		dto.Priority = PriorityMedium
	}

	v := validation.NewValidator()
	v.Field("subject", dto.Subject).Required().MaxLength(200)
	v.Field("description", dto.Description).Required().MaxLength(2000)
	v.Field("request_type", dto.RequestType).OneOf(RequestTypes, errors.ErrCodeInvalidRequestType)
	v.Field("priority", dto.Priority).OneOf(Priorities, errors.ErrCodeInvalidPriority)
	return v.Validate()
}

// AddCommentDTO is the payload for commenting on a request.
type AddCommentDTO struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
}

func (dto AddCommentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("content", dto.Content).Required().MaxLength(2000)
	return v.Validate()
}

// BulkActionDTO carries the ids for bulk approve/reject.
type BulkActionDTO struct {
	RequestIDs []int64 `json:"request_ids"`
}

func (dto BulkActionDTO) Validate() *errors.AppError {
	if len(dto.RequestIDs) == 0 {
		return errors.NewValidationFieldError("request_ids", "request_ids is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// ListFilters narrows a request listing. All filters AND together, on top of
// the caller's role-based visibility scope.
type ListFilters struct {
	Status      string `json:"status"`
	RequestType string `json:"request_type"`
	Priority    string `json:"priority"`
	Search      string `json:"search"`
}

// Matches applies the equality filters and the case-insensitive free-text
// search over subject, description and submitter name.
func (f ListFilters) Matches(r *Request) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.RequestType != "" && r.RequestType != f.RequestType {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Subject), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) &&
			!strings.Contains(strings.ToLower(r.SubmittedBy), needle) {
			return false
		}
	}
	return true
}

// BulkResult reports per-id outcomes for a bulk action. Each id is processed
// independently; one failure does not roll back the others.
type BulkResult struct {
	Succeeded []int64          `json:"succeeded"`
	Failed    map[int64]string `json:"failed,omitempty"`
}
