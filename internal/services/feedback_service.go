package services

import (
	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
)

var (
	ErrFeedbackNotFound   = apperror.NotFound("feedback")
	ErrFeedbackIncomplete = apperror.Validation("type and message are required")
)

type FeedbackStore interface {
	Create(feedback *models.Feedback) error
	FindByID(feedbackID uint) (models.Feedback, bool, error)
	List(typeFilter string, resolved *bool) ([]models.Feedback, error)
	Save(feedback *models.Feedback) error
}

type FeedbackService struct {
	feedback FeedbackStore
}

func NewFeedbackService(feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{feedback: feedback}
}

func (service *FeedbackService) Submit(feedbackType string, message string, userHash *string) (models.Feedback, error) {
	if feedbackType == "" || message == "" {
		return models.Feedback{}, ErrFeedbackIncomplete
	}

	feedback := models.Feedback{
		Type:     feedbackType,
		Message:  message,
		UserHash: userHash,
	}
	if err := service.feedback.Create(&feedback); err != nil {
		return models.Feedback{}, err
	}
	return feedback, nil
}

func (service *FeedbackService) Get(feedbackID uint) (models.Feedback, error) {
	feedback, found, err := service.feedback.FindByID(feedbackID)
	if err != nil {
		return models.Feedback{}, err
	}
	if !found {
		return models.Feedback{}, ErrFeedbackNotFound
	}
	return feedback, nil
}

func (service *FeedbackService) List(typeFilter string, resolved *bool) ([]models.Feedback, error) {
	return service.feedback.List(typeFilter, resolved)
}

// SetResolved flips the triage flag, typically once support has handled the
// report.
func (service *FeedbackService) SetResolved(feedbackID uint, resolved bool) (models.Feedback, error) {
	feedback, err := service.Get(feedbackID)
	if err != nil {
		return models.Feedback{}, err
	}

	feedback.Resolved = resolved
	if err := service.feedback.Save(&feedback); err != nil {
		return models.Feedback{}, err
	}
	return feedback, nil
}
