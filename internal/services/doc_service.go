package services

import (
	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
)

var (
	ErrDocNotFound   = apperror.NotFound("doc")
	ErrDocIncomplete = apperror.Validation("title, text and type are required")
)

type DocStore interface {
	Create(doc *models.Doc) error
	FindByID(docID uint) (models.Doc, bool, error)
	List(typeFilter string) ([]models.Doc, error)
	Save(doc *models.Doc) error
	Delete(docID uint) (bool, error)
}

// DocService manages the published help articles.
type DocService struct {
	docs DocStore
}

func NewDocService(docs DocStore) *DocService {
	return &DocService{docs: docs}
}

func (service *DocService) Create(title string, text string, docType string) (models.Doc, error) {
	if title == "" || text == "" || docType == "" {
		return models.Doc{}, ErrDocIncomplete
	}

	doc := models.Doc{Title: title, Text: text, Type: docType}
	if err := service.docs.Create(&doc); err != nil {
		return models.Doc{}, err
	}
	return doc, nil
}

func (service *DocService) Get(docID uint) (models.Doc, error) {
	doc, found, err := service.docs.FindByID(docID)
	if err != nil {
		return models.Doc{}, err
	}
	if !found {
		return models.Doc{}, ErrDocNotFound
	}
	return doc, nil
}

func (service *DocService) List(typeFilter string) ([]models.Doc, error) {
	return service.docs.List(typeFilter)
}

func (service *DocService) Update(docID uint, title string, text string, docType string) (models.Doc, error) {
	if title == "" || text == "" || docType == "" {
		return models.Doc{}, ErrDocIncomplete
	}

	doc, err := service.Get(docID)
	if err != nil {
		return models.Doc{}, err
	}

	doc.Title = title
	doc.Text = text
	doc.Type = docType
	if err := service.docs.Save(&doc); err != nil {
		return models.Doc{}, err
	}
	return doc, nil
}

func (service *DocService) Delete(docID uint) error {
	deleted, err := service.docs.Delete(docID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDocNotFound
	}
	return nil
}
