package db

import (
	"errors"

	"github.com/astrahealth/astra/internal/models"
	"gorm.io/gorm"
)

type DocRepository struct {
	database *gorm.DB
}

func NewDocRepository(database *gorm.DB) *DocRepository {
	return &DocRepository{database: database}
}

func (repo *DocRepository) Create(doc *models.Doc) error {
	return repo.database.Create(doc).Error
}

func (repo *DocRepository) FindByID(docID uint) (models.Doc, bool, error) {
	var doc models.Doc
	err := repo.database.First(&doc, docID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Doc{}, false, nil
	}
	if err != nil {
		return models.Doc{}, false, err
	}
	return doc, true, nil
}

func (repo *DocRepository) List(typeFilter string) ([]models.Doc, error) {
	query := repo.database.Model(&models.Doc{})
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}

	docs := make([]models.Doc, 0)
	if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (repo *DocRepository) Save(doc *models.Doc) error {
	return repo.database.Save(doc).Error
}

func (repo *DocRepository) Delete(docID uint) (bool, error) {
	result := repo.database.Delete(&models.Doc{}, docID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
