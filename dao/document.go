package dao

import (
	"doc-agent-backend/model"
	"errors"

	"gorm.io/gorm"
)

func SaveDocumentMetadata(metadata *model.DocumentMetadata) error {
	return DB.Create(metadata).Error
}

func GetDocumentMetadataByEmail(email string) ([]model.DocumentMetadata, error) {
	var metadata []model.DocumentMetadata
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&metadata).Error; err != nil {
		return nil, err
	}
	return metadata, nil
}

func GetDocumentMetadataBySession(email, sessionID string) ([]model.DocumentMetadata, error) {
	var metadata []model.DocumentMetadata
	if err := DB.Where("user_email = ? AND session_id = ?", email, sessionID).
		Order("created_at ASC").
		Find(&metadata).Error; err != nil {
		return nil, err
	}
	return metadata, nil
}

func GetDocumentMetadataByObjectName(objectName string) (*model.DocumentMetadata, error) {
	var metadata model.DocumentMetadata
	if err := DB.Where("object_name = ?", objectName).
		First(&metadata).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metadata, nil
}

// SearchDocumentMetadataByFileName 依赖file_name上的ngram全文索引
func SearchDocumentMetadataByFileName(email, keyword string) ([]model.DocumentMetadata, error) {
	var metadata []model.DocumentMetadata
	if err := DB.Where("user_email = ? AND MATCH(file_name) AGAINST(? IN BOOLEAN MODE)", email, keyword).
		Order("created_at DESC").
		Find(&metadata).Error; err != nil {
		return nil, err
	}
	return metadata, nil
}

func DeleteDocumentMetadataByObjectName(objectName string) error {
	return DB.Where("object_name = ?", objectName).
		Delete(&model.DocumentMetadata{}).Error
}

func DeleteDocumentMetadataByEmailAndFileName(email, fileName string) error {
	return DB.Where("user_email = ? AND file_name = ?", email, fileName).
		Delete(&model.DocumentMetadata{}).Error
}

func UpdateDocumentMetadataStatus(objectName string, status model.Status) error {
	return DB.Model(&model.DocumentMetadata{}).
		Where("object_name = ?", objectName).
		Update("status", status).Error
}
