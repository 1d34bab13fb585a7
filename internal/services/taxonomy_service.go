package services

import (
	"github.com/farellandr/techfesia/internal/models"
	"gorm.io/gorm"
)

func ListTags(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name").Find(&tags).Error
	return tags, err
}

func CreateTag(db *gorm.DB, name, description string) (*models.Tag, error) {
	tag := models.Tag{Name: name, Description: description}
	if err := db.Create(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return &tag, nil
}

func UpdateTag(db *gorm.DB, name, description string) (*models.Tag, error) {
	var tag models.Tag
	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	tag.Description = description
	if err := db.Model(&tag).Update("description", description).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes an unused tag.
func DeleteTag(db *gorm.DB, name string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTagNotFoundOnDelete
			}
			return err
		}
		inUse, err := referenced(tx, &tag)
		if err != nil {
			return err
		}
		if inUse {
			return ErrTagInUse
		}
		return tx.Delete(&tag).Error
	})
}

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name").Find(&categories).Error
	return categories, err
}

func CreateCategory(db *gorm.DB, name, description string) (*models.Category, error) {
	category := models.Category{Name: name, Description: description}
	if err := db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return &category, nil
}

func UpdateCategory(db *gorm.DB, name, description string) (*models.Category, error) {
	var category models.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category.Description = description
	if err := db.Model(&category).Update("description", description).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes an unused category. The default category can never
// be deleted, whether or not it exists yet.
func DeleteCategory(db *gorm.DB, name string) error {
	if name == models.DefaultCategoryName {
		return ErrDefaultCategory
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("name = ?", name).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCategoryNotFoundOnDelete
			}
			return err
		}
		inUse, err := referenced(tx, &category)
		if err != nil {
			return err
		}
		if inUse {
			return ErrCategoryInUse
		}
		return tx.Delete(&category).Error
	})
}

// referenced reports whether any solo or team event points at row, which is
// a *models.Tag or *models.Category.
func referenced(tx *gorm.DB, row interface{}) (bool, error) {
	for _, association := range []string{"SoloEvents", "TeamEvents"} {
		assoc := tx.Model(row).Association(association)
		count := assoc.Count()
		if assoc.Error != nil {
			return false, assoc.Error
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
