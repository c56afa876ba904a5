package services

import (
	"fmt"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"
)

type CategoryService struct {
	Categories repositories.CategoryRepository
	Events     repositories.EventRepository
	RequestID  string

	// DeleteAsset removes an uploaded image from remote storage. Nil when
	// uploads are not configured.
	DeleteAsset func(publicID string) error
}

func (s CategoryService) Create(name string, imageURL, publicID *string) (models.EventCategory, error) {
	category, err := models.NewEventCategory(name)
	if err != nil {
		return models.EventCategory{}, err
	}
	category.ImageURL = imageURL
	category.CloudinaryPublicID = publicID

	created, err := s.Categories.Create(category)
	if err != nil {
		return models.EventCategory{}, err
	}
	utils.LogEvent(s.RequestID, "categories", "create", fmt.Sprintf("category_id=%d", created.ID))
	return created, nil
}

func (s CategoryService) Get(id int64) (models.EventCategory, error) {
	return s.Categories.GetByID(id)
}

func (s CategoryService) List() ([]models.EventCategory, error) {
	return s.Categories.List()
}

// EventsIn lists the events attached to a category, verifying it exists.
func (s CategoryService) EventsIn(id int64) ([]models.Event, error) {
	if _, err := s.Categories.GetByID(id); err != nil {
		return nil, err
	}
	return s.Events.ListByCategory(id)
}

// Update replaces the name and, when a new image was uploaded, swaps the
// stored image. The previous remote asset is cleaned up best effort.
func (s CategoryService) Update(id int64, name *string, imageURL, publicID *string) (models.EventCategory, error) {
	category, err := s.Categories.GetByID(id)
	if err != nil {
		return models.EventCategory{}, err
	}

	if name != nil {
		renamed, err := models.NewEventCategory(*name)
		if err != nil {
			return models.EventCategory{}, err
		}
		category.Name = renamed.Name
	}

	oldPublicID := category.CloudinaryPublicID
	if imageURL != nil {
		category.ImageURL = imageURL
		category.CloudinaryPublicID = publicID
	}

	updated, err := s.Categories.Update(category)
	if err != nil {
		return models.EventCategory{}, err
	}

	if imageURL != nil && oldPublicID != nil {
		s.cleanupAsset(*oldPublicID)
	}
	utils.LogEvent(s.RequestID, "categories", "update", fmt.Sprintf("category_id=%d", id))
	return updated, nil
}

// Delete removes the category and its remote image if it had one. Events
// in the category keep existing with no category attached.
func (s CategoryService) Delete(id int64) error {
	deleted, err := s.Categories.Delete(id)
	if err != nil {
		return err
	}
	if deleted.CloudinaryPublicID != nil {
		s.cleanupAsset(*deleted.CloudinaryPublicID)
	}
	utils.LogEvent(s.RequestID, "categories", "delete", fmt.Sprintf("category_id=%d", id))
	return nil
}

func (s CategoryService) cleanupAsset(publicID string) {
	if s.DeleteAsset == nil {
		return
	}
	if err := s.DeleteAsset(publicID); err != nil {
		utils.LogEvent(s.RequestID, "categories", "image_cleanup_failed", err.Error())
	}
}
