package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/ecommerce/backend/internal/domain/shared"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Category groups shop items. Membership is stored on the shop item side
// as a list of category IDs.
type Category struct {
	shared.BaseEntity
	Title       string
	Description string
}

// NewCategory creates a new shop item category
func NewCategory(title, description string) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(title, description); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the category's title and description
func (c *Category) Update(title, description string) error {
	if err := c.apply(title, description); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Category) apply(title, description string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle("Category", title); err != nil {
		return err
	}
	if err := validateDescription("Category", description); err != nil {
		return err
	}
	c.Title = title
	c.Description = description
	return nil
}

func validateTitle(kind, title string) error {
	if title == "" {
		return shared.Newf("INVALID_TITLE", "%s title cannot be empty", kind)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return shared.Newf("INVALID_TITLE", "%s title cannot exceed %d characters", kind, MaxTitleLength)
	}
	return nil
}

func validateDescription(kind, description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return shared.Newf("INVALID_DESCRIPTION", "%s description cannot exceed %d characters", kind, MaxDescriptionLength)
	}
	return nil
}
