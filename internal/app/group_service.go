package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/gachabot/internal/i18n"
	"github.com/example/gachabot/internal/ports/primary"
	"github.com/example/gachabot/internal/ports/secondary"
)

// GroupServiceImpl implements the GroupService interface.
type GroupServiceImpl struct {
	groupRepo secondary.GroupRepository
}

// NewGroupService creates a new GroupService with injected dependencies.
func NewGroupService(groupRepo secondary.GroupRepository) *GroupServiceImpl {
	return &GroupServiceImpl{groupRepo: groupRepo}
}

// GetGroup retrieves a group by ID.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, groupID int64) (*primary.Group, error) {
	record, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &primary.Group{
		ID:           record.ID,
		Title:        record.Title,
		Username:     record.Username,
		LanguageCode: record.LanguageCode,
		CreatedAt:    record.CreatedAt,
	}, nil
}

// SetGroupLanguage updates the language the bot speaks in a group.
func (s *GroupServiceImpl) SetGroupLanguage(ctx context.Context, groupID int64, languageCode string) error {
	if !i18n.Supported(languageCode) {
		return fmt.Errorf("unsupported language %q, supported: %s",
			languageCode, strings.Join(i18n.Languages(), ", "))
	}
	return s.groupRepo.SetLanguage(ctx, groupID, languageCode)
}

// Ensure GroupServiceImpl implements the interface.
var _ primary.GroupService = (*GroupServiceImpl)(nil)
