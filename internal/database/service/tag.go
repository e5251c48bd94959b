package service

import (
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/pkg/utils"
	"go.uber.org/zap"
)

// TagService normalizes tag names and reports tag usage.
type TagService struct {
	model      *models.TagModel
	normalizer *utils.TextNormalizer
	logger     *zap.Logger
}

// NewTag creates a new tag service.
func NewTag(model *models.TagModel, logger *zap.Logger) *TagService {
	return &TagService{
		model:      model,
		normalizer: utils.NewTextNormalizer(),
		logger:     logger.Named("tag_service"),
	}
}

// Normalize converts a label to its canonical tag name.
func (s *TagService) Normalize(name string) string {
	return s.normalizer.TagName(name)
}

// NormalizeAll normalizes labels, dropping empty and repeated names while keeping first-seen order.
func (s *TagService) NormalizeAll(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		tag := s.Normalize(name)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// Usage returns every tag with its association counts, most used first.
func (s *TagService) Usage() []types.TagUsage {
	return s.model.Usage()
}
