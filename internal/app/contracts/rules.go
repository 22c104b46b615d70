package contracts

import (
	"context"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
)

// RuleRepository persists weekly availability rules, one document per
// instructor, replaced wholesale on save. Load returns (nil, nil) when the
// instructor has no rules.
type RuleRepository interface {
	Load(ctx context.Context, instructorID string) (*models.WeeklyRule, error)
	Save(ctx context.Context, rule *models.WeeklyRule) error
}

type RuleUsecase interface {
	GetWeeklyRules(ctx context.Context, instructorID string) (*responses.WeeklyRules, error)
	SaveWeeklyRules(ctx context.Context, instructorID string, request *requests.SaveWeeklyRules) (*responses.WeeklyRules, error)
}
