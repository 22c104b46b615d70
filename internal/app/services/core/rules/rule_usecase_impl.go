package rules

import (
	"context"
	"fmt"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/app/models"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/dto/responses"
	"lessonbook-service/internal/pkg/exceptions"
	"lessonbook-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type RuleUsecase struct {
	ruleRepo  contracts.RuleRepository
	redisRepo contracts.RedisRepository
	logger    *zap.Logger
}

func NewRuleUsecase(
	ruleRepo contracts.RuleRepository,
	redisRepo contracts.RedisRepository,
	logger *zap.Logger,
) contracts.RuleUsecase {
	return &RuleUsecase{
		ruleRepo:  ruleRepo,
		redisRepo: redisRepo,
		logger:    logger,
	}
}

func (uc *RuleUsecase) GetWeeklyRules(ctx context.Context, instructorID string) (*responses.WeeklyRules, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("RuleUsecase.GetWeeklyRules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, instructorID),
	)

	rule, err := uc.ruleRepo.Load(ctx, instructorID)
	if err != nil {
		uc.logger.Error("RuleUsecase.GetWeeklyRules error loading rules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Availability treats a missing document as an empty offering; the rules
	// endpoint reports it explicitly so the editor UI can distinguish "never
	// configured" from "configured empty".
	if rule == nil {
		return nil, exceptions.ErrRulesNotFound(nil)
	}

	return buildWeeklyRulesResponse(rule), nil
}

func (uc *RuleUsecase) SaveWeeklyRules(ctx context.Context, instructorID string, request *requests.SaveWeeklyRules) (*responses.WeeklyRules, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.logger.Info("RuleUsecase.SaveWeeklyRules called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInstructorIDKey, instructorID),
		zap.Int("block_count", len(request.Weekly)),
	)

	if _, err := time.LoadLocation(request.Timezone); err != nil {
		return nil, exceptions.ErrInvalidTimezone(err)
	}

	blocks := make([]models.WeeklyRuleBlock, 0, len(request.Weekly))
	for _, block := range request.Weekly {
		blocks = append(blocks, models.WeeklyRuleBlock{
			Day:   block.Day,
			Start: block.Start,
			End:   block.End,
		})
	}
	normalized := utils.NormalizeWeeklyBlocks(blocks)

	if first, second, overlap := utils.FindOverlappingBlocks(normalized); overlap {
		return nil, exceptions.ErrOverlappingRuleBlocks(fmt.Errorf(
			"day %d: block %s-%s overlaps block %s-%s",
			first.Day, first.Start, first.End, second.Start, second.End,
		))
	}

	rule := &models.WeeklyRule{
		InstructorID: instructorID,
		Timezone:     request.Timezone,
		Weekly:       normalized,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := uc.ruleRepo.Save(ctx, rule); err != nil {
		uc.logger.Error("RuleUsecase.SaveWeeklyRules error saving rules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Drop the cached copy so the next availability read sees the new rules.
	cacheKey := constvars.RedisKeyWeeklyRulesPrefix + instructorID
	if err := uc.redisRepo.Delete(ctx, cacheKey); err != nil {
		uc.logger.Warn("RuleUsecase.SaveWeeklyRules failed to invalidate rule cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	return buildWeeklyRulesResponse(rule), nil
}

func buildWeeklyRulesResponse(rule *models.WeeklyRule) *responses.WeeklyRules {
	weekly := make([]responses.WeeklyBlock, 0, len(rule.Weekly))
	for _, block := range rule.Weekly {
		weekly = append(weekly, responses.WeeklyBlock{
			Day:   block.Day,
			Start: block.Start,
			End:   block.End,
		})
	}
	return &responses.WeeklyRules{
		InstructorID: rule.InstructorID,
		Timezone:     rule.Timezone,
		Weekly:       weekly,
		UpdatedAt:    rule.UpdatedAt,
	}
}
