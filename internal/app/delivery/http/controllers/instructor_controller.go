package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/dto/requests"
	"lessonbook-service/internal/pkg/exceptions"
	"lessonbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// InstructorController serves the instructor-facing surface: the availability
// query and the weekly rule document.
type InstructorController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	RuleUsecase         contracts.RuleUsecase
}

var (
	instructorControllerInstance *InstructorController
	onceInstructorController     sync.Once
)

func NewInstructorController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, ruleUsecase contracts.RuleUsecase) *InstructorController {
	onceInstructorController.Do(func() {
		instance := &InstructorController{
			Log:                 logger,
			AvailabilityUsecase: availabilityUsecase,
			RuleUsecase:         ruleUsecase,
		}
		instructorControllerInstance = instance
	})
	return instructorControllerInstance
}

func (ctrl *InstructorController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	lengthMinutes := constvars.LessonLengthShort
	if raw := r.URL.Query().Get("length"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}
		lengthMinutes = parsed
	}

	request := &requests.GetAvailableSlots{
		InstructorID:  chi.URLParam(r, "instructorID"),
		Date:          r.URL.Query().Get("date"),
		LengthMinutes: lengthMinutes,
		Timezone:      r.URL.Query().Get("tz"),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AvailabilityUsecase.GetAvailableSlots(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableSlotsSuccessMessage, response)
}

func (ctrl *InstructorController) GetWeeklyRules(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.RuleUsecase.GetWeeklyRules(ctx, chi.URLParam(r, "instructorID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWeeklyRulesSuccessMessage, response)
}

func (ctrl *InstructorController) SaveWeeklyRules(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.SaveWeeklyRules)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	instructorID := chi.URLParam(r, "instructorID")
	response, err := ctrl.RuleUsecase.SaveWeeklyRules(ctx, instructorID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "weekly_rules_saved", requestID,
		zap.String(constvars.LoggingInstructorIDKey, instructorID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveWeeklyRulesSuccessMessage, response)
}
