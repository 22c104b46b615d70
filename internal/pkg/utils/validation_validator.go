package utils

import (
	"lessonbook-service/internal/pkg/constvars"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	regexDateYMD = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
	regexHHMM    = regexp.MustCompile(constvars.RegexTimeHHMM)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("date_ymd", validateDateYMD)
	validate.RegisterValidation("hhmm", validateHHMM)
	validate.RegisterValidation("iana_tz", validateIANATimezone)
	validate.RegisterValidation("lesson_length", validateLessonLength)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDateYMD(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexDateYMD.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexHHMM.MatchString(value) {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validateIANATimezone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	_, err := time.LoadLocation(value)
	return err == nil
}

func validateLessonLength(fl validator.FieldLevel) bool {
	length := fl.Field().Int()
	return length == constvars.LessonLengthShort || length == constvars.LessonLengthLong
}
