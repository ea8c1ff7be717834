package validator

import (
	"reflect"
	"strings"

	"github.com/formpilot/form-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation with the question-shape and
// answer-completeness validators.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
	answerValidator   *AnswerValidator
}

// New creates the centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
		answerValidator:   NewAnswerValidator(),
	}
}

// ValidateStruct validates struct tags only.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Question returns the question-shape validator.
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// Answer returns the fill-time answer validator.
func (v *Validator) Answer() *AnswerValidator {
	return v.answerValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("form_theme", validateFormTheme)

	// json tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	_, ok := models.NormalizeQuestionType(fl.Field().String())
	return ok
}

var knownThemes = []string{"default", "dark", "minimal", "classic"}

func validateFormTheme(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, theme := range knownThemes {
		if theme == value {
			return true
		}
	}
	return false
}
