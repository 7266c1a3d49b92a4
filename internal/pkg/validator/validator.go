package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// CareTypes are the care categories a property can offer
var CareTypes = []string{"Residential", "Nursing", "Dementia", "Respite"}

// EnquiryTypes are the accepted enquiry form options
var EnquiryTypes = []string{
	"Looking for care for a loved one",
	"Looking for care for myself",
	"Professional referral",
	"General enquiry",
}

// AdmissionTypes are the accepted admission options
var AdmissionTypes = []string{"Permanent", "First Respite", "Trial"}

// Assessment picklists
var (
	AssessmentStatuses = []string{"Scheduled", "In Progress", "Completed", "Cancelled"}
	RiskLevels         = []string{"Low", "Medium", "High"}
	AssessmentOutcomes = []string{"Suitable", "Suitable with Support", "Not Suitable"}
)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func oneOf(options []string, allowEmpty bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return allowEmpty
		}
		for _, o := range options {
			if v == o {
				return true
			}
		}
		return false
	}
}

func registerCustomValidations() {
	validate.RegisterValidation("care_type", oneOf(CareTypes, false))
	validate.RegisterValidation("enquiry_type", oneOf(EnquiryTypes, true))
	validate.RegisterValidation("admission_type", oneOf(AdmissionTypes, true))
	validate.RegisterValidation("assessment_status", oneOf(AssessmentStatuses, true))
	validate.RegisterValidation("risk_level", oneOf(RiskLevels, true))
	validate.RegisterValidation("assessment_outcome", oneOf(AssessmentOutcomes, true))
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + fe.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + fe.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + fe.Param()
		case "gt":
			errors[field] = "Value must be greater than " + fe.Param()
		case "lte":
			errors[field] = "Value must be at most " + fe.Param()
		case "uuid":
			errors[field] = "Invalid identifier"
		case "care_type":
			errors[field] = "Invalid care type. Must be: " + strings.Join(CareTypes, ", ")
		case "enquiry_type":
			errors[field] = "Invalid enquiry type"
		case "admission_type":
			errors[field] = "Invalid admission type. Must be: " + strings.Join(AdmissionTypes, ", ")
		case "assessment_status":
			errors[field] = "Invalid status. Must be: " + strings.Join(AssessmentStatuses, ", ")
		case "risk_level":
			errors[field] = "Invalid risk level. Must be: " + strings.Join(RiskLevels, ", ")
		case "assessment_outcome":
			errors[field] = "Invalid outcome. Must be: " + strings.Join(AssessmentOutcomes, ", ")
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
