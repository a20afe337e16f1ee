package requests

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Draft is a visitor's booking-request submission before persistence.
type Draft struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=20,phoneshape"`
	RequestedDate string `json:"requested_date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required,timeslot"`
	EndTime       string `json:"end_time" validate:"required,timeslot"`
	Purpose       string `json:"purpose" validate:"omitempty,max=500"`
	IsFlexible    bool   `json:"is_flexible"`
	AgreedToTerms bool   `json:"agreed_to_terms" validate:"eq=true"`
	GDPRConsent   bool   `json:"gdpr_consent" validate:"eq=true"`
}

const dateLayout = "2006-01-02"

// TimeSlots is the bookable grid: 30-minute slots from 07:00 to 20:30.
var TimeSlots = buildTimeSlots()

var slotSet = func() map[string]bool {
	set := make(map[string]bool, len(TimeSlots))
	for _, t := range TimeSlots {
		set[t] = true
	}
	return set
}()

func buildTimeSlots() []string {
	slots := make([]string, 0, 28)
	for i := 0; i < 28; i++ {
		hour := i/2 + 7
		min := "00"
		if i%2 == 1 {
			min = "30"
		}
		slots = append(slots, fmt.Sprintf("%02d:%s", hour, min))
	}
	return slots
}

var phoneRe = regexp.MustCompile(`^[0-9\s()+\-]+$`)

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the json field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return slotSet[fl.Field().String()]
	})
	_ = v.RegisterValidation("phoneshape", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}()

// Validate checks a draft against the submission rules, collecting all
// violations rather than stopping at the first. bookedDates is the set
// of confirmed booking dates fetched by the caller beforehand. Returns
// the normalized draft and, if anything failed, one human-readable
// message per offending field.
func Validate(draft Draft, bookedDates map[string]bool, now time.Time) (Draft, map[string]string) {
	d := normalize(draft)
	fieldErrs := map[string]string{}

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field := fe.Field()
				if _, seen := fieldErrs[field]; !seen {
					fieldErrs[field] = messageFor(field, fe.Tag())
				}
			}
		}
	}

	// Date rules need today's date and the booked set, so they live
	// outside the tag-driven pass.
	if _, seen := fieldErrs["requested_date"]; !seen && d.RequestedDate != "" {
		parsed, err := time.Parse(dateLayout, d.RequestedDate)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		switch {
		case err != nil:
			fieldErrs["requested_date"] = "Please select a valid date"
		case parsed.Before(today):
			fieldErrs["requested_date"] = "Date cannot be in the past"
		case bookedDates[d.RequestedDate]:
			fieldErrs["requested_date"] = "This date is already booked"
		}
	}

	// Lexicographic compare is sufficient: all slots share HH:MM format.
	if _, seen := fieldErrs["end_time"]; !seen && d.StartTime != "" && d.EndTime != "" && d.StartTime >= d.EndTime {
		fieldErrs["end_time"] = "End time must be after start time"
	}

	if len(fieldErrs) == 0 {
		return d, nil
	}
	return d, fieldErrs
}

func normalize(d Draft) Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Purpose = strings.TrimSpace(d.Purpose)
	return d
}

func messageFor(field, tag string) string {
	switch field {
	case "name":
		if tag == "max" {
			return "Name must be 100 characters or less"
		}
		return "Name must be at least 2 characters"
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "requested_date":
		return "Please select a date"
	case "start_time":
		return "Please select a start time"
	case "end_time":
		return "Please select an end time"
	case "purpose":
		return "Purpose must be 500 characters or less"
	case "agreed_to_terms":
		return "You must agree to the terms and conditions"
	case "gdpr_consent":
		return "You must consent to data processing"
	}
	return "Invalid value"
}
