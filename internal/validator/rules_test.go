package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Role     string `json:"role" validate:"omitempty,is-user-role"`
	Date     string `json:"date" validate:"omitempty,appointment-date"`
	Time     string `json:"time" validate:"omitempty,time-slot"`
	BodyArea string `json:"body_area" validate:"omitempty,body-area"`
}

func TestCustomRules_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&bookingForm{
		Role:     "artist",
		Date:     "2030-06-15",
		Time:     "14:00",
		BodyArea: "Forearm",
	})
	assert.NoError(t, err)
}

func TestCustomRules_Invalid(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		form  bookingForm
		field string
	}{
		{"unknown role", bookingForm{Role: "admin"}, "role"},
		{"bad date format", bookingForm{Date: "15.06.2030"}, "date"},
		{"slot off grid", bookingForm{Time: "14:30"}, "time"},
		{"slot out of hours", bookingForm{Time: "19:00"}, "time"},
		{"unknown body area", bookingForm{BodyArea: "Elbow"}, "body_area"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.form)
			require.Error(t, err)

			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Contains(t, vErr.Errors, tc.field)
		})
	}
}

func TestCustomRules_EmptyValuesPass(t *testing.T) {
	v := New()
	// Пустые значения - зона ответственности required
	assert.NoError(t, v.Validate(&bookingForm{}))
}

func TestErrorMessagesUseJSONNames(t *testing.T) {
	v := New()

	type loginForm struct {
		Email string `json:"email" validate:"required,email"`
	}

	err := v.Validate(&loginForm{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
}
