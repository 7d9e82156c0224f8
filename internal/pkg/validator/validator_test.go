package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-03-08", "2024-02-29"}
	invalid := []string{"2023-02-29", "08-03-2024", "2024/03/08", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("SICK", []string{"SICK", "CASUAL"}))
	assert.False(t, IsInSlice("sick", []string{"SICK", "CASUAL"}))
	assert.False(t, IsInSlice("SICK", nil))
}

type sample struct {
	Reason    string `json:"reason" validate:"required,max=10"`
	StartDate string `json:"start_date" validate:"required,date"`
	Kind      string `json:"kind" validate:"omitempty,oneof=A B"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(sample{Reason: "fever", StartDate: "2024-03-08", Kind: "A"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sample{StartDate: "08/03/2024", Kind: "C"})
		require.Error(t, err)

		var errs ValidationErrors
		require.True(t, errors.As(err, &errs))

		fields := errs.ToMap()
		assert.Equal(t, "reason is required", fields["reason"])
		assert.Equal(t, "start_date must be a date in YYYY-MM-DD format", fields["start_date"])
		assert.Equal(t, "kind must be one of: A B", fields["kind"])
	})

	t.Run("max length", func(t *testing.T) {
		err := Struct(sample{Reason: "this reason is too long", StartDate: "2024-03-08"})
		var errs ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Equal(t, "reason must be at most 10 characters", errs.ToMap()["reason"])
	})
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	assert.Equal(t, "a: bad; b: worse", errs.Error())
}
