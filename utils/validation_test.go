package utils_test

import (
	"testing"

	"rotationcrm-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+14155552671",
		"+44 20 7946 0958",
		"(415) 555-2671",
		"4155552671",
	}
	for _, phone := range valid {
		assert.True(t, utils.ValidatePhone(phone), phone)
	}

	invalid := []string{
		"",
		"+0123456",
		"not-a-number",
		"+1415555267112345678",
	}
	for _, phone := range invalid {
		assert.False(t, utils.ValidatePhone(phone), phone)
	}
}
