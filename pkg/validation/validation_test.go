package validation_test

import (
	"testing"

	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidateDirection(t *testing.T) {
	assert.NoError(t, validation.ValidateDirection("developer"))
	assert.NoError(t, validation.ValidateDirection("designer"))
	assert.Error(t, validation.ValidateDirection("manager"))
	assert.Error(t, validation.ValidateDirection(""))
}

func TestValidateGameType(t *testing.T) {
	assert.NoError(t, validation.ValidateGameType("bug_catcher"))
	assert.NoError(t, validation.ValidateGameType("color_match"))
	assert.Error(t, validation.ValidateGameType("tetris"))
}

func TestValidateGameScore(t *testing.T) {
	assert.NoError(t, validation.ValidateGameScore(0))
	assert.NoError(t, validation.ValidateGameScore(42))
	assert.Error(t, validation.ValidateGameScore(-1))
	assert.Error(t, validation.ValidateGameScore(validation.MaxGameScore+1))
}

func TestValidatePrizeID(t *testing.T) {
	assert.NoError(t, validation.ValidatePrizeID(1))
	assert.Error(t, validation.ValidatePrizeID(0))
	assert.Error(t, validation.ValidatePrizeID(-3))
}

func TestValidateNonEmptyString(t *testing.T) {
	assert.NoError(t, validation.ValidateNonEmptyString("email", "a@b.c"))
	err := validation.ValidateNonEmptyString("email", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestValidateResumeFile(t *testing.T) {
	assert.NoError(t, validation.ValidateResumeFile("cv.pdf"))
	assert.NoError(t, validation.ValidateResumeFile("/tmp/My Resume.DOCX"))
	assert.Error(t, validation.ValidateResumeFile("cv.txt"))
	assert.Error(t, validation.ValidateResumeFile("cv"))
}
