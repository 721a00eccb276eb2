package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecenter/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorsUseJSONNames(t *testing.T) {
	err := ValidateStruct(models.RegisterInput{Nickname: "x", Email: "nope", Role: "admin"})
	require.Error(t, err)

	fields := ValidationErrors(err)
	assert.Equal(t, "nickname must be at least 2 characters", fields["nickname"])
	assert.Equal(t, "email must be a valid email", fields["email"])
	assert.Equal(t, "password is required", fields["password"])
	assert.Equal(t, "role must be one of: user developer", fields["role"])
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	err := ValidateStruct(models.RatingInput{Score: 5})
	assert.NoError(t, err)

	err = ValidateStruct(models.RatingInput{Score: 6})
	assert.Equal(t, "score must be less than or equal to 5", ValidationErrors(err)["score"])
}

func TestValidationErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)

	ValidationErrorResponse(c, ValidateStruct(models.FriendInput{}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"errors":{"email":"email is required"}}`, rr.Body.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}
