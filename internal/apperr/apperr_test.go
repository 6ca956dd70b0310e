package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatusCodes(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindDatabase, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.StatusCode())
		})
	}
}

func TestPublicHidesCause(t *testing.T) {
	cause := errors.New(`pq: relation "recipe" does not exist`)
	err := fmt.Errorf("handler: %w", Database("GetAllRecipes", "Error fetching recipes", cause))

	status, msg := Public(err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error fetching recipes", msg)
	assert.NotContains(t, msg, "pq:")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPublicUnclassified(t *testing.T) {
	status, msg := Public(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("GetRecipeByID", "Recipe not found")))
	assert.False(t, IsNotFound(Database("op", "msg", nil)))
	assert.False(t, IsNotFound(nil))
}

func TestFromValidator(t *testing.T) {
	type params struct {
		MinRating float64 `validate:"min=0,max=5"`
	}
	err := validator.New().Struct(params{MinRating: 7})
	require.Error(t, err)

	appErr := FromValidator(err)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "must be at most 5", appErr.Fields["minRating"])

	generic := FromValidator(errors.New("strconv.ParseFloat: invalid syntax"))
	assert.Equal(t, KindValidation, generic.Kind)
	assert.Empty(t, generic.Fields)
}
