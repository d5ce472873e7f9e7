package apierror_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/book-pages-go/internal/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("without cause omits the error field", func(t *testing.T) {
		e := apierror.New(http.StatusTooManyRequests, "slow down")

		body, err := json.Marshal(e)
		require.NoError(t, err)

		assert.JSONEq(t, `{"message":"slow down","success":false}`, string(body))
		assert.Equal(t, http.StatusTooManyRequests, e.GetStatus())
		assert.Equal(t, "slow down", e.Error())
	})

	t.Run("joins causes into the error field", func(t *testing.T) {
		e := apierror.New(http.StatusInternalServerError, apierror.MessageInternal,
			errors.New("dial tcp: refused"), nil, errors.New("second"))

		body, err := json.Marshal(e)
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"message":"Internal server error","success":false,"error":"dial tcp: refused; second"}`,
			string(body))
		assert.Contains(t, e.Error(), "dial tcp: refused")
	})
}

func TestInstall(t *testing.T) {
	apierror.Install()
	apierror.Install()

	err := huma.Error500InternalServerError(apierror.MessageInternal, errors.New("boom"))

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Detail)
	assert.False(t, apiErr.Success)
}
