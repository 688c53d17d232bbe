package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
)

func TestMapStoreErrorIntegrityViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint"}

	err := mapStoreError(pqErr, "failed to create submission")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrStoreRejected.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	// The store's own message is passed through for the client.
	assert.Equal(t, pqErr.Message, appErr.Message)
}

func TestMapStoreErrorUnexpected(t *testing.T) {
	err := mapStoreError(errors.New("connection reset"), "failed to list folders")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.Equal(t, "failed to list folders", appErr.Message)
}
