package service

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
)

// mapStoreError translates a repository failure. Integrity violations are the
// caller's fault and surface as 400 with the store's message; anything else is
// unexpected.
func mapStoreError(err error, fallback string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return appErrors.Wrap(err, appErrors.ErrStoreRejected.Code, appErrors.ErrStoreRejected.Status, pqErr.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fallback)
}
