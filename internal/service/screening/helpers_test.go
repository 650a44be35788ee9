package screening

import (
	"testing"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	return errors.GetCode(err)
}
