package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

// storageErr traduce cancelaciones y timeouts del contexto como lo hace el adaptador postgres.
func storageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}
