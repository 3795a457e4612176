package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// StoreFailure maps a technical entity store error into the domain taxonomy.
// The original error stays in the chain, so context.Canceled and friends can still be detected.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}

	return errors.Join(core.ErrStoreFailure, err)
}
