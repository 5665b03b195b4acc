package service

import (
	"errors"

	"github.com/hartondavid/delivery-backend/internal/app/model"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/pkg/logger"
)

// ErrForbidden means the caller is authenticated but lacks the right the
// operation requires. No domain state is touched when it is returned.
var ErrForbidden = errors.New("insufficient rights")

// rightsGuard is the authorization predicate shared by all services. Every
// privileged operation calls require before touching domain data; the check
// always goes to the live store so a revoked right takes effect on the next
// request.
type rightsGuard struct {
	rightRepo repository.RightRepository
}

// require returns ErrForbidden unless the user holds at least one of the
// given rights.
func (g rightsGuard) require(userID uint, codes ...model.RightCode) error {
	ok, err := g.rightRepo.HasAnyRight(userID, codes...)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("Rights check failed", map[string]interface{}{
			"user_id":         userID,
			"required_rights": codes,
		})
		return ErrForbidden
	}
	return nil
}
