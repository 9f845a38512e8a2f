package services

import (
	"whispr/domain"
	"whispr/errors"
)

type IQuotaService interface {
	Check(user domain.User) error
}

// QuotaService gates conversation creation for guest-tier accounts.
type QuotaService struct{}

func NewQuotaService() QuotaService {
	return QuotaService{}
}

// Check counts standing connections plus group memberships against the
// guest cap. The check is advisory at the moment of call: the read and
// the write it gates are separate round trips, so two concurrent
// sessions of one guest account can both pass and jointly exceed the
// cap.
func (QuotaService) Check(user domain.User) error {
	if user.Tier != domain.TierGuest {
		return nil
	}
	if user.ConversationCount() >= user.Quota() {
		return errors.ErrQuotaExceeded
	}
	return nil
}
