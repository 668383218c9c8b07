package service

import (
	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"
)

// Action names an operation on a booking for authorization purposes.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorizer decides whether a caller may act on a booking. The rule is
// uniform across actions: the booking's owner may, administrators may,
// nobody else may. It is a pure policy check and never touches storage.
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) CanAccess(identity model.Identity, booking *model.Booking, action Action) error {
	if identity.IsAdmin() {
		return nil
	}
	if booking.OwnerID == identity.OwnerID {
		return nil
	}
	return apperrors.Forbidden("You do not have permission to " + string(action) + " this booking")
}
