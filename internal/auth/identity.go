// Package auth carries the acting identity through a request and answers
// capability questions about it. A booking has no single owner: requester
// and companion both hold partial write access, so authorization is a
// predicate over the identity and the booking's two reference fields.
package auth

import "github.com/sirikit/companion-booking/internal/models"

// Identity is the already-authenticated caller. Issued upstream (JWT
// middleware); the core trusts it and only compares ids and roles.
type Identity struct {
	UserID uint
	Role   models.Role
}

func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// IsRequester reports whether the identity is the booking's requesting user.
func (id Identity) IsRequester(b *models.Booking) bool {
	return id.UserID == b.UserID
}

// IsCompanionOwner reports whether the identity owns the companion profile
// the booking points at.
func (id Identity) IsCompanionOwner(b *models.Booking, companion *models.Companion) bool {
	return companion != nil && companion.ID == b.CompanionID && companion.UserID == id.UserID
}

// CanView: either party, or an admin.
func (id Identity) CanView(b *models.Booking, companion *models.Companion) bool {
	return id.IsAdmin() || id.IsRequester(b) || id.IsCompanionOwner(b, companion)
}

// CanCancel: either party, or an admin.
func (id Identity) CanCancel(b *models.Booking, companion *models.Companion) bool {
	return id.CanView(b, companion)
}

// CancelActor resolves who a cancellation is attributed to.
func (id Identity) CancelActor(b *models.Booking, companion *models.Companion) models.CancelledBy {
	switch {
	case id.IsRequester(b):
		return models.CancelledByUser
	case id.IsCompanionOwner(b, companion):
		return models.CancelledByCompanion
	default:
		return models.CancelledByAdmin
	}
}
