package models

import (
	"errors"
)

var (
	ErrNoRecord              = errors.New("models: no matching record found")
	ErrUserNotFound          = errors.New("models: user not found")
	ErrListingNotFound       = errors.New("listing not found")
	ErrResponseNotFound      = errors.New("response not found")
	ErrOfferNotFound         = errors.New("offer not found")
	ErrMessageNotFound       = errors.New("message not found")
	ErrForbidden             = errors.New("forbidden")
	ErrRoleMismatch          = errors.New("caller role does not allow this action")
	ErrNotPending            = errors.New("status is not pending")
	ErrListingNotActive      = errors.New("listing is not active")
	ErrDuplicatePendingOffer = errors.New("pending offer already exists for this blogger")
	ErrReasonRequired        = errors.New("rejection reason is required")
	ErrEmptyContent          = errors.New("message content is empty")
)
