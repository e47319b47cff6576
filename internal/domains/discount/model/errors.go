package model

import "errors"

var (
	ErrDiscountNotFound      = errors.New("discount not found")
	ErrDiscountNotYetActive  = errors.New("discount is not yet active")
	ErrDiscountExpired       = errors.New("discount has expired")
	ErrDiscountNotApplicable = errors.New("discount is not applicable to this product")
	ErrDiscountUsageExceeded = errors.New("discount usage limit reached")
	ErrInvalidValueType      = errors.New("value_type must be 'percentage' or 'fixed'")
	ErrDuplicateCode         = errors.New("discount code already exists")
)
