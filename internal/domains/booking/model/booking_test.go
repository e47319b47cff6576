package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusWaitingList, false},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusPending, false},
		{StatusActive, StatusActive, false},
		{StatusCancelled, StatusActive, true},
		{StatusCancelled, StatusPending, false},
		{StatusWaitingList, StatusActive, true},
		{StatusWaitingList, StatusCancelled, true},
		{StatusWaitingList, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestProductTypeIsValid(t *testing.T) {
	assert.True(t, ProductBirthdayParty.IsValid())
	assert.True(t, ProductOneToOne.IsValid())
	assert.True(t, ProductHolidayCamp.IsValid())
	assert.False(t, ProductType("after_school").IsValid())
}

func TestProductConfigCapability(t *testing.T) {
	assert.False(t, BirthdayPartyProduct.HasCapacity)
	assert.False(t, OneToOneProduct.HasCapacity)
	assert.True(t, HolidayCampProduct.HasCapacity)
	assert.Equal(t, "holiday_camp", HolidayCampProduct.DiscountTarget)
}

func TestSeatCount(t *testing.T) {
	b := &Booking{Students: []Student{{}, {}, {}}}
	assert.Equal(t, 3, b.SeatCount())
}
