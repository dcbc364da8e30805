//go:build unit

package commands_test

import (
	"context"
	"testing"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/usecase/commands"
	"facility-booking/tests/common/builder"
	commandsmock "facility-booking/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityCheckerTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *commandsmock.MockBookingRepository
	checker  commands.AvailabilityChecker
}

func (s *AvailabilityCheckerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = commandsmock.NewMockBookingRepository(s.mockCtrl)
	s.checker = commands.NewAvailabilityChecker(s.mockRepo)
}

func (s *AvailabilityCheckerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityCheckerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityCheckerTestSuite))
}

func (s *AvailabilityCheckerTestSuite) TestIntervalService() {
	b := builder.NewBookingBuilder()
	slot := b.BuildSlot()

	s.Run("success: free slot passes", func() {
		s.mockRepo.EXPECT().ActiveIntervalsByDate(gomock.Any(), b.Date).Return(nil, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, b.People, uuid.Nil)
		s.NoError(err)
	})

	s.Run("error: overlapping slot reports the blocking booking", func() {
		holder := uuid.New()
		s.mockRepo.EXPECT().ActiveIntervalsByDate(gomock.Any(), b.Date).Return([]booking.Interval{
			{BookingID: holder, Slot: slot},
		}, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, b.People, uuid.Nil)
		s.Require().ErrorIs(err, commands.ErrSlotConflict)
		var conflict *commands.SlotConflictError
		s.Require().ErrorAs(err, &conflict)
		s.Equal(holder, conflict.ConflictingID)
	})

	s.Run("success: a booking never collides with its own interval", func() {
		self := uuid.New()
		s.mockRepo.EXPECT().ActiveIntervalsByDate(gomock.Any(), b.Date).Return([]booking.Interval{
			{BookingID: self, Slot: slot},
		}, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, b.People, self)
		s.NoError(err)
	})
}

func (s *AvailabilityCheckerTestSuite) TestStockService() {
	ceiling := int32(20)
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.StockCeiling = &ceiling
	})
	slot := b.BuildSlot()

	s.Run("success: request within the ceiling", func() {
		s.mockRepo.EXPECT().ActiveUnitsByService(gomock.Any(), b.ServiceID, uuid.Nil).Return(10, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, 10, uuid.Nil)
		s.NoError(err)
	})

	s.Run("error: request past the ceiling", func() {
		s.mockRepo.EXPECT().ActiveUnitsByService(gomock.Any(), b.ServiceID, uuid.Nil).Return(15, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, 10, uuid.Nil)
		s.ErrorIs(err, commands.ErrStockExhausted)
	})

	s.Run("success: a resized booking is not counted against itself", func() {
		self := uuid.New()
		// The store is asked for units excluding this booking's own.
		s.mockRepo.EXPECT().ActiveUnitsByService(gomock.Any(), b.ServiceID, self).Return(5, nil)

		err := s.checker.Check(context.Background(), b.BuildService(), b.Date, slot, 18, self)
		s.NoError(err)
	})
}
