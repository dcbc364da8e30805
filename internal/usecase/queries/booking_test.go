//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"facility-booking/internal/infra"
	"facility-booking/internal/usecase/queries"
	queriesmock "facility-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStore *queriesmock.MockBookingReadStore
	q         queries.BookingQueries
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockBookingReadStore(s.mockCtrl)
	s.q = queries.NewBookingQueries(s.mockStore)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestGetByID() {
	id := uuid.New()

	s.Run("success", func() {
		view := &queries.BookingView{ID: id, ServiceName: "Main Hall"}
		s.mockStore.EXPECT().FindViewByID(gomock.Any(), id).Return(view, nil)

		got, err := s.q.GetByID(context.Background(), id)
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: store not-found becomes ErrBookingNotFound", func() {
		s.mockStore.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := s.q.GetByID(context.Background(), id)
		s.ErrorIs(err, queries.ErrBookingNotFound)
	})

	s.Run("error: other store failures become ErrQueryFailed", func() {
		s.mockStore.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("scan failed", errors.New("boom"), infra.KindDBFailure))

		_, err := s.q.GetByID(context.Background(), id)
		s.ErrorIs(err, queries.ErrQueryFailed)
	})
}

func (s *BookingQueriesTestSuite) TestStats() {
	s.Run("success: tagged states fold into status and payment groupings", func() {
		s.mockStore.EXPECT().CountByState(gomock.Any()).Return(map[string]int64{
			"pending_unpaid":             3,
			"pending_paid":               1,
			"confirmed_awaiting_payment": 2,
			"confirmed_paid":             4,
			"completed":                  5,
			"cancelled":                  1,
		}, nil)

		stats, err := s.q.Stats(context.Background())
		s.Require().NoError(err)
		s.Equal(int64(16), stats.Total)
		s.Equal(int64(4), stats.ByStatus["pending"])
		s.Equal(int64(6), stats.ByStatus["confirmed"])
		s.Equal(int64(5), stats.ByStatus["completed"])
		s.Equal(int64(1), stats.ByStatus["cancelled"])
		s.Equal(int64(10), stats.ByPaymentStatus["paid"])
		s.Equal(int64(6), stats.ByPaymentStatus["unpaid"])
	})

	s.Run("success: empty store yields zeroed stats", func() {
		s.mockStore.EXPECT().CountByState(gomock.Any()).Return(map[string]int64{}, nil)

		stats, err := s.q.Stats(context.Background())
		s.Require().NoError(err)
		s.Equal(int64(0), stats.Total)
		s.Empty(stats.ByStatus)
	})
}
