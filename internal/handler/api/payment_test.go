//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"facility-booking/internal/handler/api"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/commands"
	"facility-booking/tests/common/builder"
	"facility-booking/tests/common/httptest"
	commandsmock "facility-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)

	s.router.POST("/bookings/:id/payment-intent", s.handler.CreateEmbeddedIntent)
	s.router.GET("/payments/verify", s.handler.VerifyPayment)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestCreateEmbeddedIntent
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCreateEmbeddedIntent() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/payment-intent"

	s.Run("success: returns 201 Created with the client secret", func() {
		s.mockCommands.EXPECT().CreateEmbeddedIntent(gomock.Any(), bookingID).
			Return(&commands.PaymentIntent{IntentID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("pi_test_123", response.IntentID)
		s.Equal("pi_test_123_secret", response.ClientSecret)
	})

	s.Run("error: 409 Conflict once the booking left the pending state", func() {
		s.mockCommands.EXPECT().CreateEmbeddedIntent(gomock.Any(), bookingID).
			Return(nil, commands.ErrInvalidBookingState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Operation not allowed in current booking state")
	})

	s.Run("error: 404 Not Found for unknown booking", func() {
		s.mockCommands.EXPECT().CreateEmbeddedIntent(gomock.Any(), bookingID).
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 Bad Request for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/payment-intent", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestVerifyPayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestVerifyPayment() {
	const reference = "cs_test_123"
	url := "/payments/verify?reference=" + reference

	returnView := builder.NewBookingBuilder().BuildViewQuery()

	s.Run("success: settled payment returns the booking view", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reference).
			Return(&commands.VerifyPaymentResult{Completed: true, Booking: returnView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Completed)
		s.Require().NotNil(response.Booking)
		s.Equal(returnView.ID, response.Booking.ID)
	})

	s.Run("success: unpaid session is 200 OK with completed=false", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reference).
			Return(&commands.VerifyPaymentResult{Completed: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Completed)
		s.Nil(response.Booking)
	})

	s.Run("error: 409 Conflict when the paid reference has no booking", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reference).
			Return(nil, commands.ErrPaymentRecordMissing).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Payment verified but no matching booking exists")
	})

	s.Run("error: 502 Bad Gateway on provider outage", func() {
		s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reference).
			Return(nil, commands.ErrPaymentGatewayFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment provider is unavailable")
	})

	s.Run("error: 400 Bad Request without a reference", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "reference is required")
	})
}
