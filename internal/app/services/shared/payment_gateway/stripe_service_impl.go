package payment_gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lessonbook-service/internal/app/config"
	"lessonbook-service/internal/app/contracts"
	"lessonbook-service/internal/pkg/constvars"
	"lessonbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// stripeService creates hosted checkout sessions on the Stripe REST API. The
// API takes form-encoded bodies and authenticates with the secret key as a
// bearer token. All outbound calls share one rate limiter so bursts of
// checkouts do not trip the gateway's request limit.
type stripeService struct {
	baseUrl    string
	secretKey  string
	successUrl string
	cancelUrl  string
	client     *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewStripeService(internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.PaymentGatewayService, error) {
	rps := internalConfig.PaymentGateway.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &stripeService{
		baseUrl:    strings.TrimRight(internalConfig.PaymentGateway.BaseUrl, "/"),
		secretKey:  internalConfig.PaymentGateway.SecretKey,
		successUrl: internalConfig.PaymentGateway.SuccessUrl,
		cancelUrl:  internalConfig.PaymentGateway.CancelUrl,
		client:     &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		log:        logger,
	}, nil
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type gatewayErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *stripeService) CreateCheckoutSession(ctx context.Context, input *contracts.CreateCheckoutSessionInput) (*contracts.CreateCheckoutSessionOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("stripeService.CreateCheckoutSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, input.BookingID),
	)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", input.BookingID)
	form.Set("success_url", s.successUrl)
	form.Set("cancel_url", s.cancelUrl)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", input.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(input.AmountCents))
	form.Set("line_items[0][price_data][product_data][name]", input.Description)

	endpoint := s.baseUrl + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, exceptions.ErrPaymentGatewayRejected(readErr)
		}

		var gatewayErr gatewayErrorResponse
		if err := json.Unmarshal(bodyBytes, &gatewayErr); err == nil && gatewayErr.Error.Message != "" {
			return nil, exceptions.ErrPaymentGatewayRejected(fmt.Errorf("%s: %s", gatewayErr.Error.Type, gatewayErr.Error.Message))
		}
		return nil, exceptions.ErrPaymentGatewayRejected(fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}

	var session checkoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, exceptions.ErrDecodeUpstreamResponse(err)
	}

	return &contracts.CreateCheckoutSessionOutput{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
