package chipsandguac

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
)

// actionResponse is the envelope every action endpoint answers with.
type actionResponse struct {
	IsSuccessful bool   `json:"IsSuccessful"`
	Message      string `json:"Message"`
}

type copyOrderResponse struct {
	actionResponse
	Id int64 `json:"Id"`
}

type pickupTimeOption struct {
	Text  string `json:"Text"`
	Value string `json:"Value"`
}

type pickupTimesResponse struct {
	actionResponse
	SelectList []pickupTimeOption `json:"SelectList"`
}

// EnsureAuthenticated logs in with the configured credentials unless the
// session already holds a live auth cookie. Calling it while authenticated
// issues no requests.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:EnsureAuthenticated")
	defer span.End()

	if c.IsAuthenticated() {
		return nil
	}
	if c.email == "" {
		err := &ConfigurationError{Field: "email"}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.DebugContext(ctx, "logging in", "email", c.email)

	page, err := c.getPage(ctx, "/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch home page")
		return err
	}
	token, err := requireActionToken(page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	payload := map[string]any{
		"model": map[string]string{
			"Email":    c.email,
			"Password": c.password,
		},
	}
	body, err := c.postAction(ctx, "/Account/LogOn", token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "login request failed")
		return err
	}

	var res actionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if !res.IsSuccessful {
		err := &AuthenticationError{Message: res.Message}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.DebugContext(ctx, "login success")
	return nil
}

// addToOrderToken fetches the location home page and extracts the token
// guarding order mutations.
func (c *Client) addToOrderToken(ctx context.Context) (string, error) {
	if c.locationId == 0 {
		return "", &ConfigurationError{Field: "locationId"}
	}
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return "", err
	}
	page, err := c.getPage(ctx, fmt.Sprintf("/MealAuth/Index/%d", c.locationId))
	if err != nil {
		return "", err
	}
	return requireActionToken(page)
}

// initOrder guarantees a clean slate before a new order is opened: the
// account holds at most one in-progress order, so any existing one is
// cancelled. No-op once this client has opened an order of its own.
func (c *Client) initOrder(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:initOrder")
	defer span.End()

	if c.currentOrderId != 0 {
		return nil
	}

	token, err := c.addToOrderToken(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	_, err = c.postAction(ctx, "/Order/CancelOrder", token, nil)
	if err != nil {
		span.SetStatus(codes.Error, "cancel order failed")
		return err
	}

	slog.DebugContext(ctx, "order initialized")
	return nil
}

// GetOrders returns the favorite and recent orders on the user's profile at
// the configured location.
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	ctx, span := tracer.Start(ctx, "client:GetOrders")
	defer span.End()

	if c.locationId == 0 {
		err := &ConfigurationError{Field: "locationId"}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}

	page, err := c.getPage(ctx, fmt.Sprintf("/MealAuth/Index/%d", c.locationId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch location home page")
		return nil, err
	}
	return parseOrderHistory(page)
}

// addOrderToBag copies the items of a past order into a new order and
// remembers the new order's id.
func (c *Client) addOrderToBag(ctx context.Context, pastOrderId int64) error {
	ctx, span := tracer.Start(ctx, "client:addOrderToBag")
	defer span.End()

	if c.locationId == 0 {
		return &ConfigurationError{Field: "locationId"}
	}
	if err := c.initOrder(ctx); err != nil {
		return err
	}
	token, err := c.addToOrderToken(ctx)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"pastOrderId":      pastOrderId,
		"newOrderId":       0,
		"restaurantNumber": c.locationId,
		"sendToCheckout":   false,
	}
	body, err := c.postAction(ctx, "/Order/SaveOrderCopy", token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "copy order request failed")
		return err
	}

	var res copyOrderResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if !res.IsSuccessful {
		return fmt.Errorf("copying order %d failed", pastOrderId)
	}
	if res.Id == 0 {
		// the site reports success with id 0 when the restaurant
		// cannot take the order right now
		err := &OrderUnavailableError{PastOrderId: pastOrderId}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	c.currentOrderId = res.Id
	slog.DebugContext(ctx, "items copied to new order",
		"past_order_id", pastOrderId,
		"order_id", res.Id,
	)
	return nil
}

// selectPayment marks the current order as pay-in-store.
func (c *Client) selectPayment(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:selectPayment")
	defer span.End()

	if c.currentOrderId == 0 {
		return ErrNoOpenOrder
	}

	paymentPath := fmt.Sprintf("/Payment/Index/%d/%d", c.locationId, c.currentOrderId)
	page, err := c.getPage(ctx, paymentPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch payment page")
		return err
	}
	token, err := requireActionToken(page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	payload := map[string]any{
		"restaurantNumber": c.locationId,
		"orderId":          c.currentOrderId,
		// pay in store, no card on file
		"selectedCardId": "00000000-0000-0000-0000-000000000000",
	}
	body, err := c.postAction(ctx, paymentPath, token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "payment request failed")
		return err
	}

	var res actionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if !res.IsSuccessful {
		err := &PaymentError{Message: res.Message}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.DebugContext(ctx, "pay in store selected")
	return nil
}

// reviewOrder snapshots the review page together with the pickup times the
// site offers for it. The pickup-times call is guarded by the token of the
// very review page it is correlated with.
func (c *Client) reviewOrder(ctx context.Context) (OrderReview, error) {
	ctx, span := tracer.Start(ctx, "client:reviewOrder")
	defer span.End()

	if c.currentOrderId == 0 {
		return OrderReview{}, ErrNoOpenOrder
	}

	page, err := c.getPage(ctx, fmt.Sprintf("/PlaceOrder/Index/%d/%d", c.locationId, c.currentOrderId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch review page")
		return OrderReview{}, err
	}
	token, err := requireActionToken(page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return OrderReview{}, err
	}

	payload := map[string]any{
		"restaurantNumber": c.locationId,
		"orderId":          c.currentOrderId,
	}
	body, err := c.postAction(ctx, "/PlaceOrder/AvailablePickupTimes", token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "pickup times request failed")
		return OrderReview{}, err
	}

	var res pickupTimesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return OrderReview{}, err
	}
	if !res.IsSuccessful {
		err := &ReviewError{Message: res.Message}
		span.SetStatus(codes.Error, err.Error())
		return OrderReview{}, err
	}

	return parseOrderReview(page, res)
}

func (c *Client) verifyPhoneNumber(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "client:verifyPhoneNumber")
	defer span.End()

	if c.phoneNumber == "" {
		err := &ConfigurationError{Field: "phoneNumber"}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	payload := map[string]string{"phoneNumber": c.phoneNumber}
	body, err := c.postAction(ctx, "/PlaceOrder/VerifyPhone", token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "verify phone request failed")
		return err
	}

	var res actionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if !res.IsSuccessful {
		err := &VerificationError{Message: res.Message}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.DebugContext(ctx, "phone number verified")
	return nil
}

// placeCurrentOrder verifies the phone number and submits the current order
// for the chosen pickup time.
func (c *Client) placeCurrentOrder(ctx context.Context, pickupTime string) error {
	ctx, span := tracer.Start(ctx, "client:placeCurrentOrder")
	defer span.End()

	if c.currentOrderId == 0 {
		return ErrNoOpenOrder
	}

	placePath := fmt.Sprintf("/PlaceOrder/Index/%d/%d", c.locationId, c.currentOrderId)
	page, err := c.getPage(ctx, placePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch place order page")
		return err
	}
	token, err := requireActionToken(page)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := c.verifyPhoneNumber(ctx, token); err != nil {
		return err
	}

	payload := map[string]any{
		"orderId":            c.currentOrderId,
		"pickupTimeInterval": pickupTime,
		"restaurantNumber":   c.locationId,
	}
	body, err := c.postAction(ctx, placePath, token, payload)
	if err != nil {
		span.SetStatus(codes.Error, "place order request failed")
		return err
	}

	var res actionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return err
	}
	if !res.IsSuccessful {
		err := &PlacementError{Message: res.Message}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.InfoContext(ctx, "order placed",
		"order_id", c.currentOrderId,
		"pickup_time", pickupTime,
	)
	return nil
}

// Receipt summarizes an order that went through review, and placement
// unless preview was requested.
type Receipt struct {
	Location   string
	PickupTime string
	Items      []ReviewItem
}

// SubmitPreviousOrder re-places a past order end to end: copy it into a new
// order, select pay-in-store, review it, then place it at pickupTime. An
// empty pickupTime picks the first slot the site offered. With preview set
// the final placement is skipped and the receipt reflects the review only.
//
// A failure partway through leaves any order already opened on the account
// as-is; the site has no transactional semantics to roll it back with.
func (c *Client) SubmitPreviousOrder(ctx context.Context, pastOrderId int64, preview bool, pickupTime string) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "client:SubmitPreviousOrder")
	defer span.End()

	if err := c.addOrderToBag(ctx, pastOrderId); err != nil {
		return Receipt{}, err
	}
	if err := c.selectPayment(ctx); err != nil {
		return Receipt{}, err
	}
	review, err := c.reviewOrder(ctx)
	if err != nil {
		return Receipt{}, err
	}

	if pickupTime == "" {
		if len(review.PickupTimes) == 0 {
			err := &ReviewError{Message: "no pickup times offered"}
			span.SetStatus(codes.Error, err.Error())
			return Receipt{}, err
		}
		pickupTime = review.PickupTimes[0]
		slog.DebugContext(ctx, "using first available pickup time", "pickup_time", pickupTime)
	}

	receipt := Receipt{
		Location:   review.Location,
		PickupTime: pickupTime,
		Items:      review.Items,
	}
	if preview {
		slog.DebugContext(ctx, "preview enabled, skipping placement")
		return receipt, nil
	}

	if err := c.placeCurrentOrder(ctx, pickupTime); err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}
