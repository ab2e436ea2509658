package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestBuildOrderFromRequestDefaults(t *testing.T) {
	req := createOrderRequest{
		CustomerName: "  Rahim Uddin ",
		Phone:        "01712345678",
		Address: createOrderAddressRequest{
			Street:   "12/A Mirpur Road",
			District: "Dhaka",
			Thana:    "Dhanmondi",
		},
		PaymentMethod: "bkash",
		Items: []createOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 2},
		},
	}

	order, err := buildOrderFromRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.CustomerName != "Rahim Uddin" {
		t.Errorf("expected trimmed customer name, got %q", order.CustomerName)
	}
	if order.OrderStatus != models.OrderPending {
		t.Errorf("expected pending order status, got %q", order.OrderStatus)
	}
	if order.PaymentStatus != models.PaymentPending {
		t.Errorf("expected pending payment status, got %q", order.PaymentStatus)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("expected one item with quantity 2, got %+v", order.Items)
	}
}

func TestBuildOrderFromRequestRejectsBadProductID(t *testing.T) {
	req := createOrderRequest{
		CustomerName:  "Rahim",
		Phone:         "01712345678",
		PaymentMethod: "cod",
		Items: []createOrderItemRequest{
			{ProductID: "not-an-object-id", Quantity: 1},
		},
	}

	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for invalid productId")
	}
}

func TestBuildOrderFromRequestRejectsDuplicateProduct(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	req := createOrderRequest{
		CustomerName:  "Rahim",
		Phone:         "01712345678",
		PaymentMethod: "cod",
		Items: []createOrderItemRequest{
			{ProductID: id, Quantity: 1},
			{ProductID: id, Quantity: 3},
		},
	}

	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for duplicate productId")
	}
}

func TestTrackingForKnownStatus(t *testing.T) {
	tracking := trackingFor(models.OrderProcessing)
	if tracking.CurrentIndex != 2 {
		t.Errorf("expected index 2 for processing, got %d", tracking.CurrentIndex)
	}
	if tracking.Cancelled {
		t.Error("processing must not render as cancelled")
	}
	if len(tracking.Stages) != 5 {
		t.Errorf("expected 5 display stages, got %d", len(tracking.Stages))
	}
}

func TestTrackingForUnknownStatusDoesNotBreak(t *testing.T) {
	// a value stored before enum enforcement renders as position unknown
	tracking := trackingFor(models.OrderStatus("shiped"))
	if tracking.CurrentIndex != -1 {
		t.Errorf("expected -1 for unknown status, got %d", tracking.CurrentIndex)
	}
	if tracking.Cancelled {
		t.Error("unknown status must not render as cancelled")
	}
}

func TestTrackingForCancelled(t *testing.T) {
	tracking := trackingFor(models.OrderCancelled)
	if tracking.CurrentIndex != -1 {
		t.Errorf("cancelled sits outside the linear sequence, got index %d", tracking.CurrentIndex)
	}
	if !tracking.Cancelled {
		t.Error("expected cancelled flag")
	}
}
