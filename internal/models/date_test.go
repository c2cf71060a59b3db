package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	var body struct {
		A *Date `json:"a"`
		B *Date `json:"b"`
		C *Date `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2024-03-05","b":"2024-03-05T10:00:00+02:00","c":null}`), &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !body.A.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("a = %v", body.A.Time)
	}
	if !body.B.Equal(time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("b = %v", body.B.Time)
	}
	if body.C != nil {
		t.Errorf("c = %v, want nil", body.C)
	}

	var bad struct{ D Date }
	if err := json.Unmarshal([]byte(`{"D":"03/05/2024"}`), &bad); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestEnumValidity(t *testing.T) {
	if !CategoryMobilePhones.Valid() || InventoryCategory("Toys").Valid() {
		t.Error("inventory category validity")
	}
	if !PaymentOnline.Valid() || PaymentMethod("Barter").Valid() {
		t.Error("payment method validity")
	}
	if !StaffStockManager.Valid() || StaffRole("Manager").Valid() {
		t.Error("staff role validity")
	}
	if !AttendanceHalfDay.Valid() || AttendanceStatus("Late").Valid() {
		t.Error("attendance status validity")
	}
	if !RestockFulfilled.Terminal() || !RestockRejected.Terminal() || RestockApproved.Terminal() {
		t.Error("restock terminal states")
	}
	if !(Inventory{Quantity: 10, ReorderLevel: 10}).IsLowStock() || (Inventory{Quantity: 11, ReorderLevel: 10}).IsLowStock() {
		t.Error("low stock boundary")
	}
}
