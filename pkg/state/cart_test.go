package state

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/twoem/whiz-pos-apk/pkg/model"
)

func testProduct(id string, price int64) model.Product {
	return model.Product{ID: id, Name: "p-" + id, Price: decimal.NewFromInt(price), Category: "General"}
}

func TestAddToCartIncrementsExisting(t *testing.T) {
	s := New()
	p := testProduct("P1", 50)

	s.AddToCart(p)
	s.AddToCart(p)

	cart := s.Cart()
	if len(cart) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart[0].Quantity)
	}
	if cart[0].CartID == "" {
		t.Error("cart line has no cartId")
	}

	s.AddToCart(testProduct("P2", 80))
	if len(s.Cart()) != 2 {
		t.Error("different product must get its own line")
	}
}

func TestUpdateCartQuantityFloor(t *testing.T) {
	s := New()
	s.AddToCart(testProduct("P1", 50))
	cartID := s.Cart()[0].CartID

	s.UpdateCartQuantity(cartID, 5)
	if got := s.Cart()[0].Quantity; got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}

	s.UpdateCartQuantity(cartID, 0)
	if len(s.Cart()) != 0 {
		t.Error("quantity 0 must remove the line")
	}

	s.AddToCart(testProduct("P1", 50))
	cartID = s.Cart()[0].CartID
	s.UpdateCartQuantity(cartID, -5)
	if len(s.Cart()) != 0 {
		t.Error("negative quantity must remove the line")
	}
}

func TestUpdateCartQuantityUnknownID(t *testing.T) {
	s := New()
	s.AddToCart(testProduct("P1", 50))

	s.UpdateCartQuantity("nope", 9)

	cart := s.Cart()
	if len(cart) != 1 || cart[0].Quantity != 1 {
		t.Errorf("unknown cartId must be a no-op, cart = %v", cart)
	}
}

func TestRemoveFromCartAndClear(t *testing.T) {
	s := New()
	s.AddToCart(testProduct("P1", 50))
	s.AddToCart(testProduct("P2", 60))

	s.RemoveFromCart(s.Cart()[0].CartID)
	cart := s.Cart()
	if len(cart) != 1 || cart[0].Product.ID != "P2" {
		t.Errorf("RemoveFromCart removed the wrong line: %v", cart)
	}

	s.ClearCart()
	if len(s.Cart()) != 0 {
		t.Error("ClearCart left lines behind")
	}
}
