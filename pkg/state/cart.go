package state

import "github.com/twoem/whiz-pos-apk/pkg/model"

// AddToCart adds one unit of the product. If a line for the same
// product id already exists its quantity is incremented; otherwise a
// new line with a fresh cartId is appended.
func (s *Store) AddToCart(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == p.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, model.CartLine{
		Product:  p,
		CartID:   model.NewCartID(),
		Quantity: 1,
	})
}

// UpdateCartQuantity sets a line's quantity. A quantity <= 0 removes
// the line; an unknown cartId is a silent no-op.
func (s *Store) UpdateCartQuantity(cartID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].CartID != cartID {
			continue
		}
		if quantity <= 0 {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
		} else {
			s.cart[i].Quantity = quantity
		}
		return
	}
}

// RemoveFromCart deletes the line with the given cartId.
func (s *Store) RemoveFromCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].CartID == cartID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartLine(nil), s.cart...)
}
