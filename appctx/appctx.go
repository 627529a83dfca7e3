// Package appctx holds the storefront state shared by several views: the
// cart, the favorites list, the signed-in user and the pending navigation
// hand-off into the room designer.
//
// A Context is created once at application start and closed at shutdown. It
// is passed explicitly to the views that need it; each view should accept
// the narrowest capability interface it uses ([CartWriter],
// [FavoritesReader], [HandoffReader], ...) rather than *Context.
//
// Context is not safe for concurrent use. All views run on the UI thread.
package appctx

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phanxgames/roomdesigner/catalog"
)

// ErrClosed is returned by every mutating call after Close.
var ErrClosed = errors.New("appctx: context closed")

// User is the signed-in storefront user.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
	Admin bool
}

// CartLine is one product in the cart.
type CartLine struct {
	ID       uuid.UUID
	Product  catalog.Product
	Quantity int
}

// Customization is the color/scale choice made on the product page before
// opening the designer. Zero values mean "not customized".
type Customization struct {
	Color string
	Scale float64
}

// Handoff is the product carried from the product page into the designer.
type Handoff struct {
	Product       catalog.Product
	Customization Customization
}

// CartReader exposes the cart contents.
type CartReader interface {
	Cart() []CartLine
	CartCount() int
	CartTotal() float64
}

// CartWriter mutates the cart.
type CartWriter interface {
	AddToCart(p catalog.Product, quantity int) error
	UpdateCartQuantity(productID, quantity int) error
	RemoveFromCart(productID int) error
}

// FavoritesReader exposes the favorites list.
type FavoritesReader interface {
	Favorites() []catalog.Product
	IsFavorite(productID int) bool
}

// FavoritesWriter mutates the favorites list.
type FavoritesWriter interface {
	AddToFavorites(p catalog.Product) error
	RemoveFromFavorites(productID int) error
}

// Navigator queues a hand-off for the next designer mount.
type Navigator interface {
	OpenInDesigner(h Handoff) error
}

// HandoffReader consumes the pending hand-off. TakeHandoff returns it at
// most once.
type HandoffReader interface {
	TakeHandoff() (Handoff, bool)
}

// Context is the application context.
type Context struct {
	cart      []CartLine
	favorites []catalog.Product
	user      *User
	handoff   *Handoff
	closed    bool
}

// New creates an empty application context.
func New() *Context {
	return &Context{}
}

// Close discards all state. Further mutations return ErrClosed.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.cart = nil
	c.favorites = nil
	c.user = nil
	c.handoff = nil
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool {
	return c.closed
}

// --- Session ---

// Login sets the current user. A nil ID is replaced with a fresh one.
func (c *Context) Login(u User) error {
	if c.closed {
		return ErrClosed
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	c.user = &u
	return nil
}

// Logout clears the current user.
func (c *Context) Logout() {
	c.user = nil
}

// User returns the current user, if any.
func (c *Context) User() (User, bool) {
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// IsAdmin reports whether an admin is signed in.
func (c *Context) IsAdmin() bool {
	return c.user != nil && c.user.Admin
}

// --- Cart ---

// AddToCart adds quantity units of p, merging with an existing line for the
// same product.
func (c *Context) AddToCart(p catalog.Product, quantity int) error {
	if c.closed {
		return ErrClosed
	}
	if quantity < 1 {
		return fmt.Errorf("add product %d to cart: quantity %d must be positive", p.ID, quantity)
	}
	for i := range c.cart {
		if c.cart[i].Product.ID == p.ID {
			c.cart[i].Quantity += quantity
			return nil
		}
	}
	c.cart = append(c.cart, CartLine{ID: uuid.New(), Product: p.Clone(), Quantity: quantity})
	return nil
}

// UpdateCartQuantity sets the quantity of a cart line. A quantity below one
// removes the line.
func (c *Context) UpdateCartQuantity(productID, quantity int) error {
	if c.closed {
		return ErrClosed
	}
	if quantity < 1 {
		return c.RemoveFromCart(productID)
	}
	for i := range c.cart {
		if c.cart[i].Product.ID == productID {
			c.cart[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("update cart: product %d: %w", productID, catalog.ErrNotFound)
}

// RemoveFromCart removes the line for productID. Removing an absent product
// is a no-op.
func (c *Context) RemoveFromCart(productID int) error {
	if c.closed {
		return ErrClosed
	}
	for i := range c.cart {
		if c.cart[i].Product.ID == productID {
			c.cart = append(c.cart[:i], c.cart[i+1:]...)
			return nil
		}
	}
	return nil
}

// Cart returns a copy of the cart lines.
func (c *Context) Cart() []CartLine {
	out := make([]CartLine, len(c.cart))
	for i, l := range c.cart {
		l.Product = l.Product.Clone()
		out[i] = l
	}
	return out
}

// CartCount returns the total number of units in the cart.
func (c *Context) CartCount() int {
	n := 0
	for _, l := range c.cart {
		n += l.Quantity
	}
	return n
}

// CartTotal returns the sum of price times quantity over all lines.
func (c *Context) CartTotal() float64 {
	total := 0.0
	for _, l := range c.cart {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

// --- Favorites ---

// AddToFavorites appends p unless it is already a favorite.
func (c *Context) AddToFavorites(p catalog.Product) error {
	if c.closed {
		return ErrClosed
	}
	if c.IsFavorite(p.ID) {
		return nil
	}
	c.favorites = append(c.favorites, p.Clone())
	return nil
}

// RemoveFromFavorites removes productID from the favorites.
func (c *Context) RemoveFromFavorites(productID int) error {
	if c.closed {
		return ErrClosed
	}
	for i := range c.favorites {
		if c.favorites[i].ID == productID {
			c.favorites = append(c.favorites[:i], c.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

// Favorites returns copies of the favorite products.
func (c *Context) Favorites() []catalog.Product {
	out := make([]catalog.Product, len(c.favorites))
	for i, p := range c.favorites {
		out[i] = p.Clone()
	}
	return out
}

// IsFavorite reports whether productID is a favorite.
func (c *Context) IsFavorite(productID int) bool {
	for _, p := range c.favorites {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// --- Navigation ---

// OpenInDesigner queues h for the next designer mount, replacing any
// pending hand-off.
func (c *Context) OpenInDesigner(h Handoff) error {
	if c.closed {
		return ErrClosed
	}
	h.Product = h.Product.Clone()
	c.handoff = &h
	return nil
}

// TakeHandoff returns and clears the pending hand-off.
func (c *Context) TakeHandoff() (Handoff, bool) {
	if c.handoff == nil {
		return Handoff{}, false
	}
	h := *c.handoff
	c.handoff = nil
	return h, true
}

var (
	_ CartReader      = (*Context)(nil)
	_ CartWriter      = (*Context)(nil)
	_ FavoritesReader = (*Context)(nil)
	_ FavoritesWriter = (*Context)(nil)
	_ Navigator       = (*Context)(nil)
	_ HandoffReader   = (*Context)(nil)
)
