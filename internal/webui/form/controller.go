// Package form holds the web UI's editable draft and transient notices.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/acmeshop/catalog/internal/webui/client"
	"github.com/shopspring/decimal"
)

// DefaultNoticeTTL is how long a transient notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

var errFieldsRequired = errors.New("all fields are required")

// ProductCache is the subset of the state cache the controller needs.
type ProductCache interface {
	Submit(ctx context.Context, fields client.ProductFields, editID *int64) (*client.Product, error)
	Remove(ctx context.Context, id int64) error
}

// Draft is the in-progress create/edit record. Field values are kept as the
// raw form strings so that a failed submit can present them back unchanged.
// EditID is set when the draft was loaded from an existing product.
type Draft struct {
	EditID      *int64
	Name        string
	Description string
	Price       string
	Quantity    string
}

// NoticeKind distinguishes success banners from error banners.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Controller owns the form draft and the transient notices. Each new notice
// replaces the previous one and restarts the expiry timer.
type Controller struct {
	mu     sync.Mutex
	cache  ProductCache
	ttl    time.Duration
	draft  Draft
	notice *Notice
	timer  *time.Timer
}

// NewController creates a Controller over the given cache. A ttl of 0 means
// DefaultNoticeTTL.
func NewController(cache ProductCache, ttl time.Duration) *Controller {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Controller{
		cache: cache,
		ttl:   ttl,
	}
}

// Draft returns the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Notice returns the current notice, or nil if none is showing.
func (c *Controller) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// Edit replaces the draft with the given product's current field values.
// The ID is kept only for addressing the update on submit.
func (c *Controller) Edit(p client.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := p.ID
	c.draft = Draft{
		EditID:      &id,
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.NewFromFloat(p.Price).StringFixed(2),
		Quantity:    strconv.FormatInt(p.Quantity, 10),
	}
}

// SetFields updates the draft's field values from submitted form input,
// preserving the edit target.
func (c *Controller) SetFields(name, description, price, quantity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.Name = name
	c.draft.Description = description
	c.draft.Price = price
	c.draft.Quantity = quantity
}

// Submit validates the draft and sends it through the cache: an update when
// the draft holds an edit target, a create otherwise. On success the draft
// is cleared and a success notice raised; on failure the draft is kept so
// the user can correct it, and the error notice carries the cause.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields, err := c.draft.parse()
	if err != nil {
		c.setNotice(NoticeError, fmt.Sprintf("Error submitting product: %s", err))
		return err
	}

	if _, err := c.cache.Submit(ctx, *fields, c.draft.EditID); err != nil {
		c.setNotice(NoticeError, fmt.Sprintf("Error submitting product: %s", err))
		return err
	}

	c.draft = Draft{}
	c.setNotice(NoticeSuccess, "Product submitted successfully!")
	return nil
}

// Delete removes the product with the given ID through the cache and raises
// the matching notice. The "deleted" notice is only shown for a confirmed
// delete; a failure shows an error notice instead.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.cache.Remove(ctx, id); err != nil {
		c.setNotice(NoticeError, "Error deleting product")
		return err
	}
	c.setNotice(NoticeSuccess, "Product deleted successfully!")
	return nil
}

// Close stops the notice expiry timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.notice = nil
}

// setNotice replaces the current notice and restarts the expiry timer.
// Callers must hold c.mu.
func (c *Controller) setNotice(kind NoticeKind, message string) {
	if c.timer != nil {
		c.timer.Stop()
	}
	n := &Notice{Kind: kind, Message: message}
	c.notice = n
	c.timer = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// An expired timer that lost the race to Stop must not clear a
		// newer notice.
		if c.notice == n {
			c.notice = nil
		}
	})
}

// parse validates presence of all four fields and converts the numeric ones.
// Presence is existence, not truthiness: a price or quantity of 0 is valid.
func (d *Draft) parse() (*client.ProductFields, error) {
	if d.Name == "" || d.Description == "" || d.Price == "" || d.Quantity == "" {
		return nil, errFieldsRequired
	}
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", d.Price)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	quantity, err := strconv.ParseInt(d.Quantity, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", d.Quantity)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	return &client.ProductFields{
		Name:        d.Name,
		Description: d.Description,
		Price:       price.InexactFloat64(),
		Quantity:    quantity,
	}, nil
}
