// Package cart consumes the external cart API. The storefront only reads
// and forwards the documented response shapes; cart persistence lives
// behind the API, not here.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 8 * time.Second

// ErrItemNotFound is returned when removing an item the cart does not hold.
var ErrItemNotFound = errors.New("cart: item not found")

// Client issues cart calls against the API service. When baseURL is empty
// the client serves an in-process fake so the storefront works standalone.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	fakes map[string]*Cart
}

// Item is one line in the cart.
type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
}

// Cart mirrors the backend payload for a cart.
type Cart struct {
	ID       string `json:"id"`
	Items    []Item `json:"items"`
	Subtotal int    `json:"subtotal"`
}

// Summary is the header-badge view of a cart.
type Summary struct {
	CartID   string
	Count    int
	Subtotal int
}

// AddItemRequest carries the parameters for adding a product to a cart.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
}

// NewClient constructs a cart API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		fakes:   map[string]*Cart{},
	}
}

// Summary fetches the badge summary for a cart. An empty or unknown cart
// ID yields a zero summary rather than an error; a missing cart is a
// normal state for a new visitor.
func (c *Client) Summary(ctx context.Context, cartID string) (Summary, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return Summary{}, nil
	}
	cart, err := c.Get(ctx, cartID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(cart), nil
}

// Get fetches the full cart.
func (c *Client) Get(ctx context.Context, cartID string) (Cart, error) {
	if c.baseURL == "" {
		return c.fakeGet(cartID), nil
	}

	endpoint, err := url.JoinPath(c.baseURL, "carts", url.PathEscape(cartID))
	if err != nil {
		return Cart{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Cart{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Cart{}, fmt.Errorf("cart: get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Cart{ID: cartID}, nil
	}
	if resp.StatusCode >= 400 {
		return Cart{}, fmt.Errorf("cart: get status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload Cart
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Cart{}, fmt.Errorf("cart: decode: %w", err)
	}
	return payload, nil
}

// AddItem adds a product to the cart, creating the cart when cartID is
// empty, and returns the updated summary (with the possibly new cart ID).
func (c *Client) AddItem(ctx context.Context, cartID string, item AddItemRequest) (Summary, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if c.baseURL == "" {
		return c.fakeAdd(cartID, item), nil
	}

	if strings.TrimSpace(cartID) == "" {
		cartID = uuid.NewString()
	}
	endpoint, err := url.JoinPath(c.baseURL, "carts", url.PathEscape(cartID), "items")
	if err != nil {
		return Summary{}, err
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return Summary{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Summary{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("cart: add item: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Summary{}, fmt.Errorf("cart: add status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var cart Cart
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return Summary{}, fmt.Errorf("cart: decode: %w", err)
	}
	if cart.ID == "" {
		cart.ID = cartID
	}
	return summarize(cart), nil
}

// RemoveItem deletes a line from the cart and returns the updated summary.
func (c *Client) RemoveItem(ctx context.Context, cartID, itemID string) (Summary, error) {
	if c.baseURL == "" {
		return c.fakeRemove(cartID, itemID)
	}

	endpoint, err := url.JoinPath(c.baseURL, "carts", url.PathEscape(cartID), "items", url.PathEscape(itemID))
	if err != nil {
		return Summary{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return Summary{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("cart: remove item: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Summary{}, ErrItemNotFound
	}
	if resp.StatusCode >= 400 {
		return Summary{}, fmt.Errorf("cart: remove status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var cart Cart
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return Summary{}, fmt.Errorf("cart: decode: %w", err)
	}
	return summarize(cart), nil
}

func summarize(cart Cart) Summary {
	s := Summary{CartID: cart.ID, Subtotal: cart.Subtotal}
	for _, item := range cart.Items {
		s.Count += item.Quantity
	}
	if s.Subtotal == 0 {
		for _, item := range cart.Items {
			s.Subtotal += item.Quantity * item.UnitPrice
		}
	}
	return s
}

func (c *Client) fakeGet(cartID string) Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cart, ok := c.fakes[cartID]; ok {
		return *cart
	}
	return Cart{ID: cartID}
}

func (c *Client) fakeAdd(cartID string, item AddItemRequest) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(cartID) == "" {
		cartID = uuid.NewString()
	}
	cart, ok := c.fakes[cartID]
	if !ok {
		cart = &Cart{ID: cartID}
		c.fakes[cartID] = cart
	}
	cart.Items = append(cart.Items, Item{
		ID:        uuid.NewString(),
		ProductID: item.ProductID,
		Title:     item.Title,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	})
	cart.Subtotal += item.Quantity * item.UnitPrice
	return summarize(*cart)
}

func (c *Client) fakeRemove(cartID, itemID string) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart, ok := c.fakes[cartID]
	if !ok {
		return Summary{}, ErrItemNotFound
	}
	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Subtotal -= item.Quantity * item.UnitPrice
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return summarize(*cart), nil
		}
	}
	return Summary{}, ErrItemNotFound
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
