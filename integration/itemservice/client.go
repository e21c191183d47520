package itemservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
	"github.com/dmitrymomot/itemdesk/pkg/jwt"
)

// ServiceName is the fully-qualified Connect service of the item API.
const ServiceName = "item.v1.ItemService"

var (
	ErrMissingID   = errors.New("itemservice: item id is required")
	ErrMissingName = errors.New("itemservice: item name is required")
	ErrNoItem      = errors.New("itemservice: response carries no item")
)

// Caller is the transport used by Client; *rpc.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, service, method string, req, resp any, opts ...rpc.CallOption) error
}

// Filters narrow List. Zero values do not filter.
type Filters struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Statuses    []Status `json:"statuses,omitempty"`
}

func (f Filters) empty() bool {
	return f.Name == "" && f.Description == "" && len(f.Statuses) == 0
}

// Client calls the item service on behalf of the signed-in user. The bearer
// token is read from the auth facade of the call context on every call.
type Client struct {
	caller Caller
	now    func() time.Time
}

func New(caller Caller) *Client {
	return &Client{caller: caller, now: time.Now}
}

type (
	listRequest struct {
		Filters *Filters `json:"filters,omitempty"`
	}
	listResponse struct {
		Items      []Item `json:"items"`
		TotalCount int    `json:"totalCount"`
	}
	getRequest struct {
		ID string `json:"id"`
	}
	createRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      Status `json:"status,omitempty"`
	}
	updateRequest struct {
		ID          string  `json:"id"`
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		Status      *Status `json:"status,omitempty"`
	}
	itemResponse struct {
		Item *Item `json:"item"`
	}
)

// List returns the items matching f and the total count reported by the service.
func (c *Client) List(ctx context.Context, f Filters) ([]Item, int, error) {
	req := listRequest{}
	if !f.empty() {
		req.Filters = &f
	}

	var resp listResponse
	if err := c.call(ctx, "ListItems", req, &resp, rpc.Idempotent()); err != nil {
		return nil, 0, err
	}
	if resp.Items == nil {
		resp.Items = []Item{}
	}
	return resp.Items, resp.TotalCount, nil
}

func (c *Client) Get(ctx context.Context, id string) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, ErrMissingID
	}
	return c.itemCall(ctx, "GetItem", getRequest{ID: id}, rpc.Idempotent())
}

// Create adds an item. The service stores it as a draft.
func (c *Client) Create(ctx context.Context, name, description string) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, ErrMissingName
	}
	return c.itemCall(ctx, "CreateItem", createRequest{Name: name, Description: description})
}

// Update replaces name and description of an item.
func (c *Client) Update(ctx context.Context, id, name, description string) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, ErrMissingID
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, ErrMissingName
	}
	return c.itemCall(ctx, "UpdateItem", updateRequest{ID: id, Name: &name, Description: &description})
}

// SetStatus changes only the status of an item.
func (c *Client) SetStatus(ctx context.Context, id string, status Status) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, ErrMissingID
	}
	return c.itemCall(ctx, "UpdateItem", updateRequest{ID: id, Status: &status})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	return c.call(ctx, "DeleteItem", getRequest{ID: id}, nil)
}

func (c *Client) itemCall(ctx context.Context, method string, req any, opts ...rpc.CallOption) (Item, error) {
	var resp itemResponse
	if err := c.call(ctx, method, req, &resp, opts...); err != nil {
		return Item{}, err
	}
	if resp.Item == nil {
		return Item{}, ErrNoItem
	}
	return *resp.Item, nil
}

func (c *Client) call(ctx context.Context, method string, req, resp any, opts ...rpc.CallOption) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	return c.caller.Call(ctx, ServiceName, method, req, resp, append(opts, rpc.BearerToken(token))...)
}

// token returns the current access token. A token whose exp claim has
// passed is rejected locally, since the service would refuse it anyway.
func (c *Client) token(ctx context.Context) (string, error) {
	f, err := auth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	token := f.AccessToken()
	if claims, err := jwt.Inspect(token); err == nil && claims.Expired(c.now()) {
		return "", ErrSessionExpired
	}
	return token, nil
}

// ErrSessionExpired is returned without calling the service when the access
// token is already expired.
var ErrSessionExpired = &rpc.Error{
	Code:    rpc.CodeUnauthenticated,
	Message: "Your session has expired. Refresh it or sign in again.",
}
