package state

import (
	"context"
	"time"

	"github.com/adr1ann32323/restorApp/internal/api"
	"github.com/adr1ann32323/restorApp/internal/models"
)

// Orders manages the fetched order collection and the currently selected
// order. Remote failures leave the cached collections unmodified; there is
// no automatic retry. When two status updates race, the last response to
// arrive wins and overwrites the cached entry.
type Orders struct {
	client   *api.Client
	orders   *Subject[[]models.Order]
	selected *Subject[*models.Order]
}

func NewOrders(client *api.Client) *Orders {
	return &Orders{
		client:   client,
		orders:   NewSubject[[]models.Order](nil),
		selected: NewSubject[*models.Order](nil),
	}
}

// List fetches orders (all of them for an ADMIN, own ones for a USER; the
// backend scopes by token) and republishes the result as the current
// collection. Each supplied filter narrows the result.
func (o *Orders) List(ctx context.Context, filters *models.OrderFilters) ([]models.Order, error) {
	orders, err := o.client.ListOrders(ctx, filters)
	if err != nil {
		return nil, err
	}
	o.orders.Publish(orders)
	return orders, nil
}

// Get fetches a single order and republishes it as selected.
func (o *Orders) Get(ctx context.Context, id int) (*models.Order, error) {
	order, err := o.client.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.selected.Publish(order)
	return order, nil
}

// Create places a new order from product ids and quantities; the backend
// computes pricing and the total.
func (o *Orders) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	return o.client.CreateOrder(ctx, req)
}

// UpdateStatus sends the new status (ADMIN operation) and on success
// replaces the matching order in the cached collection, updating the
// selected order if it matches. Transition legality is not checked here.
func (o *Orders) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	updated, err := o.client.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	o.replace(updated)
	return updated, nil
}

// Cancel is semantically a status update to CANCELLED, kept as a distinct
// call because the backend authorizes it differently: a USER may cancel
// their own PENDING order.
func (o *Orders) Cancel(ctx context.Context, id int) (*models.Order, error) {
	updated, err := o.client.CancelOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.replace(updated)
	return updated, nil
}

func (o *Orders) replace(updated *models.Order) {
	o.selected.Publish(updated)

	current := o.orders.Value()
	next := make([]models.Order, len(current))
	copy(next, current)
	for i := range next {
		if next[i].ID == updated.ID {
			next[i] = *updated
		}
	}
	o.orders.Publish(next)
}

// Select republishes order as the selected one; nil clears it.
func (o *Orders) Select(order *models.Order) {
	o.selected.Publish(order)
}

func (o *Orders) ClearSelected() {
	o.selected.Publish(nil)
}

func (o *Orders) Current() []models.Order {
	return o.orders.Value()
}

func (o *Orders) Selected() *models.Order {
	return o.selected.Value()
}

// Subscribe registers fn for collection changes.
func (o *Orders) Subscribe(fn func([]models.Order)) func() {
	return o.orders.Subscribe(fn)
}

// SubscribeSelected registers fn for selected-order changes.
func (o *Orders) SubscribeSelected(fn func(*models.Order)) func() {
	return o.selected.Subscribe(fn)
}

// ComputeStats is a pure function over an already-fetched collection.
// Revenue counts DELIVERED orders only; "today" compares the creation
// timestamp and the current time truncated to local midnight.
func ComputeStats(orders []models.Order) models.OrderStats {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats models.OrderStats
	stats.TotalOrders = len(orders)

	for _, order := range orders {
		createdAt := order.CreatedAt.Local()
		orderDay := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, createdAt.Location())
		isToday := orderDay.Equal(today)

		if isToday {
			stats.TodayOrders++
		}
		switch order.Status {
		case models.StatusPending:
			stats.PendingOrders++
		case models.StatusDelivered:
			stats.TotalRevenue += order.Total
			if isToday {
				stats.TodayRevenue += order.Total
			}
		}
	}
	return stats
}
