package esi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/shared"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// regionOrder mirrors one entry of GET /markets/{region_id}/orders/
type regionOrder struct {
	OrderID      int64   `json:"order_id"`
	TypeID       int64   `json:"type_id"`
	LocationID   int64   `json:"location_id"`
	IsBuyOrder   bool    `json:"is_buy_order"`
	Price        float64 `json:"price"`
	VolumeRemain int64   `json:"volume_remain"`
}

// OrderRepository implements market.OrderSource against the ESI market
// orders endpoint. Orders are fetched per region (ESI has no per-station
// endpoint) and reduced to the order books of the hub stations.
type OrderRepository struct {
	client *Client
	clock  shared.Clock
}

// NewOrderRepository creates an ESI-backed order source.
// If clock is nil, uses RealClock.
func NewOrderRepository(client *Client, clock shared.Clock) *OrderRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &OrderRepository{client: client, clock: clock}
}

// FetchSnapshot pulls all market orders for the hubs' regions, keeps the
// orders sitting at a hub station for a tracked item, and materializes them
// as a snapshot stamped with the current time.
func (r *OrderRepository) FetchSnapshot(ctx context.Context, hubs []*universe.Hub, items []*market.Item, ttl time.Duration) (*market.Snapshot, error) {
	stationToHub := make(map[int64]int64, len(hubs))
	regions := make(map[int64]bool, len(hubs))
	for _, hub := range hubs {
		stationToHub[hub.StationID] = hub.SystemID
		regions[hub.RegionID] = true
	}

	tracked := make(map[int64]bool, len(items))
	for _, item := range items {
		tracked[item.TypeID] = true
	}

	books := make(map[int64]market.HubBooks, len(hubs))
	for _, hub := range hubs {
		books[hub.SystemID] = make(market.HubBooks)
	}

	for regionID := range regions {
		orders, err := r.fetchRegionOrders(ctx, regionID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch orders for region %d: %w", regionID, err)
		}

		for _, order := range orders {
			hubSystemID, atHub := stationToHub[order.LocationID]
			if !atHub || !tracked[order.TypeID] {
				continue
			}
			if order.Price <= 0 || order.VolumeRemain <= 0 {
				continue
			}

			book := books[hubSystemID][order.TypeID]
			quote := market.Quote{Price: order.Price, Quantity: order.VolumeRemain}
			if order.IsBuyOrder {
				book.Bids = append(book.Bids, quote)
			} else {
				book.Asks = append(book.Asks, quote)
			}
			books[hubSystemID][order.TypeID] = book
		}
	}

	return market.NewSnapshot(books, r.clock.Now(), ttl)
}

// fetchRegionOrders pages through all orders of a region. The first page
// reports the total page count in the X-Pages header.
func (r *OrderRepository) fetchRegionOrders(ctx context.Context, regionID int64) ([]regionOrder, error) {
	path := fmt.Sprintf("/markets/%d/orders/", regionID)

	var all []regionOrder
	page := 1
	for {
		query := url.Values{}
		query.Set("order_type", "all")
		query.Set("page", strconv.Itoa(page))

		var orders []regionOrder
		pages, err := r.client.get(ctx, path, query, &orders)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)

		if page >= pages {
			break
		}
		page++
	}
	return all, nil
}
