package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toPosition(p kernel.GeoPoint) Position {
	return Position{Lat: p.Lat(), Lng: p.Lng()}
}

type OrderStatusResponse struct {
	OrderID              string `json:"order_id"`
	Status               string `json:"status,omitempty"`
	AlreadyProcessed     bool   `json:"already_processed"`
	NotificationFailures int    `json:"notification_failures,omitempty"`
}

func toOrderStatus(orderID kernel.UUID, status string, outcome commands.Outcome) OrderStatusResponse {
	return OrderStatusResponse{
		OrderID:              orderID.String(),
		Status:               status,
		AlreadyProcessed:     outcome.AlreadyProcessed,
		NotificationFailures: len(outcome.NotificationErrors),
	}
}

type AssignmentResponse struct {
	OrderID         string `json:"order_id"`
	CourierID       string `json:"courier_id"`
	AlreadyAssigned bool   `json:"already_assigned"`
	IsReassignment  bool   `json:"is_reassignment"`
	CodeRepaired    bool   `json:"code_repaired"`
}

type RejectionResponse struct {
	OrderStatusResponse
	Refund int64 `json:"refund"`
}

type BalanceResponse struct {
	ActorType       string     `json:"actor_type"`
	ActorID         string     `json:"actor_id"`
	Balance         int64      `json:"balance"`
	Revenue         int64      `json:"revenue"`
	Entries         int        `json:"entries,omitempty"`
	Cached          *bool      `json:"cached,omitempty"`
	Repaired        *bool      `json:"repaired,omitempty"`
	PreviousBalance *int64     `json:"previous_balance,omitempty"`
	ReconciledAt    *time.Time `json:"reconciled_at,omitempty"`
}

func newBalanceResponse(actor ledger.Actor, balance, revenue int64) BalanceResponse {
	return BalanceResponse{
		ActorType: actor.Type.String(),
		ActorID:   actor.ID.String(),
		Balance:   balance,
		Revenue:   revenue,
	}
}

type WithdrawalResponse struct {
	EntryID string `json:"entry_id"`
	Amount  int64  `json:"amount"`
	Balance int64  `json:"balance"`
}

type RankedCourier struct {
	CourierID        string   `json:"courier_id"`
	Name             string   `json:"name"`
	Position         Position `json:"position"`
	LivePosition     bool     `json:"live_position"`
	DistanceMeters   float64  `json:"distance_meters"`
	BaseScore        float64  `json:"base_score"`
	DistanceScore    float64  `json:"distance_score"`
	TotalScore       float64  `json:"total_score"`
	ActiveDeliveries int      `json:"active_deliveries"`
}

func toRankedCouriers(ranking []queries.RankedCourierResponse) []RankedCourier {
	out := make([]RankedCourier, len(ranking))
	for i, r := range ranking {
		out[i] = RankedCourier{
			CourierID:        r.CourierID.String(),
			Name:             r.Name,
			Position:         toPosition(r.Position),
			LivePosition:     r.LivePosition,
			DistanceMeters:   r.DistanceMeters,
			BaseScore:        r.BaseScore,
			DistanceScore:    r.DistanceScore,
			TotalScore:       r.TotalScore,
			ActiveDeliveries: r.ActiveDeliveries,
		}
	}
	return out
}

type ValidationCodeResponse struct {
	OrderID string `json:"order_id"`
	Code    string `json:"code"`
	Status  string `json:"status"`
	Mode    string `json:"mode"`
}

type OpenOrder struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Address   string    `json:"address,omitempty"`
	Total     int64     `json:"total"`
	Mode      string    `json:"mode"`
	Status    string    `json:"status"`
	CourierID *string   `json:"courier_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toOpenOrders(orders []queries.GetOpenOrdersQueryResponse) []OpenOrder {
	out := make([]OpenOrder, len(orders))
	for i, o := range orders {
		out[i] = OpenOrder{
			ID:        o.ID.String(),
			ClientID:  o.ClientID.String(),
			Address:   o.Address,
			Total:     o.Total,
			Mode:      o.Mode.String(),
			Status:    o.Status.String(),
			CreatedAt: o.CreatedAt,
		}
		if o.CourierID != nil {
			id := o.CourierID.String()
			out[i].CourierID = &id
		}
	}
	return out
}

type Courier struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone,omitempty"`
	Location         Position `json:"location"`
	Available        bool     `json:"available"`
	ActiveDeliveries int      `json:"active_deliveries"`
	AverageRating    *float64 `json:"average_rating,omitempty"`
	Score            *float64 `json:"score,omitempty"`
}

func toCouriers(couriers []queries.ListCouriersQueryResponse) []Courier {
	out := make([]Courier, len(couriers))
	for i, c := range couriers {
		out[i] = Courier{
			ID:               c.ID.String(),
			Name:             c.Name,
			Phone:            c.Phone,
			Location:         toPosition(c.Location),
			Available:        c.Available,
			ActiveDeliveries: c.ActiveDeliveries,
			AverageRating:    c.AverageRating,
			Score:            c.Score,
		}
	}
	return out
}
