package transport

import "github.com/beggab/storechina/internal/service"

// IdentityPayload mirrors what the chat layer knows about a user. Optional
// fields stay nil when the message carried nothing for them.
type IdentityPayload struct {
	TelegramID int64   `json:"telegram_id"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Username   *string `json:"username,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	Email      *string `json:"email,omitempty"`
}

func (p IdentityPayload) ToIdentity() service.Identity {
	return service.Identity{
		TelegramID: p.TelegramID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Username:   p.Username,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		Email:      p.Email,
	}
}

type MergeCartRequest struct {
	CustomerID uint   `json:"customer_id"`
	ProductID  uint   `json:"product_id"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Quantity   int    `json:"quantity"`
}

type OrderLinePayload struct {
	ProductID *uint   `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

func (p OrderLinePayload) ToCartLine() service.CartLine {
	return service.CartLine{
		ProductID: p.ProductID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  p.Quantity,
		Size:      p.Size,
		Color:     p.Color,
	}
}

type PlaceOrderRequest struct {
	Identity IdentityPayload    `json:"identity"`
	Items    []OrderLinePayload `json:"items"`
}

type PlaceOrderResponse struct {
	OrderID uint `json:"order_id"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RecordRateRequest struct {
	Rate   float64 `json:"rate"`
	Source string  `json:"source,omitempty"`
}
