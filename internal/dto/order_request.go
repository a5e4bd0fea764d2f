package dto

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	CustomerEmail string             `json:"customerEmail"`
	Address       string             `json:"address"`
	Comment       string             `json:"comment"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
