package handler

import "time"

type createOrderRequest struct {
	BookIDs []string `json:"book_ids" validate:"required,min=1,dive,required"`
	// CustomerID is honoured for admin callers only; for everyone else the
	// order is placed for the caller's own identity.
	CustomerID string `json:"customer_id"`
}

type replaceBooksRequest struct {
	BookIDs []string `json:"book_ids" validate:"required,min=1,dive,required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderResponse struct {
	ID         string    `json:"id"`
	OrderDate  time.Time `json:"order_date"`
	OrderValue float64   `json:"order_value"`
	BookIDs    []string  `json:"book_ids"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type listOrdersResponse struct {
	Count int             `json:"count"`
	Data  []orderResponse `json:"data"`
}
