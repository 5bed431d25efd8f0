package handler

import "github.com/pagebound/bookstore-api/internal/core/domain"

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		OrderDate:  o.OrderDate.UTC(),
		OrderValue: o.OrderValue,
		BookIDs:    o.BookIDs,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC(),
		UpdatedAt:  o.UpdatedAt.UTC(),
	}
}

func toListOrdersResponse(orders []*domain.Order) listOrdersResponse {
	items := make([]orderResponse, len(orders))
	for i, o := range orders {
		items[i] = toOrderResponse(o)
	}
	return listOrdersResponse{Count: len(items), Data: items}
}
