package inventory

type createItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
}

type updateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}
