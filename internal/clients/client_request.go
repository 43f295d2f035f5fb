package clients

type newClientRequest struct {
	Name          string  `json:"name" binding:"required"`
	LastName      string  `json:"lastName" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Invoice       *bool   `json:"invoice" binding:"required"`
	SocialReason  *string `json:"socialReason"`
	Zipcode       *string `json:"zipcode"`
	FiscalRegimen *string `json:"fiscalRegimen"`
	Email         *string `json:"email"`
}

type updateClientDetailsRequest struct {
	ClientID *int    `json:"idClient" binding:"required"`
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	Phone    *string `json:"phone"`
}

type updateClientInvoiceRequest struct {
	ClientID      *int    `json:"idClient" binding:"required"`
	Invoice       *bool   `json:"invoice" binding:"required"`
	SocialReason  *string `json:"socialReason"`
	Zipcode       *string `json:"zipcode"`
	FiscalRegimen *string `json:"fiscalRegimen"`
	Email         *string `json:"email"`
}
