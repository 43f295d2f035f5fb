package models

type Client struct {
	ID            int     `json:"idClient" db:"id"`
	Name          string  `json:"name" db:"name"`
	LastName      string  `json:"lastName" db:"last_name"`
	Phone         string  `json:"phone" db:"phone"`
	Invoice       bool    `json:"invoice" db:"invoice"`
	SocialReason  *string `json:"socialReason" db:"social_reason"`
	Zipcode       *string `json:"zipcode" db:"zipcode"`
	FiscalRegimen *string `json:"fiscalRegimen" db:"fiscal_regimen"`
	Email         *string `json:"email" db:"email"`
}

func (c *Client) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "client",
	}
}

// ClientChanges carries the merge-patch for a client: nil fields keep their
// stored value. Setting Invoice to false clears every fiscal field.
type ClientChanges struct {
	Name          *string
	LastName      *string
	Phone         *string
	Invoice       *bool
	SocialReason  *string
	Zipcode       *string
	FiscalRegimen *string
	Email         *string
}

func (c *ClientChanges) HasChanges() bool {
	return c.Name != nil || c.LastName != nil || c.Phone != nil ||
		c.Invoice != nil || c.SocialReason != nil || c.Zipcode != nil ||
		c.FiscalRegimen != nil || c.Email != nil
}
