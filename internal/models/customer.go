package models

// Customer is the entity an invoice's customer_id references. The create
// form's customer picker is populated from the customer list.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}
