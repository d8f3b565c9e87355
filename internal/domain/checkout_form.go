package domain

const DefaultCountry = "United States"

// CheckoutForm is the contact, shipping and payment record for one checkout
// attempt. Card fields are accepted as free text.
type CheckoutForm struct {
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`

	Address   string `json:"address" validate:"required"`
	Apartment string `json:"apartment"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`

	CardNumber string `json:"cardNumber" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	NameOnCard string `json:"nameOnCard" validate:"required"`

	SaveInfo      bool `json:"saveInfo"`
	SameAsBilling bool `json:"sameAsBilling"`
}

// NewCheckoutForm returns the initial form, prefilled from user when signed in.
func NewCheckoutForm(user *User) CheckoutForm {
	form := CheckoutForm{
		Country:       DefaultCountry,
		SameAsBilling: true,
	}
	if user != nil {
		form.Email = user.Email
		form.FirstName = user.FirstName
		form.LastName = user.LastName
	}
	return form
}

// Redacted drops the payment fields.
func (f CheckoutForm) Redacted() CheckoutForm {
	f.CardNumber = ""
	f.ExpiryDate = ""
	f.CVV = ""
	f.NameOnCard = ""
	return f
}

type ShippingAddress struct {
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

func (f CheckoutForm) ShippingAddress() ShippingAddress {
	return ShippingAddress{
		Address:   f.Address,
		Apartment: f.Apartment,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
		Country:   f.Country,
	}
}
