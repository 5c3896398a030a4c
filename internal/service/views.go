package service

import "storefront/internal/models"

type AddressView struct {
	models.Address
	Country *models.Country `json:"country"`
}

// LinkedAddress is an address as seen from one user.
type LinkedAddress struct {
	AddressView
	IsDefault bool `json:"is_default"`
}

type UserView struct {
	models.User
	Role           *models.Role               `json:"role"`
	Addresses      []LinkedAddress            `json:"addresses"`
	PaymentMethods []models.UserPaymentMethod `json:"payment_methods"`
}

type UserAddressLink struct {
	User      models.User    `json:"user"`
	Address   models.Address `json:"address"`
	IsDefault bool           `json:"is_default"`
}

type CategoryView struct {
	models.ProductCategory
	SubCategories []models.ProductCategory `json:"sub_categories"`
}

type VariationView struct {
	models.Variation
	Category       *models.ProductCategory `json:"category"`
	VariationLines []models.VariationLine  `json:"variation_lines"`
}

type ProductView struct {
	models.Product
	Items []models.ProductItem `json:"product_items"`
}

type ProductItemView struct {
	models.ProductItem
	Image          *models.Image          `json:"image"`
	ImageLines     []models.ImageLine     `json:"image_lines"`
	VariationLines []models.VariationLine `json:"variation_lines"`
}
