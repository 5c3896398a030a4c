package models

// Address is a postal address. It belongs to exactly one Country and is
// shared by users through UserAddress.
type Address struct {
	ID           int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	StreetNumber string `json:"street_number" bson:"street_number" gorm:"size:80;not null" validate:"required,max=80"`
	AddressLine1 string `json:"address_line1" bson:"address_line1" gorm:"size:80;not null" validate:"required,max=80"`
	AddressLine2 string `json:"address_line2" bson:"address_line2" gorm:"size:80" validate:"max=80"`
	City         string `json:"city" bson:"city" gorm:"size:80;not null" validate:"required,max=80"`
	Region       string `json:"region" bson:"region" gorm:"size:80;not null" validate:"required,max=80"`
	PostalCode   string `json:"postal_code" bson:"postal_code" gorm:"size:80;not null" validate:"required,max=80"`
	CountryID    int64  `json:"country_id" bson:"country_id" gorm:"not null;index" validate:"required,gt=0"`

	CountryRef *Country `json:"-" bson:"-" gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE"`
}

func NewAddress(fields Address) (*Address, error) {
	a := &Address{
		StreetNumber: trim(fields.StreetNumber),
		AddressLine1: trim(fields.AddressLine1),
		AddressLine2: trim(fields.AddressLine2),
		City:         trim(fields.City),
		Region:       trim(fields.Region),
		PostalCode:   trim(fields.PostalCode),
		CountryID:    fields.CountryID,
	}
	if err := check(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (Address) TableName() string    { return "address" }
func (a Address) GetID() int64       { return a.ID }
func (a *Address) SetID(id int64)    { a.ID = id }
func (Address) UniqueKeys() []string { return nil }

// UserAddress links a user to an address. The pair is unique.
type UserAddress struct {
	ID        int64 `json:"id" bson:"_id" gorm:"primaryKey"`
	UserID    int64 `json:"user_id" bson:"user_id" gorm:"not null;uniqueIndex:idx_user_address_pair"`
	AddressID int64 `json:"address_id" bson:"address_id" gorm:"not null;uniqueIndex:idx_user_address_pair;index"`
	IsDefault bool  `json:"is_default" bson:"is_default" gorm:"not null;default:false"`

	UserRef    *User    `json:"-" bson:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AddressRef *Address `json:"-" bson:"-" gorm:"foreignKey:AddressID;constraint:OnDelete:CASCADE"`
}

func (UserAddress) TableName() string { return "user_address" }
func (l UserAddress) GetID() int64    { return l.ID }
func (l *UserAddress) SetID(id int64) { l.ID = id }
func (l UserAddress) UniqueKeys() []string {
	return []string{key("user_id,address_id", l.UserID, l.AddressID)}
}
