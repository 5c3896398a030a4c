package models

import "strings"

const (
	// DefaultRoleID is assigned on self-registration.
	DefaultRoleID int64 = 1

	AdministratorRole = "Administrator"
	CustomerRole      = "Customer"
)

type Role struct {
	ID   int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	Name string `json:"name" bson:"name" gorm:"size:80;not null;uniqueIndex" validate:"required,max=80"`
}

func NewRole(name string) (*Role, error) {
	r := &Role{Name: trim(name)}
	if err := check(r); err != nil {
		return nil, err
	}
	return r, nil
}

// IsAdministrator reports whether the role is the protected administrator
// role. The comparison ignores case.
func (r Role) IsAdministrator() bool {
	return strings.EqualFold(strings.TrimSpace(r.Name), AdministratorRole)
}

func (Role) TableName() string      { return "role" }
func (r Role) GetID() int64         { return r.ID }
func (r *Role) SetID(id int64)      { r.ID = id }
func (r Role) UniqueKeys() []string { return []string{key("name", r.Name)} }

// User represents the application user account.
type User struct {
	ID           int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" bson:"first_name" gorm:"size:80" validate:"max=80"`
	LastName     string `json:"last_name" bson:"last_name" gorm:"size:80" validate:"max=80"`
	EmailAddress string `json:"email_address" bson:"email_address" gorm:"size:80;not null;uniqueIndex" validate:"required,email,max=80"`
	PhoneNumber  string `json:"phone_number" bson:"phone_number" gorm:"size:80;not null" validate:"required,max=80"`
	Password     string `json:"-" bson:"password" gorm:"size:255;not null" validate:"required"`
	Status       bool   `json:"status" bson:"status" gorm:"not null"`
	RoleID       int64  `json:"role_id" bson:"role_id" gorm:"not null;index" validate:"required,gt=0"`

	RoleRef *Role `json:"-" bson:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
}

// NewUser validates the account fields. passwordHash must already be the
// output of a credential hasher.
func NewUser(fields User, passwordHash string) (*User, error) {
	u := &User{
		FirstName:    trim(fields.FirstName),
		LastName:     trim(fields.LastName),
		EmailAddress: strings.ToLower(trim(fields.EmailAddress)),
		PhoneNumber:  trim(fields.PhoneNumber),
		Password:     passwordHash,
		Status:       true,
		RoleID:       fields.RoleID,
	}
	if u.RoleID == 0 {
		u.RoleID = DefaultRoleID
	}
	if err := check(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (User) TableName() string      { return "site_user" }
func (u User) GetID() int64         { return u.ID }
func (u *User) SetID(id int64)      { u.ID = id }
func (u User) UniqueKeys() []string { return []string{key("email_address", u.EmailAddress)} }

type PaymentType struct {
	ID   int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	Name string `json:"name" bson:"name" gorm:"size:80;not null;uniqueIndex" validate:"required,max=80"`
}

func NewPaymentType(name string) (*PaymentType, error) {
	p := &PaymentType{Name: trim(name)}
	if err := check(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (PaymentType) TableName() string      { return "payment_type" }
func (p PaymentType) GetID() int64         { return p.ID }
func (p *PaymentType) SetID(id int64)      { p.ID = id }
func (p PaymentType) UniqueKeys() []string { return []string{key("name", p.Name)} }

type UserPaymentMethod struct {
	ID            int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	UserID        int64  `json:"user_id" bson:"user_id" gorm:"not null;index" validate:"required,gt=0"`
	PaymentTypeID int64  `json:"payment_type_id" bson:"payment_type_id" gorm:"not null;index" validate:"required,gt=0"`
	Provider      string `json:"provider" bson:"provider" gorm:"size:80" validate:"max=80"`
	AccountNumber string `json:"account_number" bson:"account_number" gorm:"size:80" validate:"max=80"`
	ExpiryDate    string `json:"expiry_date" bson:"expiry_date" gorm:"size:10" validate:"max=10"`
	IsDefault     bool   `json:"is_default" bson:"is_default" gorm:"not null;default:false"`

	UserRef        *User        `json:"-" bson:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PaymentTypeRef *PaymentType `json:"-" bson:"-" gorm:"foreignKey:PaymentTypeID;constraint:OnDelete:CASCADE"`
}

func NewUserPaymentMethod(fields UserPaymentMethod) (*UserPaymentMethod, error) {
	m := &UserPaymentMethod{
		UserID:        fields.UserID,
		PaymentTypeID: fields.PaymentTypeID,
		Provider:      trim(fields.Provider),
		AccountNumber: trim(fields.AccountNumber),
		ExpiryDate:    trim(fields.ExpiryDate),
		IsDefault:     fields.IsDefault,
	}
	if err := check(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (UserPaymentMethod) TableName() string    { return "user_payment_method" }
func (m UserPaymentMethod) GetID() int64       { return m.ID }
func (m *UserPaymentMethod) SetID(id int64)    { m.ID = id }
func (UserPaymentMethod) UniqueKeys() []string { return nil }
