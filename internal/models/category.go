package models

// ProductCategory is a node of the category forest. Roots have no parent.
// Names are unique across the whole forest, not per parent.
type ProductCategory struct {
	ID               int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	Name             string `json:"name" bson:"name" gorm:"size:80;not null;uniqueIndex" validate:"required,max=80"`
	ParentCategoryID *int64 `json:"parent_category_id" bson:"parent_category_id" gorm:"index"`

	ParentRef *ProductCategory `json:"-" bson:"-" gorm:"foreignKey:ParentCategoryID;constraint:OnDelete:CASCADE"`
}

func NewProductCategory(name string, parentID *int64) (*ProductCategory, error) {
	c := &ProductCategory{Name: trim(name), ParentCategoryID: cloneID(parentID)}
	if err := check(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (ProductCategory) TableName() string      { return "product_category" }
func (c ProductCategory) GetID() int64         { return c.ID }
func (c *ProductCategory) SetID(id int64)      { c.ID = id }
func (c ProductCategory) UniqueKeys() []string { return []string{key("name", c.Name)} }

// Variation is an axis of a category, e.g. "Color".
type Variation struct {
	ID         int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	CategoryID int64  `json:"category_id" bson:"category_id" gorm:"not null;index" validate:"required,gt=0"`
	Name       string `json:"name" bson:"name" gorm:"size:80;not null" validate:"required,max=80"`

	CategoryRef *ProductCategory `json:"-" bson:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func NewVariation(categoryID int64, name string) (*Variation, error) {
	v := &Variation{CategoryID: categoryID, Name: trim(name)}
	if err := check(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (Variation) TableName() string    { return "variation" }
func (v Variation) GetID() int64       { return v.ID }
func (v *Variation) SetID(id int64)    { v.ID = id }
func (Variation) UniqueKeys() []string { return nil }

// VariationLine is a value of a Variation, e.g. "Red".
type VariationLine struct {
	ID          int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	VariationID int64  `json:"variation_id" bson:"variation_id" gorm:"not null;index" validate:"required,gt=0"`
	Name        string `json:"name" bson:"name" gorm:"size:80;not null" validate:"required,max=80"`

	VariationRef *Variation `json:"-" bson:"-" gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE"`
}

func NewVariationLine(variationID int64, name string) (*VariationLine, error) {
	l := &VariationLine{VariationID: variationID, Name: trim(name)}
	if err := check(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (VariationLine) TableName() string    { return "variation_line" }
func (l VariationLine) GetID() int64       { return l.ID }
func (l *VariationLine) SetID(id int64)    { l.ID = id }
func (VariationLine) UniqueKeys() []string { return nil }

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
