package models

type Product struct {
	ID          int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	CategoryID  int64  `json:"category_id" bson:"category_id" gorm:"not null;index" validate:"required,gt=0"`
	Name        string `json:"name" bson:"name" gorm:"size:80;not null" validate:"required,max=80"`
	Description string `json:"description,omitempty" bson:"description,omitempty" gorm:"size:255" validate:"max=255"`

	CategoryRef *ProductCategory `json:"-" bson:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func NewProduct(categoryID int64, name, description string) (*Product, error) {
	p := &Product{CategoryID: categoryID, Name: trim(name), Description: trim(description)}
	if err := check(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (Product) TableName() string    { return "product" }
func (p Product) GetID() int64       { return p.ID }
func (p *Product) SetID(id int64)    { p.ID = id }
func (Product) UniqueKeys() []string { return nil }

// ProductItem is a sellable variant of a Product.
type ProductItem struct {
	ID        int64   `json:"id" bson:"_id" gorm:"primaryKey"`
	ProductID int64   `json:"product_id" bson:"product_id" gorm:"not null;index" validate:"required,gt=0"`
	SKU       string  `json:"sku,omitempty" bson:"sku,omitempty" gorm:"column:sku;size:20" validate:"max=20"`
	Price     float64 `json:"price" bson:"price" gorm:"not null" validate:"gte=0"`

	ProductRef *Product `json:"-" bson:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func NewProductItem(productID int64, sku string, price float64) (*ProductItem, error) {
	it := &ProductItem{ProductID: productID, SKU: trim(sku), Price: price}
	if err := check(it); err != nil {
		return nil, err
	}
	return it, nil
}

func (ProductItem) TableName() string    { return "product_item" }
func (it ProductItem) GetID() int64      { return it.ID }
func (it *ProductItem) SetID(id int64)   { it.ID = id }
func (ProductItem) UniqueKeys() []string { return nil }

// ProductVariation attaches a VariationLine to a ProductItem.
type ProductVariation struct {
	ID              int64 `json:"id" bson:"_id" gorm:"primaryKey"`
	ProductItemID   int64 `json:"product_item_id" bson:"product_item_id" gorm:"not null;uniqueIndex:idx_product_variation_pair"`
	VariationLineID int64 `json:"variation_line_id" bson:"variation_line_id" gorm:"not null;uniqueIndex:idx_product_variation_pair;index"`

	ProductItemRef   *ProductItem   `json:"-" bson:"-" gorm:"foreignKey:ProductItemID;constraint:OnDelete:CASCADE"`
	VariationLineRef *VariationLine `json:"-" bson:"-" gorm:"foreignKey:VariationLineID;constraint:OnDelete:CASCADE"`
}

func (ProductVariation) TableName() string { return "product_variation" }
func (pv ProductVariation) GetID() int64   { return pv.ID }
func (pv *ProductVariation) SetID(id int64) {
	pv.ID = id
}
func (pv ProductVariation) UniqueKeys() []string {
	return []string{key("product_item_id,variation_line_id", pv.ProductItemID, pv.VariationLineID)}
}

// Image groups the stored pictures of one ProductItem.
type Image struct {
	ID            int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	ProductItemID int64  `json:"product_item_id" bson:"product_item_id" gorm:"not null;uniqueIndex" validate:"required,gt=0"`
	Name          string `json:"name" bson:"name" gorm:"size:80;not null" validate:"required,max=80"`

	ProductItemRef *ProductItem `json:"-" bson:"-" gorm:"foreignKey:ProductItemID;constraint:OnDelete:CASCADE"`
}

func NewImage(productItemID int64, name string) (*Image, error) {
	img := &Image{ProductItemID: productItemID, Name: trim(name)}
	if err := check(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (Image) TableName() string   { return "image" }
func (img Image) GetID() int64    { return img.ID }
func (img *Image) SetID(id int64) { img.ID = id }
func (img Image) UniqueKeys() []string {
	return []string{key("product_item_id", img.ProductItemID)}
}

// ImageLine references one stored file.
type ImageLine struct {
	ID        int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	ImageID   int64  `json:"image_id" bson:"image_id" gorm:"not null;index" validate:"required,gt=0"`
	ImagePath string `json:"image_path" bson:"image_path" gorm:"size:255;not null" validate:"required,max=255"`

	ImageRef *Image `json:"-" bson:"-" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
}

func NewImageLine(imageID int64, path string) (*ImageLine, error) {
	l := &ImageLine{ImageID: imageID, ImagePath: trim(path)}
	if err := check(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (ImageLine) TableName() string    { return "image_line" }
func (l ImageLine) GetID() int64       { return l.ID }
func (l *ImageLine) SetID(id int64)    { l.ID = id }
func (ImageLine) UniqueKeys() []string { return nil }

type ShippingMethod struct {
	ID    int64   `json:"id" bson:"_id" gorm:"primaryKey"`
	Name  string  `json:"name" bson:"name" gorm:"size:80;not null;uniqueIndex" validate:"required,max=80"`
	Price float64 `json:"price" bson:"price" gorm:"not null" validate:"gte=0"`
}

func NewShippingMethod(name string, price float64) (*ShippingMethod, error) {
	m := &ShippingMethod{Name: trim(name), Price: price}
	if err := check(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (ShippingMethod) TableName() string      { return "shipping_method" }
func (m ShippingMethod) GetID() int64         { return m.ID }
func (m *ShippingMethod) SetID(id int64)      { m.ID = id }
func (m ShippingMethod) UniqueKeys() []string { return []string{key("name", m.Name)} }
