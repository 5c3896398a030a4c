package models

type Country struct {
	ID          int64  `json:"id" bson:"_id" gorm:"primaryKey"`
	CountryName string `json:"country_name" bson:"country_name" gorm:"size:80;not null;uniqueIndex" validate:"required,max=80"`
}

func NewCountry(name string) (*Country, error) {
	c := &Country{CountryName: trim(name)}
	if err := check(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (Country) TableName() string      { return "country" }
func (c Country) GetID() int64         { return c.ID }
func (c *Country) SetID(id int64)      { c.ID = id }
func (c Country) UniqueKeys() []string { return []string{key("country_name", c.CountryName)} }
