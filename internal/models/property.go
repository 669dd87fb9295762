package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents one row of real-estate inventory. Records flagged as
// is_complex belong to a multi-unit complex, linked either by parent_id or by
// the "Complexo X" naming convention handled in internal/unify.
type Property struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string  `gorm:"not null;index" json:"name"`
	Description    string  `gorm:"type:text" json:"description"`
	Status         string  `gorm:"default:available;index" json:"status"`
	Owner          string  `json:"owner"`
	IsComplex      bool    `gorm:"column:is_complex;default:false" json:"is_complex"`
	ParentID       *string `gorm:"column:parent_id;type:uuid;index" json:"parent_id"`
	PropertyType   string  `gorm:"index" json:"property_type"`
	Address        string  `json:"address"`
	Number         string  `json:"number"`
	Complement     string  `json:"complement"`
	Neighborhood   string  `json:"neighborhood"`
	City           string  `gorm:"index" json:"city"`
	State          string  `gorm:"index" json:"state"`
	Region         string  `json:"region"`
	ZipCode        string  `gorm:"column:zip_code" json:"zip_code"`
	Registration   string  `gorm:"index" json:"registration"`
	Tenant         string  `json:"tenant"`
	TenantCategory string  `json:"tenant_category"`

	BuiltArea     FlexFloat `gorm:"column:built_area;type:decimal(12,2)" json:"built_area"`
	LandArea      FlexFloat `gorm:"column:land_area;type:decimal(12,2)" json:"land_area"`
	PurchaseYear  *int      `gorm:"column:purchase_year" json:"purchase_year"`
	Matricula     string    `json:"matricula"`
	Sequencial    string    `json:"sequencial"`
	MinRent       FlexFloat `gorm:"column:min_rent;type:decimal(15,2)" json:"min_rent"`
	VariableRent  FlexFloat `gorm:"column:variable_rent;type:decimal(15,2)" json:"variable_rent"`
	PurchaseValue FlexFloat `gorm:"column:purchase_value;type:decimal(15,2)" json:"purchase_value"`
	MarketValue   FlexFloat `gorm:"column:market_value;type:decimal(15,2)" json:"market_value"`
	MarketRent    FlexFloat `gorm:"column:market_rent;type:decimal(15,2)" json:"market_rent"`
	Price         FlexFloat `gorm:"type:decimal(15,2)" json:"price"`

	// Parâmetros construtivos
	MainQuota     FlexFloat `gorm:"column:main_quota;type:decimal(10,2)" json:"main_quota"`
	LateralQuota  FlexFloat `gorm:"column:lateral_quota;type:decimal(10,2)" json:"lateral_quota"`
	Floors        FlexFloat `gorm:"type:decimal(5,1)" json:"floors"`
	TerrainConfig string    `gorm:"default:regular" json:"terrain_config"`

	// Impostos
	IPTUValue  FlexFloat `gorm:"column:iptu_value;type:decimal(15,2)" json:"iptu_value"`
	SPUValue   FlexFloat `gorm:"column:spu_value;type:decimal(15,2)" json:"spu_value"`
	OtherTaxes FlexFloat `gorm:"column:other_taxes;type:decimal(15,2)" json:"other_taxes"`

	FicheAvailable bool    `gorm:"column:fiche_available;default:false" json:"fiche_available"`
	ImageURL       *string `gorm:"column:image_url" json:"image_url"`

	// Imagens específicas da ficha
	TerrainMarkingURL *string `gorm:"column:terrain_marking_url" json:"terrain_marking_url"`
	AerialViewURL     *string `gorm:"column:aerial_view_url" json:"aerial_view_url"`
	FrontViewURL      *string `gorm:"column:front_view_url" json:"front_view_url"`
	SideViewURL       *string `gorm:"column:side_view_url" json:"side_view_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Parent *Property  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Units  []Property `gorm:"foreignKey:ParentID" json:"units,omitempty"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a UUID when none was provided
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = PropertyStatusAvailable
	}
	if p.TerrainConfig == "" {
		p.TerrainConfig = TerrainConfigRegular
	}
	return nil
}

// Property status constants
const (
	PropertyStatusAvailable = "available"
	PropertyStatusLeased    = "leased"
	PropertyStatusInUse     = "in_use"
	PropertyStatusReserved  = "reserved"
	PropertyStatusForSale   = "for_sale"
)

// Terrain configuration constants
const (
	TerrainConfigRegular   = "regular"
	TerrainConfigIrregular = "irregular"
)

// Property type constants
const (
	PropertyTypeCasa        = "casa"
	PropertyTypeApartamento = "apartamento"
	PropertyTypeLoja        = "loja"
	PropertyTypeGalpao      = "galpao"
	PropertyTypePredio      = "predio"
	PropertyTypeTerreno     = "terreno"
	PropertyTypeSala        = "sala"
	PropertyTypeQuiosque    = "quiosque"
)

// IsUnit returns true when the record is a subordinate unit of a complex
func (p *Property) IsUnit() bool {
	return p.ParentID != nil && *p.ParentID != ""
}

// RentYield returns the record's own annualized rent yield percentage.
// Complex records should use the aggregate from internal/unify instead.
func (p *Property) RentYield() float64 {
	if p.MarketValue == 0 {
		return 0
	}
	return (p.MarketRent.Float64() * 12 / p.MarketValue.Float64()) * 100
}

// RentPerArea returns the record's own rent per built square meter.
func (p *Property) RentPerArea() float64 {
	if p.BuiltArea == 0 {
		return 0
	}
	return p.MarketRent.Float64() / p.BuiltArea.Float64()
}

// PropertyResponse is the JSON response format for list/card views
type PropertyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	IsComplex      bool      `json:"is_complex"`
	PropertyType   string    `json:"property_type"`
	Neighborhood   string    `json:"neighborhood"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Registration   string    `json:"registration"`
	FicheAvailable bool      `json:"fiche_available"`
	ImageURL       *string   `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts Property to its list representation
func (p *Property) ToResponse() PropertyResponse {
	return PropertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Status:         p.Status,
		IsComplex:      p.IsComplex,
		PropertyType:   p.PropertyType,
		Neighborhood:   p.Neighborhood,
		City:           p.City,
		State:          p.State,
		Registration:   p.Registration,
		FicheAvailable: p.FicheAvailable,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
	}
}
