package models

import "time"

// Offering is a bookable service a professional sells. Duration and price are
// authoritative here; client-supplied values are never trusted on a write path.
type Offering struct {
	ID              string    `bson:"id" json:"id"`
	ProfessionalID  string    `bson:"professionalId" json:"professionalId"`
	Name            string    `bson:"name" json:"name"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	OffersInSalon   bool      `bson:"offersInSalon" json:"offersInSalon"`
	OffersMobile    bool      `bson:"offersMobile" json:"offersMobile"`
	SalonPrice      float64   `bson:"salonPrice" json:"salonPrice"`
	SalonDuration   int       `bson:"salonDuration" json:"salonDuration"` // minutes
	MobilePrice     float64   `bson:"mobilePrice" json:"mobilePrice"`
	MobileDuration  int       `bson:"mobileDuration" json:"mobileDuration"` // minutes
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SupportsLocation reports whether the offering can be booked at the given
// location type.
func (o Offering) SupportsLocation(lt LocationType) bool {
	switch lt {
	case LocationSalon:
		return o.OffersInSalon
	case LocationMobile:
		return o.OffersMobile
	default:
		return false
	}
}

// PriceAndDuration resolves the current price and duration for the given
// location type.
func (o Offering) PriceAndDuration(lt LocationType) (price float64, durationMin int) {
	if lt == LocationMobile {
		return o.MobilePrice, o.MobileDuration
	}
	return o.SalonPrice, o.SalonDuration
}
