package handler

import (
	"time"

	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/ports"
)

type loginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Role     string `form:"role" json:"role" validate:"required,oneof=donor ngo admin"`
}

type registerRequest struct {
	Name         string `form:"name" json:"name" validate:"required"`
	Email        string `form:"email" json:"email" validate:"required,email"`
	Password     string `form:"password" json:"password" validate:"required"`
	Role         string `form:"role" json:"role" validate:"required,oneof=donor ngo admin"`
	Phone        string `form:"phone" json:"phone,omitempty"`
	Location     string `form:"location" json:"location,omitempty"`
	Organization string `form:"organization" json:"organization,omitempty"`
}

type postFoodRequest struct {
	FoodType           string `form:"food_type" validate:"required"`
	Category           string `form:"category" validate:"required,oneof=cooked raw packaged baked fruits"`
	Quantity           string `form:"quantity" validate:"required,numeric"`
	Unit               string `form:"unit" validate:"required,oneof=kg portions items liters boxes"`
	Description        string `form:"description"`
	ExpiryDate         string `form:"expiry_date" validate:"required,datetime=2006-01-02"`
	ExpiryTime         string `form:"expiry_time" validate:"required,datetime=15:04"`
	PickupAddress      string `form:"pickup_address" validate:"required"`
	PickupInstructions string `form:"pickup_instructions"`
	ContactPhone       string `form:"contact_phone" validate:"required"`
	Vegetarian         bool   `form:"vegetarian"`
	Vegan              bool   `form:"vegan"`
	GlutenFree         bool   `form:"gluten_free"`
	NutFree            bool   `form:"nut_free"`
	Halal              bool   `form:"halal"`
	Kosher             bool   `form:"kosher"`
}

func (r postFoodRequest) dietary() catalog.Dietary {
	return catalog.Dietary{
		Vegetarian: r.Vegetarian,
		Vegan:      r.Vegan,
		GlutenFree: r.GlutenFree,
		NutFree:    r.NutFree,
		Halal:      r.Halal,
		Kosher:     r.Kosher,
	}
}

// input converts the form into a donation. Expiry is read in UTC.
func (r postFoodRequest) input() (ports.DonationInput, error) {
	expires, err := time.Parse("2006-01-02 15:04", r.ExpiryDate+" "+r.ExpiryTime)
	if err != nil {
		return ports.DonationInput{}, err
	}
	return ports.DonationInput{
		FoodType:           r.FoodType,
		Category:           r.Category,
		Quantity:           r.Quantity,
		Unit:               r.Unit,
		Description:        r.Description,
		ExpiresAt:          expires,
		PickupAddress:      r.PickupAddress,
		PickupInstructions: r.PickupInstructions,
		ContactPhone:       r.ContactPhone,
		Dietary:            r.dietary(),
	}, nil
}

type profileRequest struct {
	Name         string `form:"name" validate:"required"`
	Email        string `form:"email" validate:"required,email"`
	Phone        string `form:"phone"`
	Location     string `form:"location"`
	Organization string `form:"organization"`
}
