package schema

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type TourBooking struct {
	Name   string              `json:"name"`
	Email  openapi_types.Email `json:"email"`
	Phone  *string             `json:"phone,omitempty"`
	People int                 `json:"people"`
	TourID int64               `json:"tour_id"`
}

type CarBooking struct {
	Name      string              `json:"name"`
	Email     openapi_types.Email `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
	People    int                 `json:"people"`
	CarID     int64               `json:"car_id"`
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
}
