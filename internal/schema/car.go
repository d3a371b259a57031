package schema

type Car struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	PricePerDay  float64    `json:"price_per_day"`
	Seats        int        `json:"seats,omitempty"`
	Luggage      int        `json:"luggage,omitempty"`
	Transmission string     `json:"transmission,omitempty"`
	UnlimitedKm  bool       `json:"unlimited_km"`
	Images       []CarImage `json:"images,omitempty"`
	CreatedAt    Timestamp  `json:"created_at"`
	UpdatedAt    Timestamp  `json:"updated_at"`
}

type CarImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
	CarID    int64  `json:"car_id"`
}
