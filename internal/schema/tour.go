package schema

type Tour struct {
	ID             int64          `json:"id"`
	Address        string         `json:"address"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	Days           int            `json:"days"`
	Nights         int            `json:"nights"`
	About          string         `json:"about"`
	History        string         `json:"history"`
	Location       string         `json:"location"`
	IncludeExclude string         `json:"include_exclude"`
	MaxPeople      int            `json:"max_people"`
	Dates          []TourDate     `json:"dates"`
	Images         []TourImage    `json:"images"`
	Costs          []TourCost     `json:"costs"`
	Routes         []TourRoute    `json:"routes"`
	Questions      []TourQuestion `json:"questions"`
	CreatedAt      Timestamp      `json:"created_at"`
	UpdatedAt      Timestamp      `json:"updated_at"`
}

type TourDate struct {
	ID        int64     `json:"id"`
	StartDate Timestamp `json:"start_date"`
	EndDate   Timestamp `json:"end_date"`
	TourID    int64     `json:"tour_id"`
	CreatedAt Timestamp `json:"created_at"`
}

type TourImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	TourID   int64  `json:"tour_id"`
}

type TourCost struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	TourID int64   `json:"tour_id"`
}

type RouteImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	RouteID  int64  `json:"route_id"`
}

type TourRoute struct {
	ID          int64       `json:"id"`
	DayNumber   int         `json:"day_number"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address,omitempty"`
	TourID      int64       `json:"tour_id"`
	Image       *RouteImage `json:"image,omitempty"`
}

type TourQuestion struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	TourID   int64  `json:"tour_id"`
}
