package dto

type SurfaceRequest struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ClickRequest is a pointer click in client (viewport) coordinates together
// with the surface's bounding rectangle at the time of the click.
type ClickRequest struct {
	ClientX float64        `json:"client_x"`
	ClientY float64        `json:"client_y"`
	Surface SurfaceRequest `json:"surface"`
}

type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CityResponse is a marker. Index is the 1-based number drawn on it.
type CityResponse struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// RouteStopResponse is one entry of the ordered route list.
type RouteStopResponse struct {
	Order int     `json:"order"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type SegmentResponse struct {
	From PointResponse `json:"from"`
	To   PointResponse `json:"to"`
}

type SessionResponse struct {
	Cities   []CityResponse      `json:"cities"`
	Route    []RouteStopResponse `json:"route"`
	Segments []SegmentResponse   `json:"segments"`
	Error    *string             `json:"error"`
	Loading  bool                `json:"loading"`
	CanSolve bool                `json:"can_solve"`
	Phase    string              `json:"phase"`
}
