package domain

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a geocoded location returned by the place-search service.
type Place struct {
	ID          string      `json:"id" validate:"required"`
	DisplayName string      `json:"displayName" validate:"required"`
	ShortName   string      `json:"shortName"`
	Coordinates Coordinates `json:"coordinates"`
	Type        string      `json:"type"`
}

// Waypoint is a place at a fixed position in a route.
type Waypoint struct {
	ID      string `json:"id"`
	Place   Place  `json:"place"`
	Order   int    `json:"order"`
	IsStart bool   `json:"isStart"`
	IsEnd   bool   `json:"isEnd"`
}

// RouteSegment is one leg of a route between consecutive waypoints.
type RouteSegment struct {
	From            Waypoint `json:"from"`
	To              Waypoint `json:"to"`
	DistanceKm      float64  `json:"distanceKm"`
	DurationMinutes float64  `json:"durationMinutes"`
}

// Route is the routing service's answer for an ordered waypoint list. It is
// stored verbatim on a trip and never recomputed.
type Route struct {
	Waypoints            []Waypoint     `json:"waypoints"`
	Segments             []RouteSegment `json:"segments"`
	TotalDistanceKm      float64        `json:"totalDistanceKm"`
	TotalDurationMinutes float64        `json:"totalDurationMinutes"`
}

// StartWaypoint returns the waypoint marked as the route start, if any.
func (r *Route) StartWaypoint() *Waypoint {
	for i := range r.Waypoints {
		if r.Waypoints[i].IsStart {
			return &r.Waypoints[i]
		}
	}
	return nil
}

// EndWaypoint returns the waypoint marked as the route end, if any.
func (r *Route) EndWaypoint() *Waypoint {
	for i := range r.Waypoints {
		if r.Waypoints[i].IsEnd {
			return &r.Waypoints[i]
		}
	}
	return nil
}
