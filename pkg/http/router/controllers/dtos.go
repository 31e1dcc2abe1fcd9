package controllers

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type shortestPathResponse struct {
	Dist     float64 `json:"distance"`
	Path     string  `json:"path"`
	Vertices []int64 `json:"vertices"`
}

func NewShortestPathResponse(dist float64, path string, vertices []int64) shortestPathResponse {
	return shortestPathResponse{
		Dist:     dist,
		Path:     path,
		Vertices: vertices,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
