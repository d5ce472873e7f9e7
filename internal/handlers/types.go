package handlers

// PageCountResponse is the response for the total page count.
type PageCountResponse struct {
	Body struct {
		Message string `doc:"Where the total came from" example:"Data fetched from Redis cache" json:"message"`
		Success bool   `doc:"Always true on success"    example:"true"                          json:"success"`
		Total   int64  `doc:"Sum of every page count"   example:"4213"                          json:"total"`
	}
}

// IndexResponse is the response for the root endpoint.
type IndexResponse struct {
	Body struct {
		Message string `example:"Ok"   json:"message"`
		Success bool   `example:"true" json:"success"`
	}
}
