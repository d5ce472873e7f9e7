package handlers

import "context"

// Index answers the root liveness probe.
func Index(_ context.Context, _ *struct{}) (*IndexResponse, error) {
	resp := &IndexResponse{}
	resp.Body.Message = "Ok"
	resp.Body.Success = true

	return resp, nil
}
