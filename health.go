package mvtgeojson

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Source  string `json:"source"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:  "ok",
		Version: Version,
		Source:  s.sourceName,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
