package mvtgeojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/converter"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/formatter"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/projection"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
)

const geojsonSuffix = ".geojson"

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// handleTile serves GET /api/tiles/{z}/{x}/{y}.geojson. Query parameters:
// layer (repeatable) restricts the layers, pretty=true|false overrides
// indentation.
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"path":       r.URL.Path,
	})
	w.Header().Set("X-Request-ID", requestID)

	file := r.PathValue("file")
	if !strings.HasSuffix(file, geojsonSuffix) {
		writeError(w, http.StatusNotFound, requestID, "unknown tile format")
		return
	}
	id := fmt.Sprintf("%s/%s/%s", r.PathValue("z"), r.PathValue("x"), strings.TrimSuffix(file, geojsonSuffix))
	tile, err := tilesource.ParseTileID(id)
	if err == nil && !projection.ValidTile(tile) {
		err = fmt.Errorf("%w: %s", projection.ErrInvalidTile, id)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, requestID, err.Error())
		return
	}

	query := r.URL.Query()
	pretty := s.pretty
	if v := query.Get("pretty"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			writeError(w, http.StatusBadRequest, requestID, fmt.Sprintf("invalid pretty value %q", v))
			return
		}
		pretty = b
	}
	opts := s.pipeline.Options()
	if layers := query["layer"]; len(layers) > 0 {
		opts.Layers = layers
	}

	fc, err := s.pipeline.ConvertWith(r.Context(), tile, converter.NewConverter(opts))
	if err != nil {
		status := statusForError(err)
		log.WithError(err).WithField("status", status).Warn("tile request failed")
		writeError(w, status, requestID, err.Error())
		return
	}

	body, err := formatter.BuildJSON(fc, pretty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, requestID, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(body)

	log.WithFields(logrus.Fields{
		"tile":     id,
		"features": len(fc.Features),
		"duration": time.Since(start).String(),
	}).Info("served tile")
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, projection.ErrInvalidTile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, requestID, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: requestID})
}
