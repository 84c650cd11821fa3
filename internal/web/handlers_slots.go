package web

import (
	"net/http"
)

type addRowRequest struct {
	At *int `json:"at"`
}

type placeActRequest struct {
	ActID string `json:"actId"`
}

type swapRequest struct {
	A int `json:"a"`
	B int `json:"b"`
}

// handleAddRow inserts an empty slot; without "at" it appends.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	var req addRowRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	out, err := s.service.AddRow(ctx, projectID(r), dayParam(r), req.At)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRemoveRow deletes a slot and reports the act that held it.
func (s *Server) handleRemoveRow(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	out, err := s.service.RemoveRow(ctx, projectID(r), dayParam(r), index)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePlaceAct assigns an act to a slot.
func (s *Server) handlePlaceAct(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req placeActRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	out, err := s.service.PlaceAct(ctx, projectID(r), dayParam(r), index, req.ActID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSwap exchanges two slots of a day.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	out, err := s.service.Swap(ctx, projectID(r), dayParam(r), req.A, req.B)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
