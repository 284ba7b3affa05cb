package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/nkalugin/deckvault/internal/deckvault"
)

type errorResponse struct {
	Error string `json:"error"`
}

type newDeckRequest struct {
	DeckName string `json:"deck_name"`
}

type reviewRequest struct {
	Rating string `json:"rating"`
}

func addRoutes(mux *http.ServeMux, s *deckvault.Server) {
	mux.HandleFunc("GET /api/decks", func(w http.ResponseWriter, r *http.Request) {
		decks, err := s.Decks(r.Context())
		if err != nil {
			writeVaultError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, decks)
	})

	mux.HandleFunc("POST /api/decks", func(w http.ResponseWriter, r *http.Request) {
		var req newDeckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		deck, err := s.AddDeck(r.Context(), req.DeckName)
		if err != nil {
			writeVaultError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, deck)
	})

	mux.HandleFunc("DELETE /api/decks/{deckID}", func(w http.ResponseWriter, r *http.Request) {
		deckID, err := uuid.Parse(r.PathValue("deckID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad deck id")
			return
		}
		if err := s.DeleteDeck(r.Context(), deckID); err != nil {
			writeVaultError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/decks/{deckID}/next", func(w http.ResponseWriter, r *http.Request) {
		deckID, err := uuid.Parse(r.PathValue("deckID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad deck id")
			return
		}
		card, err := s.NextCard(r.Context(), deckID)
		if err != nil {
			writeVaultError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	})

	mux.HandleFunc("POST /api/decks/{deckID}/cards", func(w http.ResponseWriter, r *http.Request) {
		deckID, err := uuid.Parse(r.PathValue("deckID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad deck id")
			return
		}
		var req deckvault.AddCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		added, err := s.AddCard(r.Context(), deckID, req)
		if err != nil {
			writeVaultError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	})

	mux.HandleFunc("POST /api/cards/{cardID}/review", func(w http.ResponseWriter, r *http.Request) {
		cardID, err := uuid.Parse(r.PathValue("cardID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad card id")
			return
		}
		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		scored, err := s.ScoreCard(r.Context(), cardID, req.Rating)
		if err != nil {
			writeVaultError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, scored)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeVaultError maps the core error taxonomy onto HTTP statuses. Storage
// failures stay opaque to the caller.
func writeVaultError(w http.ResponseWriter, r *http.Request, err error) {
	switch deckvault.CodeOf(err) {
	case deckvault.CodeUnauthenticated:
		writeError(w, http.StatusUnauthorized, err.Error())
	case deckvault.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case deckvault.CodeForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case deckvault.CodeAlreadyExists:
		writeError(w, http.StatusConflict, err.Error())
	case deckvault.CodeInvalidArgument:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Err(err).Msg("internal-error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
