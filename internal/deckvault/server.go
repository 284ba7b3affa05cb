package deckvault

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/open-spaced-repetition/go-fsrs/v3"
	"github.com/rs/zerolog/log"

	"github.com/nkalugin/deckvault/config"
	"github.com/nkalugin/deckvault/internal/auth"
	"github.com/nkalugin/deckvault/internal/stores/models"
)

// DefaultDeckName is the deck created for an owner who has none yet.
const DefaultDeckName = "default"

const pgUniqueViolation = "23505"

type nower interface {
	Now() time.Time
}

type RealNower struct{}

func (r RealNower) Now() time.Time {
	return time.Now()
}

// Server ties ownership checks, card scheduling and deck bookkeeping together.
// Every exported method is one operation and one database transaction; no
// other package crosses the authorization boundary.
type Server struct {
	Config    *config.Config
	Queries   *models.Queries
	DBPool    *pgxpool.Pool
	Scheduler *fsrs.FSRS
	Nower     nower
}

func NewServer(cfg *config.Config, dbPool *pgxpool.Pool, queries *models.Queries) *Server {
	return &Server{cfg, queries, dbPool, fsrs.NewFSRS(schedulerParams()), RealNower{}}
}

type DeckInfo struct {
	DeckID    uuid.UUID `json:"deck_id"`
	DeckName  string    `json:"deck_name"`
	StudyLoad int64     `json:"study_load"`
}

// NextCardResponse has nil card fields when nothing in the deck is due yet.
// StudyLoad counts every card currently due, the returned one included.
type NextCardResponse struct {
	CardID       *uuid.UUID `json:"card_id"`
	FrontContent *string    `json:"front_content"`
	BackContent  *string    `json:"back_content"`
	StudyLoad    int64      `json:"study_load"`
}

type AddCardRequest struct {
	FrontContent string `json:"front_content"`
	BackContent  string `json:"back_content"`
	WithReversed bool   `json:"with_reversed"`
}

type AddCardResponse struct {
	CardIDs []uuid.UUID `json:"card_ids"`
}

type ScoreCardResponse struct {
	NextDue time.Time `json:"next_due"`
}

// Decks lists the caller's decks, most recently studied first, with the
// count of cards currently due in each. An owner with no decks gets the
// default deck created on the spot.
func (s *Server) Decks(ctx context.Context) ([]DeckInfo, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, unauthenticated("user not authenticated")
	}
	now := s.Nower.Now()

	tx, err := s.DBPool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	rows, err := qtx.GetDecks(ctx, models.GetDecksParams{
		OwnerID: user.OwnerID,
		Now:     toPGTimestamp(now),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		deckID := uuid.New()
		err = qtx.AddDeck(ctx, models.AddDeckParams{
			ID:         deckID,
			OwnerID:    user.OwnerID,
			Name:       DefaultDeckName,
			LastUpdate: toPGTimestamp(now),
		})
		if err != nil {
			var pgerr *pgconn.PgError
			if errors.As(err, &pgerr) && pgerr.Code == pgUniqueViolation {
				// Lost a race with another first request from this owner.
				// Their default deck is the one to return; our transaction
				// is aborted, so re-read outside it.
				tx.Rollback(ctx)
				rows, err = s.Queries.GetDecks(ctx, models.GetDecksParams{
					OwnerID: user.OwnerID,
					Now:     toPGTimestamp(now),
				})
				if err != nil {
					return nil, err
				}
				return decksFromRows(rows), nil
			}
			return nil, err
		}
		rows = []models.GetDecksRow{{ID: deckID, Name: DefaultDeckName, LastUpdate: toPGTimestamp(now)}}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return decksFromRows(rows), nil
}

func decksFromRows(rows []models.GetDecksRow) []DeckInfo {
	decks := make([]DeckInfo, len(rows))
	for i := range rows {
		decks[i] = DeckInfo{
			DeckID:    rows[i].ID,
			DeckName:  rows[i].Name,
			StudyLoad: rows[i].StudyLoad,
		}
	}
	return decks
}

func (s *Server) AddDeck(ctx context.Context, name string) (DeckInfo, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return DeckInfo{}, unauthenticated("user not authenticated")
	}
	if name == "" {
		return DeckInfo{}, invalidArgError("deck name cannot be empty")
	}

	deckID := uuid.New()
	err := s.Queries.AddDeck(ctx, models.AddDeckParams{
		ID:         deckID,
		OwnerID:    user.OwnerID,
		Name:       name,
		LastUpdate: toPGTimestamp(s.Nower.Now()),
	})
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == pgUniqueViolation {
			return DeckInfo{}, alreadyExistsError("you already have a deck with this name")
		}
		return DeckInfo{}, err
	}
	log.Ctx(ctx).Info().Str("deck", deckID.String()).Str("name", name).Msg("deck-added")
	return DeckInfo{DeckID: deckID, DeckName: name}, nil
}

// DeleteDeck removes a deck and all of its cards in one transaction. The
// deck must exist before ownership is compared; the two failures carry
// distinct codes.
func (s *Server) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return unauthenticated("user not authenticated")
	}

	tx, err := s.DBPool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	deck, err := qtx.GetDeck(ctx, deckID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundError("deck does not exist")
		}
		return err
	}
	if deck.OwnerID != user.OwnerID {
		return forbiddenError("no permission for this deck")
	}
	// Cards go with it; the foreign key cascades.
	if err = qtx.DeleteDeck(ctx, deckID); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("deck", deckID.String()).Msg("deck-deleted")
	return nil
}

// NextCard returns the earliest-due card in the deck that is due now, ties
// broken by card id. An empty response is not an error.
func (s *Server) NextCard(ctx context.Context, deckID uuid.UUID) (NextCardResponse, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return NextCardResponse{}, unauthenticated("user not authenticated")
	}
	now := s.Nower.Now()

	tx, err := s.DBPool.Begin(ctx)
	if err != nil {
		return NextCardResponse{}, err
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	deck, err := qtx.GetDeck(ctx, deckID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NextCardResponse{}, notFoundError("deck does not exist")
		}
		return NextCardResponse{}, err
	}
	if deck.OwnerID != user.OwnerID {
		return NextCardResponse{}, forbiddenError("no permission for this deck")
	}

	load, err := qtx.StudyLoad(ctx, models.StudyLoadParams{
		DeckID: deckID,
		Now:    toPGTimestamp(now),
	})
	if err != nil {
		return NextCardResponse{}, err
	}

	row, err := qtx.NextDueCard(ctx, models.NextDueCardParams{
		DeckID: deckID,
		Now:    toPGTimestamp(now),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Not an error; nothing is due.
			return NextCardResponse{StudyLoad: load}, tx.Commit(ctx)
		}
		return NextCardResponse{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return NextCardResponse{}, err
	}
	return NextCardResponse{
		CardID:       &row.ID,
		FrontContent: &row.FrontContent,
		BackContent:  &row.BackContent,
		StudyLoad:    load,
	}, nil
}

// AddCard creates a card in the deck, primed through one scheduling pass so
// it is immediately due. With WithReversed set it also creates the swapped
// back-to-front card; both inserts and the deck touch commit together.
func (s *Server) AddCard(ctx context.Context, deckID uuid.UUID, req AddCardRequest) (AddCardResponse, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return AddCardResponse{}, unauthenticated("user not authenticated")
	}
	if req.FrontContent == "" && req.BackContent == "" {
		return AddCardResponse{}, invalidArgError("card needs content on at least one side")
	}
	now := s.Nower.Now()

	tx, err := s.DBPool.Begin(ctx)
	if err != nil {
		return AddCardResponse{}, err
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	deck, err := qtx.GetDeck(ctx, deckID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AddCardResponse{}, notFoundError("deck does not exist")
		}
		return AddCardResponse{}, err
	}
	if deck.OwnerID != user.OwnerID {
		return AddCardResponse{}, forbiddenError("no permission for this deck")
	}

	ncards := 1
	if req.WithReversed {
		ncards = 2
	}
	count, err := qtx.CountCardsInDeck(ctx, deckID)
	if err != nil {
		return AddCardResponse{}, err
	}
	if int(count)+ncards > s.Config.MaxCardsPerDeck {
		return AddCardResponse{}, invalidArgError("this deck is full")
	}

	primed := newPrimedCard(s.Scheduler, now)
	cardIDs := make([]uuid.UUID, 0, ncards)

	cardID := uuid.New()
	err = qtx.AddCard(ctx, models.AddCardParams{
		ID:           cardID,
		DeckID:       deckID,
		FsrsCard:     primed,
		NextDue:      toPGTimestamp(primed.Due),
		FrontContent: req.FrontContent,
		BackContent:  req.BackContent,
	})
	if err != nil {
		return AddCardResponse{}, err
	}
	cardIDs = append(cardIDs, cardID)

	if req.WithReversed {
		reversedID := uuid.New()
		err = qtx.AddCard(ctx, models.AddCardParams{
			ID:           reversedID,
			DeckID:       deckID,
			FsrsCard:     primed,
			NextDue:      toPGTimestamp(primed.Due),
			FrontContent: req.BackContent,
			BackContent:  req.FrontContent,
		})
		if err != nil {
			return AddCardResponse{}, err
		}
		cardIDs = append(cardIDs, reversedID)
	}

	err = qtx.TouchDeck(ctx, models.TouchDeckParams{
		LastUpdate: toPGTimestamp(now),
		ID:         deckID,
	})
	if err != nil {
		return AddCardResponse{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return AddCardResponse{}, err
	}
	log.Ctx(ctx).Info().Str("deck", deckID.String()).Int("ncards", ncards).Msg("cards-added")
	return AddCardResponse{CardIDs: cardIDs}, nil
}

// ScoreCard applies one review to a card. The card row is locked for the
// duration of the transaction, so two racing reviews of the same card
// serialize and the loser reschedules from the winner's state.
func (s *Server) ScoreCard(ctx context.Context, cardID uuid.UUID, rating string) (ScoreCardResponse, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return ScoreCardResponse{}, unauthenticated("user not authenticated")
	}
	parsed, err := parseRating(rating)
	if err != nil {
		return ScoreCardResponse{}, err
	}
	now := s.Nower.Now()

	tx, err := s.DBPool.Begin(ctx)
	if err != nil {
		return ScoreCardResponse{}, err
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	cardrow, err := qtx.GetCardForUpdate(ctx, cardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ScoreCardResponse{}, notFoundError("card does not exist")
		}
		return ScoreCardResponse{}, err
	}
	if cardrow.OwnerID != user.OwnerID {
		return ScoreCardResponse{}, forbiddenError("no permission for this card")
	}

	card, rlog := reviewCard(s.Scheduler, cardrow.FsrsCard, parsed, now)
	err = qtx.UpdateCard(ctx, models.UpdateCardParams{
		FsrsCard: card,
		NextDue:  toPGTimestamp(card.Due),
		ID:       cardID,
	})
	if err != nil {
		return ScoreCardResponse{}, err
	}
	err = qtx.TouchDeck(ctx, models.TouchDeckParams{
		LastUpdate: toPGTimestamp(now),
		ID:         cardrow.DeckID,
	})
	if err != nil {
		return ScoreCardResponse{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return ScoreCardResponse{}, err
	}

	log.Ctx(ctx).Info().Str("card", cardID.String()).
		Str("rating", rating).
		Interface("revlog", rlog).
		Str("next-due", card.Due.String()).Msg("card-scored")
	return ScoreCardResponse{NextDue: card.Due}, nil
}
