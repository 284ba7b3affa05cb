package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var ratingNames = map[string]string{
	"1": "Again",
	"2": "Hard",
	"3": "Good",
	"4": "Easy",
}

type deck struct {
	DeckID    string `json:"deck_id"`
	DeckName  string `json:"deck_name"`
	StudyLoad int64  `json:"study_load"`
}

type card struct {
	CardID       *string `json:"card_id"`
	FrontContent *string `json:"front_content"`
	BackContent  *string `json:"back_content"`
}

type client struct {
	baseURI string
	jwt     string
	http    *http.Client
}

func (c *client) call(method, path string, body, into interface{}) error {
	var rdr *bytes.Reader
	if body != nil {
		bts, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(bts)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.baseURI+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.jwt)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var apierr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apierr)
		return fmt.Errorf("server said %d: %s", resp.StatusCode, apierr.Error)
	}
	if into == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(into)
}

type decksMsg []deck
type cardMsg card
type scoredMsg struct{ nextDue string }
type apiErrMsg struct{ err error }

func fetchDecksCmd(c *client) tea.Cmd {
	return func() tea.Msg {
		var decks []deck
		if err := c.call(http.MethodGet, "/api/decks", nil, &decks); err != nil {
			return apiErrMsg{err}
		}
		return decksMsg(decks)
	}
}

func nextCardCmd(c *client, deckID string) tea.Cmd {
	return func() tea.Msg {
		var crd card
		if err := c.call(http.MethodGet, "/api/decks/"+deckID+"/next", nil, &crd); err != nil {
			return apiErrMsg{err}
		}
		return cardMsg(crd)
	}
}

func scoreCardCmd(c *client, cardID, rating string) tea.Cmd {
	return func() tea.Msg {
		var scored struct {
			NextDue time.Time `json:"next_due"`
		}
		body := map[string]string{"rating": rating}
		if err := c.call(http.MethodPost, "/api/cards/"+cardID+"/review", body, &scored); err != nil {
			return apiErrMsg{err}
		}
		return scoredMsg{nextDue: scored.NextDue.Local().Format(time.DateTime)}
	}
}

type model struct {
	client      *client
	decks       []deck
	currentDeck *deck
	visible     *card
	showBack    bool
	status      string
	textInput   textinput.Model
}

func initialModel(c *client) model {
	ti := textinput.New()
	ti.Placeholder = "deck number"
	ti.Focus()
	ti.CharLimit = 4
	ti.Width = 10

	return model{client: c, textInput: ti}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, fetchDecksCmd(m.client))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.currentDeck == nil {
				idx, err := strconv.Atoi(strings.TrimSpace(m.textInput.Value()))
				m.textInput.Reset()
				if err != nil || idx < 1 || idx > len(m.decks) {
					m.status = "Pick a deck by its number."
					return m, nil
				}
				m.currentDeck = &m.decks[idx-1]
				m.status = ""
				return m, nextCardCmd(m.client, m.currentDeck.DeckID)
			}
			return m, nil
		}

		if m.currentDeck != nil && m.visible != nil {
			switch msg.String() {
			case "f", "F":
				m.showBack = !m.showBack
				return m, nil
			case "1", "2", "3", "4":
				return m, scoreCardCmd(m.client, *m.visible.CardID, ratingNames[msg.String()])
			}
		}
		if m.currentDeck != nil {
			switch msg.String() {
			case "d", "D":
				m.currentDeck = nil
				m.visible = nil
				m.showBack = false
				return m, fetchDecksCmd(m.client)
			case "q", "Q":
				return m, tea.Quit
			}
		}

	case decksMsg:
		m.decks = msg
		m.status = ""

	case cardMsg:
		m.showBack = false
		if msg.CardID == nil {
			m.visible = nil
			m.status = "Nothing due in this deck right now."
		} else {
			crd := card(msg)
			m.visible = &crd
			m.status = ""
		}

	case scoredMsg:
		m.status = "Card rescheduled for " + msg.nextDue
		return m, nextCardCmd(m.client, m.currentDeck.DeckID)

	case apiErrMsg:
		m.status = msg.err.Error()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var body, footer string
	switch {
	case m.currentDeck == nil:
		var b strings.Builder
		b.WriteString("Your decks:\n\n")
		for i, d := range m.decks {
			fmt.Fprintf(&b, "  (%d) %s — %d due\n", i+1, d.DeckName, d.StudyLoad)
		}
		b.WriteString("\nType a deck number and hit enter to study.\n\n")
		b.WriteString(m.textInput.View())
		body = b.String()
		footer = "(Ctrl+C) Quit"
	case m.visible != nil:
		body = strings.Repeat("-", 20) + "\n\n  " + *m.visible.FrontContent + "\n"
		if m.showBack {
			body += "\n  " + *m.visible.BackContent + "\n"
		}
		footer = "(1) Again    (2) Hard    (3) Good    (4) Easy\n\n      (F) Flip   (D) Decks   (Q) Quit"
	default:
		body = "No cards to study in " + m.currentDeck.DeckName + "."
		footer = "(D) Decks   (Q) Quit"
	}

	return body + "\n\n" + m.status + "\n" + strings.Repeat("-", 25) + "\n" + footer + "\n"
}

func main() {
	baseURI := os.Getenv("DECKVAULT_URI")
	if baseURI == "" {
		baseURI = "http://localhost:8190"
	}
	token := os.Getenv("DECKVAULT_TOKEN")
	if token == "" {
		log.Fatal("set DECKVAULT_TOKEN to a valid bearer token")
	}

	c := &client{baseURI: baseURI, jwt: token, http: &http.Client{Timeout: 10 * time.Second}}
	p := tea.NewProgram(initialModel(c))

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
