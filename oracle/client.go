package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/nathanieltooley/pokeduel/duel"
)

const DEFAULT_URL = "https://calc-api.herokuapp.com/calc-api"

// Every set sent to the calculator uses these so neither side gets an edge.
// Mold Breaker negates the defender's ability and Cleanse Tag does nothing in battle.
const (
	SET_ABILITY = "Mold Breaker"
	SET_ITEM    = "Cleanse Tag"
	SET_LEVEL   = 100
	SET_NATURE  = "Serious"
)

type pokemonSet struct {
	Species string         `json:"species"`
	Ability string         `json:"ability"`
	Item    string         `json:"item"`
	Level   int            `json:"level"`
	Nature  string         `json:"nature"`
	Evs     map[string]int `json:"evs"`
	Ivs     map[string]int `json:"ivs"`
}

type calcRequest struct {
	Attacker pokemonSet `json:"attacker"`
	Defender pokemonSet `json:"defender"`
	Move     string     `json:"move"`
}

// A missing bound means the defender is immune
type calcResponse struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

var clientLogger = func() logr.Logger {
	return internalLogger.WithName("client")
}

// Client asks a remote damage calculator for the damage range of a move
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a client for the calculator at url. Timeouts come from the context
// passed to DamageRange; httpClient may be nil.
func NewClient(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DEFAULT_URL
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		url:    url,
		client: httpClient,
	}
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) DamageRange(ctx context.Context, attacker duel.PokemonRecord, defender duel.PokemonRecord, move string) (duel.DamageRange, error) {
	body, err := json.Marshal(calcRequest{
		Attacker: newSet(attacker.Name),
		Defender: newSet(defender.Name),
		Move:     move,
	})
	if err != nil {
		return duel.DamageRange{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return duel.DamageRange{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	clientLogger().V(1).Info("requesting damage", "url", c.url, "attacker", attacker.Name, "defender", defender.Name, "move", move)

	resp, err := c.client.Do(req)
	if err != nil {
		return duel.DamageRange{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return duel.DamageRange{}, fmt.Errorf("calc request to %s failed: %s", c.url, resp.Status)
	}

	var calc calcResponse
	if err := json.NewDecoder(resp.Body).Decode(&calc); err != nil {
		return duel.DamageRange{}, fmt.Errorf("decoding calc response: %w", err)
	}

	damageRange := duel.DamageRange{}
	if calc.Min != nil {
		damageRange.Min = *calc.Min
	}
	if calc.Max != nil {
		damageRange.Max = *calc.Max
	}

	clientLogger().V(1).Info("got damage", "min", damageRange.Min, "max", damageRange.Max)

	return damageRange, nil
}

func newSet(species string) pokemonSet {
	return pokemonSet{
		Species: species,
		Ability: SET_ABILITY,
		Item:    SET_ITEM,
		Level:   SET_LEVEL,
		Nature:  SET_NATURE,
		Evs:     map[string]int{},
		Ivs:     map[string]int{},
	}
}
