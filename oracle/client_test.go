package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nathanieltooley/pokeduel/duel"
)

func TestClientRequestShape(t *testing.T) {
	var got calcRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected a json body, got %q", r.Header.Get("Content-Type"))
		}

		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("could not decode request: %s", err)
		}

		w.Write([]byte(`{"min": 20.5, "max": 24.1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	damageRange, err := client.DamageRange(context.Background(), mustPokemon("Charizard"), mustPokemon("Venusaur"), "Flamethrower")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if damageRange != (duel.DamageRange{Min: 20.5, Max: 24.1}) {
		t.Fatalf("unexpected range %+v", damageRange)
	}

	expectedAttacker := pokemonSet{Species: "Charizard", Ability: "Mold Breaker", Item: "Cleanse Tag", Level: 100, Nature: "Serious", Evs: map[string]int{}, Ivs: map[string]int{}}
	if got.Attacker.Species != expectedAttacker.Species || got.Attacker.Ability != expectedAttacker.Ability ||
		got.Attacker.Item != expectedAttacker.Item || got.Attacker.Level != expectedAttacker.Level || got.Attacker.Nature != expectedAttacker.Nature {
		t.Fatalf("unexpected attacker set %+v", got.Attacker)
	}

	if got.Attacker.Evs == nil || len(got.Attacker.Evs) != 0 || got.Defender.Ivs == nil {
		t.Fatalf("evs and ivs should be sent as empty objects: %+v", got)
	}

	if got.Defender.Species != "Venusaur" || got.Move != "Flamethrower" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestClientMissingBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"desc": "Tackle does not affect Gengar"}`))
	}))
	defer server.Close()

	damageRange, err := NewClient(server.URL, nil).DamageRange(context.Background(), mustPokemon("Venusaur"), mustPokemon("Gengar"), "Tackle")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if damageRange != (duel.DamageRange{}) {
		t.Fatalf("missing bounds should be 0, got %+v", damageRange)
	}
}

func TestClientBadResponses(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "application error", http.StatusServiceUnavailable)
		},
		"body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		},
	}

	for name, handler := range handlers {
		server := httptest.NewServer(handler)

		_, err := NewClient(server.URL, nil).DamageRange(context.Background(), mustPokemon("Charizard"), mustPokemon("Venusaur"), "Flamethrower")
		server.Close()

		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL, nil).DamageRange(ctx, mustPokemon("Charizard"), mustPokemon("Venusaur"), "Flamethrower")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected a deadline error, got %v", err)
	}
}

func TestClientInBattle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"min": 50, "max": 50}`))
	}))
	defer server.Close()

	battle, err := duel.NewBattle(duel.BattleConfig{
		Player:   duel.PokemonRecord{Name: "Charizard", Stats: duel.BaseStats{Speed: 100}, Moves: []string{"Flamethrower"}},
		Opponent: duel.PokemonRecord{Name: "Venusaur", Stats: duel.BaseStats{Speed: 80}, Moves: []string{"Tackle"}},
		Oracle:   NewClient(server.URL, server.Client()),
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	ctx := context.Background()
	if _, err := battle.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	for !battle.Snapshot().Over() {
		if _, err := battle.SubmitPlayerMove(ctx, "Flamethrower"); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	if battle.Snapshot().Winner != duel.PLAYER {
		t.Fatalf("faster player should win a mirror of 50%% hits")
	}
}
