package species

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultPokeAPIURL = "https://pokeapi.co/api/v2"

type pokemonJSON struct {
	Id      int `json:"id"`
	Species struct {
		Name string `json:"name"`
	} `json:"species"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		FrontShiny   string `json:"front_shiny"`
	} `json:"sprites"`
}

// PokeAPI is a Source reading /pokemon/{id} from a PokeAPI-compatible
// server.
type PokeAPI struct {
	baseURL string
	http    *http.Client
}

var _ Source = (*PokeAPI)(nil)

func NewPokeAPI(baseURL string, client *http.Client) *PokeAPI {
	if baseURL == "" {
		baseURL = DefaultPokeAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PokeAPI{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

func (p *PokeAPI) Get(ctx context.Context, id int) (Species, error) {
	url := fmt.Sprintf("%s/pokemon/%d", p.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Species{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return Species{}, fmt.Errorf("fetch pokemon %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Species{}, fmt.Errorf("pokemon %d: %w", id, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Species{}, fmt.Errorf("fetch pokemon %d: status %d: %s", id, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pj pokemonJSON
	if err := json.NewDecoder(resp.Body).Decode(&pj); err != nil {
		return Species{}, fmt.Errorf("decode pokemon %d: %w", id, err)
	}
	if pj.Species.Name == "" {
		return Species{}, fmt.Errorf("pokemon %d has no species name", id)
	}

	return Species{
		ID:          id,
		Name:        pj.Species.Name,
		Sprite:      pj.Sprites.FrontDefault,
		ShinySprite: pj.Sprites.FrontShiny,
	}, nil
}
