package species

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

type speciesJSON struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Sprite      string `json:"sprite"`
	ShinySprite string `json:"shinySprite"`
}

// Registry is a Source backed by a local JSON file. Ids must be dense and
// start at 1.
type Registry struct {
	byId   []Species
	byName map[string]int
}

var _ Source = (*Registry)(nil)

func LoadRegistryFromJSON(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(raw)
}

func ParseRegistry(raw []byte) (*Registry, error) {
	var arr []speciesJSON
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("species list is empty")
	}

	maxId := 0
	seenName := map[string]bool{}
	seenId := map[int]bool{}

	for i, sj := range arr {
		id := sj.Id
		if id < 1 {
			return nil, fmt.Errorf("non-positive id at index %d", i)
		}
		if seenId[id] {
			return nil, fmt.Errorf("duplicate id %d", id)
		}
		if sj.Name == "" {
			return nil, fmt.Errorf("missing name at id %d", id)
		}
		if seenName[sj.Name] {
			return nil, fmt.Errorf("duplicate name %q", sj.Name)
		}

		seenId[id] = true
		seenName[sj.Name] = true
		if id > maxId {
			maxId = id
		}
	}

	// index 0 is unused so ids index directly
	byId := make([]Species, maxId+1)
	for _, sj := range arr {
		byId[sj.Id] = Species{
			ID:          sj.Id,
			Name:        sj.Name,
			Sprite:      sj.Sprite,
			ShinySprite: sj.ShinySprite,
		}
	}

	byName := make(map[string]int, len(arr))
	for id, sp := range byId[1:] {
		if sp.Name == "" {
			return nil, fmt.Errorf("gap at id %d", id+1)
		}
		byName[sp.Name] = sp.ID
	}

	return &Registry{byId: byId, byName: byName}, nil
}

func (r *Registry) Get(_ context.Context, id int) (Species, error) {
	sp, ok := r.GetById(id)
	if !ok {
		return Species{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return sp, nil
}

func (r *Registry) GetById(id int) (Species, bool) {
	if id < 1 || id >= len(r.byId) {
		return Species{}, false
	}
	return r.byId[id], true
}

func (r *Registry) IdByName(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Count is the highest species id, which is also the number of species.
func (r *Registry) Count() int { return len(r.byId) - 1 }
