package species

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPokeAPIServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/api/v2/pokemon/32":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 32,
				"name": "nidoran-m",
				"species": {"name": "nidoran-m", "url": "https://pokeapi.co/api/v2/pokemon-species/32/"},
				"sprites": {"front_default": "https://img/32.png", "front_shiny": null}
			}`))
		case "/api/v2/pokemon/500":
			http.Error(w, "upstream down", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPokeAPIGet(t *testing.T) {
	srv := newPokeAPIServer(t, nil)
	api := NewPokeAPI(srv.URL+"/api/v2/", srv.Client())

	sp, err := api.Get(context.Background(), 32)
	require.NoError(t, err)
	assert.Equal(t, Species{ID: 32, Name: "nidoran-m", Sprite: "https://img/32.png"}, sp)

	_, err = sp.SpriteFor(true)
	assert.ErrorIs(t, err, ErrMissingSprite)
}

func TestPokeAPIErrors(t *testing.T) {
	srv := newPokeAPIServer(t, nil)
	api := NewPokeAPI(srv.URL+"/api/v2", srv.Client())

	_, err := api.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = api.Get(context.Background(), 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestCachedCollapsesLookups(t *testing.T) {
	var hits atomic.Int32
	srv := newPokeAPIServer(t, &hits)
	cached := NewCached(NewPokeAPI(srv.URL+"/api/v2", srv.Client()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sp, err := cached.Get(context.Background(), 32)
			if assert.NoError(t, err) {
				assert.Equal(t, "nidoran-m", sp.Name)
			}
		}()
	}
	wg.Wait()

	_, err := cached.Get(context.Background(), 32)
	require.NoError(t, err)
	assert.LessOrEqual(t, hits.Load(), int32(8))
	before := hits.Load()

	_, err = cached.Get(context.Background(), 32)
	require.NoError(t, err)
	assert.Equal(t, before, hits.Load())
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	var hits atomic.Int32
	srv := newPokeAPIServer(t, &hits)
	cached := NewCached(NewPokeAPI(srv.URL+"/api/v2", srv.Client()))

	_, err := cached.Get(context.Background(), 500)
	require.Error(t, err)
	_, err = cached.Get(context.Background(), 500)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

// gatedSource blocks every lookup until release is closed and fails if the
// context it was handed is already done.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedSource) Get(ctx context.Context, id int) (Species, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	<-g.release
	if err := ctx.Err(); err != nil {
		return Species{}, err
	}
	return Species{ID: id, Name: "tapu-koko", Sprite: "https://img/785.png"}, nil
}

func TestCachedLookupOutlivesCancelledCaller(t *testing.T) {
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	cached := NewCached(src)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := cached.Get(ctx, 785)
		errc <- err
	}()

	<-src.started
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(src.release)
	sp, err := cached.Get(context.Background(), 785)
	require.NoError(t, err)
	assert.Equal(t, "tapu-koko", sp.Name)
	assert.Equal(t, int32(1), src.calls.Load())
}
