package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	helper "github.com/fahrizal-w/parastar/pkg/http/router/routerhelper"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	dist     float64
	path     string
	vertices []int64
	found    bool
	err      error
}

func (f *fakeRoutingService) ShortestPath(_, _, _, _ float64) (float64, string, []int64, bool, error) {
	return f.dist, f.path, f.vertices, f.found, f.err
}

func newTestRouter(service RoutingService) http.Handler {
	router := httprouter.New()
	group := helper.NewRouteGroup(router, "/api")
	api := New(service, zap.NewNop())
	api.Routes(group)
	return router
}

func TestShortestPathHandlerOK(t *testing.T) {
	handler := newTestRouter(&fakeRoutingService{
		dist:     2.5,
		path:     "_p~iF~ps|U",
		vertices: []int64{1, 2, 3},
		found:    true,
	})

	req := httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.7956&origin_lon=110.3695&destination_lat=-7.7964&destination_lon=110.3705", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Distance float64 `json:"distance"`
			Path     string  `json:"path"`
			Vertices []int64 `json:"vertices"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.InDelta(t, 2.5, body.Data.Distance, 1e-12)
	require.Equal(t, "_p~iF~ps|U", body.Data.Path)
	require.Equal(t, []int64{1, 2, 3}, body.Data.Vertices)
}

func TestShortestPathHandlerMissingParam(t *testing.T) {
	handler := newTestRouter(&fakeRoutingService{found: true})

	req := httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.7956&origin_lon=110.3695&destination_lat=-7.7964", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShortestPathHandlerLatitudeOutOfRange(t *testing.T) {
	handler := newTestRouter(&fakeRoutingService{found: true})

	req := httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-95.0&origin_lon=110.3695&destination_lat=-7.7964&destination_lon=110.3705", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShortestPathHandlerNoRoute(t *testing.T) {
	handler := newTestRouter(&fakeRoutingService{found: false})

	req := httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.7956&origin_lon=110.3695&destination_lat=-7.7964&destination_lon=110.3705", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
