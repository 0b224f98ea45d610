package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strom-dev/strom/pkg/provider"
)

func modelsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListModels(t *testing.T) {
	srv := modelsServer(t, `{"data":[{"id":"gpt-4o"},{"id":"gpt-4o-mini"}]}`)

	models, err := ListModels(context.Background(), genericConfig(srv.URL))
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[0].ID != "gpt-4o" || models[1].ID != "gpt-4o-mini" {
		t.Errorf("models = %+v", models)
	}
}

func TestListAllModelsIsolatesFailures(t *testing.T) {
	good := modelsServer(t, `{"data":[{"id":"m-1"}]}`)
	bad := modelsServer(t, `not json`)

	configs := []provider.Config{
		genericConfig(good.URL),
		genericConfig(bad.URL),
	}
	results := ListAllModels(context.Background(), configs)

	if len(results) != 2 {
		t.Fatalf("got %d results, want one per config", len(results))
	}
	if results[0].Err != nil || len(results[0].Models) != 1 || results[0].Models[0].ID != "m-1" {
		t.Errorf("results[0] = %+v, want the good catalog", results[0])
	}
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, want the listing failure isolated in its slot")
	}
	if results[1].Kind != provider.KindGeneric {
		t.Errorf("results[1].Kind = %q", results[1].Kind)
	}
}

func TestListAllModelsEmpty(t *testing.T) {
	if results := ListAllModels(context.Background(), nil); len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
}
