package actions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/muurk/logconsole/internal/apiclient"
	"github.com/muurk/logconsole/internal/model"
)

type fakeAPI struct {
	mu      sync.Mutex
	configs map[string]model.Config
	updates []string
	block   chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{configs: map[string]model.Config{
		model.SearchesClusterConfig:   {"query_time_range_limit": "P30D"},
		model.MessageProcessorsConfig: {"processor_order": []any{}},
		model.URLWhiteListConfig:      {"disabled": true},
	}}
}

func (f *fakeAPI) get(key string) (model.Config, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.configs[key]
	if !ok {
		return nil, apiclient.NewStatusError(404, "not found")
	}
	return cfg, nil
}

func (f *fakeAPI) put(key string, cfg model.Config) (model.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, key)
	f.configs[key] = cfg
	return cfg, nil
}

func (f *fakeAPI) ClusterConfig(_ context.Context, t string) (model.Config, error) { return f.get(t) }
func (f *fakeAPI) UpdateClusterConfig(_ context.Context, t string, c model.Config) (model.Config, error) {
	return f.put(t, c)
}
func (f *fakeAPI) MessageProcessorsConfig(context.Context) (model.Config, error) {
	return f.get(model.MessageProcessorsConfig)
}
func (f *fakeAPI) UpdateMessageProcessorsConfig(_ context.Context, c model.Config) (model.Config, error) {
	return f.put(model.MessageProcessorsConfig, c)
}
func (f *fakeAPI) URLWhitelist(context.Context) (model.Config, error) {
	return f.get(model.URLWhiteListConfig)
}
func (f *fakeAPI) UpdateURLWhitelist(_ context.Context, c model.Config) (model.Config, error) {
	return f.put(model.URLWhiteListConfig, c)
}
func (f *fakeAPI) Inputs(context.Context) ([]model.Input, error) {
	return []model.Input{{ID: "in1", Title: "Syslog"}}, nil
}
func (f *fakeAPI) Nodes(context.Context) ([]model.Node, error) {
	return nil, errors.New("nodes unavailable")
}
func (f *fakeAPI) Streams(context.Context) ([]model.Stream, error) {
	return []model.Stream{{ID: "s1", Title: "All"}}, nil
}
func (f *fakeAPI) CurrentUser(context.Context) (model.CurrentUser, error) {
	return model.CurrentUser{Username: "admin", Permissions: []string{"*"}}, nil
}
func (f *fakeAPI) FieldTypes(context.Context) (model.FieldTypes, error) {
	return model.FieldTypes{Fields: []model.FieldDescriptor{{Name: "source", Type: model.FieldTypeString}}}, nil
}
func (f *fakeAPI) Search(_ context.Context, sr apiclient.SearchRequest) (model.SearchResult, error) {
	return model.SearchResult{Query: sr.Query, Records: []model.Record{{Index: "i", ID: "1"}}, TotalResults: 1}, nil
}

func TestListStoresConfig(t *testing.T) {
	stores := NewStores(nil)
	d := NewDispatcher(context.Background(), newFakeAPI(), stores)

	d.List(model.SearchesClusterConfig)
	d.ListMessageProcessorsConfig()
	d.ListWhiteListConfig()
	d.Wait()

	snap := stores.Configurations.Snapshot()
	if snap.Len() != 3 {
		t.Fatalf("Configurations.Len() = %d, want 3", snap.Len())
	}
	if cfg, _ := snap.Get(model.SearchesClusterConfig); cfg["query_time_range_limit"] != "P30D" {
		t.Errorf("searches config = %v", cfg)
	}
}

func TestListMissingLeavesKeyAbsent(t *testing.T) {
	stores := NewStores(nil)
	d := NewDispatcher(context.Background(), newFakeAPI(), stores)

	d.List(model.SidecarConfig)
	d.Wait()

	if _, ok := stores.Configurations.Snapshot().Get(model.SidecarConfig); ok {
		t.Error("a failed list must not create the key")
	}
}

func TestDispatchDoesNotBlock(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	stores := NewStores(nil)
	d := NewDispatcher(context.Background(), api, stores)

	// Returns while the request is still blocked
	d.List(model.SearchesClusterConfig)
	if stores.Configurations.Snapshot().Len() != 0 {
		t.Error("store updated before the request completed")
	}

	close(api.block)
	d.Wait()
	if stores.Configurations.Snapshot().Len() != 1 {
		t.Error("store not updated after the request completed")
	}
}

func TestUpdateRoutesToEndpoint(t *testing.T) {
	api := newFakeAPI()
	stores := NewStores(nil)
	d := NewDispatcher(context.Background(), api, stores)

	d.Update(model.CustomizationConfig, model.Config{"badge_text": "QA"})
	d.UpdateMessageProcessorsConfig(model.Config{"disabled_processors": []any{}})
	d.UpdateWhitelist(model.Config{"disabled": false})
	d.Wait()

	if len(api.updates) != 3 {
		t.Fatalf("updates = %v, want 3", api.updates)
	}
	cfg, ok := stores.Configurations.Snapshot().Get(model.CustomizationConfig)
	if !ok || cfg["badge_text"] != "QA" {
		t.Errorf("customization = %v", cfg)
	}
	wl, _ := stores.Configurations.Snapshot().Get(model.URLWhiteListConfig)
	if wl["disabled"] != false {
		t.Errorf("whitelist = %v", wl)
	}
}

func TestUpdateCopiesInput(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	d := NewDispatcher(context.Background(), api, NewStores(nil))

	cfg := model.Config{"badge_text": "A"}
	d.Update(model.CustomizationConfig, cfg)
	cfg["badge_text"] = "B"
	close(api.block)
	d.Wait()

	if got := api.configs[model.CustomizationConfig]["badge_text"]; got != "A" {
		t.Errorf("dispatched value = %v, want A", got)
	}
}

func TestBootstrap(t *testing.T) {
	stores := NewStores([]string{"source", "message"})
	d := NewDispatcher(context.Background(), newFakeAPI(), stores)

	d.Bootstrap()
	d.RefreshInputsList()
	d.Search(apiclient.SearchRequest{Query: "level:3"})
	d.Wait()

	if stores.CurrentUser.Snapshot().Username != "admin" {
		t.Error("current user not loaded")
	}
	if len(stores.FieldTypes.Snapshot().Fields) != 1 {
		t.Error("field types not loaded")
	}
	if len(stores.Streams.Snapshot().Streams) != 1 || len(stores.Inputs.Snapshot().Inputs) != 1 {
		t.Error("streams or inputs not loaded")
	}
	if len(stores.Nodes.Snapshot().Nodes) != 0 {
		t.Error("failed nodes request should leave the store empty")
	}
	if stores.Records.Snapshot().TotalResults != 1 || stores.View.Snapshot().ActiveQuery != "level:3" {
		t.Error("search result not stored")
	}
	if got := stores.SelectedFields.Snapshot().Fields; len(got) != 2 {
		t.Errorf("SelectedFields = %v", got)
	}
}

func TestCloseCancelsInFlight(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	d := NewDispatcher(context.Background(), api, NewStores(nil))

	d.List(model.SearchesClusterConfig)
	go close(api.block)
	d.Close()
}
