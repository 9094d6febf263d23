package actions

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/logconsole/internal/apiclient"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/model"
)

// DefaultRequestTimeout bounds a single dispatched action, retries included.
const DefaultRequestTimeout = 30 * time.Second

// API is the subset of the REST client the dispatcher drives.
type API interface {
	ClusterConfig(ctx context.Context, configType string) (model.Config, error)
	UpdateClusterConfig(ctx context.Context, configType string, cfg model.Config) (model.Config, error)
	MessageProcessorsConfig(ctx context.Context) (model.Config, error)
	UpdateMessageProcessorsConfig(ctx context.Context, cfg model.Config) (model.Config, error)
	URLWhitelist(ctx context.Context) (model.Config, error)
	UpdateURLWhitelist(ctx context.Context, cfg model.Config) (model.Config, error)
	Inputs(ctx context.Context) ([]model.Input, error)
	Nodes(ctx context.Context) ([]model.Node, error)
	Streams(ctx context.Context) ([]model.Stream, error)
	CurrentUser(ctx context.Context) (model.CurrentUser, error)
	FieldTypes(ctx context.Context) (model.FieldTypes, error)
	Search(ctx context.Context, sr apiclient.SearchRequest) (model.SearchResult, error)
}

// Dispatcher issues fire-and-forget requests. Each call returns at once;
// results land in the stores and failures are only logged.
type Dispatcher struct {
	api     API
	stores  *Stores
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher writing into stores. Cancelling ctx
// (or calling Close) aborts in-flight requests.
func NewDispatcher(ctx context.Context, api API, stores *Stores) *Dispatcher {
	ctx, cancel := context.WithCancel(ctx)
	return &Dispatcher{
		api:     api,
		stores:  stores,
		ctx:     ctx,
		cancel:  cancel,
		timeout: DefaultRequestTimeout,
	}
}

// Stores returns the stores the dispatcher writes to.
func (d *Dispatcher) Stores() *Stores {
	return d.stores
}

// Wait blocks until every dispatched action has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close aborts in-flight actions and waits for them to return.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(action, configType string, fn func(ctx context.Context) error) {
	logging.LogDispatch(action, configType)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logging.LogDispatchFailed(action, configType, err)
		}
	}()
}

func (d *Dispatcher) storeConfig(configType string, cfg model.Config) {
	d.stores.Configurations.Update(func(c model.Configurations) model.Configurations {
		return c.With(configType, cfg)
	})
	logging.LogStoreUpdate("configurations", d.stores.Configurations.Snapshot().Len())
}

// List loads one cluster configuration resource. A missing resource
// leaves the key absent.
func (d *Dispatcher) List(configType string) {
	d.dispatch("list", configType, func(ctx context.Context) error {
		cfg, err := d.api.ClusterConfig(ctx, configType)
		if err != nil {
			return err
		}
		d.storeConfig(configType, cfg)
		return nil
	})
}

// ListMessageProcessorsConfig loads the message processor configuration.
func (d *Dispatcher) ListMessageProcessorsConfig() {
	d.dispatch("listMessageProcessorsConfig", model.MessageProcessorsConfig, func(ctx context.Context) error {
		cfg, err := d.api.MessageProcessorsConfig(ctx)
		if err != nil {
			return err
		}
		d.storeConfig(model.MessageProcessorsConfig, cfg)
		return nil
	})
}

// ListWhiteListConfig loads the URL whitelist.
func (d *Dispatcher) ListWhiteListConfig() {
	d.dispatch("listWhiteListConfig", model.URLWhiteListConfig, func(ctx context.Context) error {
		cfg, err := d.api.URLWhitelist(ctx)
		if err != nil {
			return err
		}
		d.storeConfig(model.URLWhiteListConfig, cfg)
		return nil
	})
}

// Update writes one cluster configuration resource and stores the
// server's copy.
func (d *Dispatcher) Update(configType string, cfg model.Config) {
	cfg = cfg.Clone()
	d.dispatch("update", configType, func(ctx context.Context) error {
		out, err := d.api.UpdateClusterConfig(ctx, configType, cfg)
		if err != nil {
			return err
		}
		d.storeConfig(configType, out)
		return nil
	})
}

// UpdateMessageProcessorsConfig writes the message processor configuration.
func (d *Dispatcher) UpdateMessageProcessorsConfig(cfg model.Config) {
	cfg = cfg.Clone()
	d.dispatch("updateMessageProcessorsConfig", model.MessageProcessorsConfig, func(ctx context.Context) error {
		out, err := d.api.UpdateMessageProcessorsConfig(ctx, cfg)
		if err != nil {
			return err
		}
		d.storeConfig(model.MessageProcessorsConfig, out)
		return nil
	})
}

// UpdateWhitelist writes the URL whitelist.
func (d *Dispatcher) UpdateWhitelist(cfg model.Config) {
	cfg = cfg.Clone()
	d.dispatch("updateWhitelist", model.URLWhiteListConfig, func(ctx context.Context) error {
		out, err := d.api.UpdateURLWhitelist(ctx, cfg)
		if err != nil {
			return err
		}
		d.storeConfig(model.URLWhiteListConfig, out)
		return nil
	})
}

// RefreshInputsList reloads the inputs store.
func (d *Dispatcher) RefreshInputsList() {
	d.dispatch("refreshInputsList", "", func(ctx context.Context) error {
		inputs, err := d.api.Inputs(ctx)
		if err != nil {
			return err
		}
		d.stores.Inputs.Set(model.InputList{Inputs: inputs})
		logging.LogStoreUpdate("inputs", len(inputs))
		return nil
	})
}

// RefreshNodes reloads the nodes store.
func (d *Dispatcher) RefreshNodes() {
	d.dispatch("refreshNodes", "", func(ctx context.Context) error {
		nodes, err := d.api.Nodes(ctx)
		if err != nil {
			return err
		}
		d.stores.Nodes.Set(model.NodeList{Nodes: nodes})
		logging.LogStoreUpdate("nodes", len(nodes))
		return nil
	})
}

// RefreshStreams reloads the streams store.
func (d *Dispatcher) RefreshStreams() {
	d.dispatch("refreshStreams", "", func(ctx context.Context) error {
		streams, err := d.api.Streams(ctx)
		if err != nil {
			return err
		}
		d.stores.Streams.Set(model.StreamList{Streams: streams})
		logging.LogStoreUpdate("streams", len(streams))
		return nil
	})
}

// LoadCurrentUser reloads the current user store.
func (d *Dispatcher) LoadCurrentUser() {
	d.dispatch("loadCurrentUser", "", func(ctx context.Context) error {
		user, err := d.api.CurrentUser(ctx)
		if err != nil {
			return err
		}
		d.stores.CurrentUser.Set(user)
		return nil
	})
}

// LoadFieldTypes reloads the field type registry.
func (d *Dispatcher) LoadFieldTypes() {
	d.dispatch("loadFieldTypes", "", func(ctx context.Context) error {
		ft, err := d.api.FieldTypes(ctx)
		if err != nil {
			return err
		}
		d.stores.FieldTypes.Set(ft)
		logging.LogStoreUpdate("field_types", len(ft.Fields))
		return nil
	})
}

// Search runs sr and replaces the records store with the result.
func (d *Dispatcher) Search(sr apiclient.SearchRequest) {
	d.dispatch("search", "", func(ctx context.Context) error {
		res, err := d.api.Search(ctx, sr)
		if err != nil {
			return err
		}
		d.stores.Records.Set(res)
		d.stores.View.Update(func(v model.View) model.View {
			v.ActiveQuery = sr.Query
			return v
		})
		logging.Debug("Search completed",
			zap.String("query", sr.Query),
			zap.Int("records", len(res.Records)),
			zap.Int("total", res.TotalResults),
		)
		return nil
	})
}

// Bootstrap loads everything the screens need on startup.
func (d *Dispatcher) Bootstrap() {
	d.LoadCurrentUser()
	d.LoadFieldTypes()
	d.RefreshNodes()
	d.RefreshStreams()
	d.List(model.SearchesClusterConfig)
}
