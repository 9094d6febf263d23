package actions

import (
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/store"
)

// Stores holds every observable store the screens read from.
type Stores struct {
	Configurations *store.Store[model.Configurations]
	Inputs         *store.Store[model.InputList]
	Nodes          *store.Store[model.NodeList]
	Streams        *store.Store[model.StreamList]
	CurrentUser    *store.Store[model.CurrentUser]
	FieldTypes     *store.Store[model.FieldTypes]
	SelectedFields *store.Store[model.SelectedFields]
	Records        *store.Store[model.SearchResult]
	View           *store.Store[model.View]
}

// NewStores creates empty stores. selected seeds the selected fields store.
func NewStores(selected []string) *Stores {
	return &Stores{
		Configurations: store.New(model.Configurations{}),
		Inputs:         store.New(model.InputList{}),
		Nodes:          store.New(model.NodeList{}),
		Streams:        store.New(model.StreamList{}),
		CurrentUser:    store.New(model.CurrentUser{}),
		FieldTypes:     store.New(model.FieldTypes{}),
		SelectedFields: store.New(model.SelectedFields{Fields: append([]string(nil), selected...)}),
		Records:        store.New(model.SearchResult{}),
		View:           store.New(model.View{ID: "search", Title: "Search", ActiveQuery: "*"}),
	}
}
