// Package store provides typed observable stores.
//
// A Store holds the latest snapshot of some externally owned state (inputs,
// nodes, configuration, current user, ...). Screens never reach into
// globals; they are handed a read-only Source and register a callback that
// receives every new snapshot:
//
//	inputs := store.New(model.InputList{})
//	unsubscribe := inputs.Subscribe(func(v model.InputList) {
//	    program.Send(inputsChangedMsg(v))
//	})
//	defer unsubscribe()
//
// Writers (the actions layer) publish snapshots with Set or Update.
// Subscribers are invoked outside the store's lock, in registration order,
// on the writer's goroutine.
package store
