// Package model defines the domain types shared by the console's stores,
// API client and screens.
//
// Values in this package are treated as immutable snapshots once they have
// been published to a store. Helpers that "modify" a snapshot, such as
// Configurations.With, return a copy instead of mutating the receiver.
package model
