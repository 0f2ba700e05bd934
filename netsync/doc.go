// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package netsync accepts block headers received from peers into a header store.

A HeaderAcceptor starts from a trusted checkpoint seeded with SeedCheckpoint.
Every header passed to ProcessHeader must extend a block that is already
stored.  Its difficulty is checked with the verifier of the network profile
before it is stored.  Headers that fail the check are remembered in a bounded
cache so a peer resending them is turned away without another verification.
*/
package netsync
