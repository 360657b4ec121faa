// Package core defines sentinel errors.
package core

import "errors"

var (
	// Packet decoding errors
	ErrPacketTooShort = errors.New("ng5gdata: packet too short")
	ErrNoNetworkLayer = errors.New("ng5gdata: no decodable network layer")

	// Run-level errors
	ErrEmptyDataset = errors.New("ng5gdata: empty dataset")

	// Configuration errors
	ErrConfigInvalid = errors.New("ng5gdata: invalid configuration")
)
