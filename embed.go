package neuron

import "embed"

// EmbeddedAssets contains static assets shipped with the engine, currently
// just gate.js (the client side of the channel-confirmation step).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
