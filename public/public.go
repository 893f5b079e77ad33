// Package public holds static assets embedded into the server binary.
package public

import _ "embed"

// TrackerScript is the browser snippet websites embed to report events.
//
//go:embed tracknest.js
var TrackerScript []byte
