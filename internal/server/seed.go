package server

import (
	_ "embed"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/guildview/pkg/source"
)

// seedJSON is a small but complete guild dataset so a fresh install has
// something to browse before anyone wires up real data.
//
//go:embed seed.json
var seedJSON []byte

// SeedDataset decodes the embedded starter dataset. Media fields pass
// through the directory decoders, so the file may use any accepted form.
func SeedDataset() (source.Dataset, error) {
	var ds source.Dataset
	if err := json.Unmarshal(seedJSON, &ds); err != nil {
		return source.Dataset{}, fmt.Errorf("decoding embedded seed: %w", err)
	}
	return ds, nil
}
