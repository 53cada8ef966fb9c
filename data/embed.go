package data

import (
	_ "embed"
)

//go:embed seed/quotes.json
var SeedQuotes []byte
