package api

import (
	"github.com/shellac-studio/shellac/internal/assets"
	"github.com/shellac-studio/shellac/internal/magnets"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Assets  assets.System
	Magnets magnets.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	assetsSystem := assets.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Classifier,
		runtime.Logger,
		runtime.Pagination,
	)

	magnetsSystem := magnets.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Assets:  assetsSystem,
		Magnets: magnetsSystem,
	}
}
