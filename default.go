package tame

import (
	"context"

	"github.com/tameorm/tame/schema"
)

var std = New()

// Default returns the instance used by the package level functions
func Default() *Tame {
	return std
}

// LoadApp loads an app on the default instance
func LoadApp(ctx context.Context, opts LoadOptions) error {
	return std.LoadApp(ctx, opts)
}

// GenerateAppSchemas generates schemas on the default instance
func GenerateAppSchemas(ctx context.Context, app string, safe bool) error {
	return std.GenerateAppSchemas(ctx, app, safe)
}

// GetModel returns a model loaded on the default instance
func GetModel(app, model string) (*schema.Model, error) {
	return std.GetModel(app, model)
}

// Close closes the connections of the default instance
func Close() error {
	return std.Close()
}
