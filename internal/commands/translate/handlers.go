// Package translatecmd exposes translation seeding as a command bus message.
package translatecmd

import (
	"context"

	"github.com/goliatone/go-pagecms/internal/autotranslate"
	"github.com/goliatone/go-pagecms/internal/commands"
	"github.com/goliatone/go-pagecms/internal/logging"
	"github.com/goliatone/go-pagecms/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const bootstrapOperation = "translate.bootstrap_field"

var _ command.Commander[BootstrapFieldCommand] = (*BootstrapFieldHandler)(nil)

// BootstrapFieldHandler runs the auto-translate bootstrapper via the shared
// command handler foundation.
type BootstrapFieldHandler struct {
	inner *commands.Handler[BootstrapFieldCommand]
}

// NewBootstrapFieldHandler creates a handler bound to the supplied bootstrapper.
func NewBootstrapFieldHandler(service *autotranslate.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BootstrapFieldCommand]) *BootstrapFieldHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BootstrapFieldCommand) error {
		outcome, err := service.BootstrapField(ctx, msg.EntityType, msg.EntityID, msg.Field)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"seeded": outcome.Seeded(),
			"failed": outcome.Failed(),
		}).Info("translate.command.bootstrap_field.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BootstrapFieldCommand]{
		commands.WithLogger[BootstrapFieldCommand](baseLogger),
		commands.WithOperation[BootstrapFieldCommand](bootstrapOperation),
		commands.WithMessageFields(func(msg BootstrapFieldCommand) map[string]any {
			return map[string]any{
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
				"field":       msg.Field,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BootstrapFieldHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BootstrapFieldCommand].
func (h *BootstrapFieldHandler) Execute(ctx context.Context, msg BootstrapFieldCommand) error {
	return h.inner.Execute(ctx, msg)
}
