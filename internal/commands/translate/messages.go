package translatecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const bootstrapFieldMessageType = "pagecms.translate.bootstrap_field"

// BootstrapFieldCommand seeds machine translations for one component field
// across every active non-base language.
type BootstrapFieldCommand struct {
	// EntityType identifies the component table, e.g. "block_title".
	EntityType string `json:"entity_type"`
	// EntityID is the component row to translate.
	EntityID uuid.UUID `json:"entity_id"`
	// Field names the translatable column on the component.
	Field string `json:"field"`
}

// Type implements command.Message.
func (BootstrapFieldCommand) Type() string { return bootstrapFieldMessageType }

// Validate ensures the component reference is complete before handlers execute.
func (cmd BootstrapFieldCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.EntityType, validation.Required),
		validation.Field(&cmd.Field, validation.Required),
		validation.Field(&cmd.EntityID, validation.By(func(any) error {
			if cmd.EntityID == uuid.Nil {
				return validation.NewError("pagecms.translate.bootstrap_field.entity_required", "entity id is required")
			}
			return nil
		})),
	)
}
