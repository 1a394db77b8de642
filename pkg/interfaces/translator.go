package interfaces

import "context"

// MachineTranslator is the external machine-translation provider contract.
// Implementations return one output per input text, preserving order. Calls
// may fail; the auto-translate bootstrapper treats any error (including
// context timeouts) as a per-language failure.
type MachineTranslator interface {
	Translate(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)
}

// MachineTranslatorFunc adapts a function to the MachineTranslator contract.
type MachineTranslatorFunc func(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)

func (f MachineTranslatorFunc) Translate(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	return f(ctx, texts, sourceLang, targetLang)
}
