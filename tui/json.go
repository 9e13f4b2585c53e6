package tui

import (
	"encoding/json"
	"io"
)

// JSONPresenter renders output as JSON.
type JSONPresenter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONPresenter creates a new JSON presenter.
func NewJSONPresenter(opts PresenterOptions) *JSONPresenter {
	encoder := json.NewEncoder(opts.Writer)
	encoder.SetIndent("", "  ")
	return &JSONPresenter{
		w:       opts.Writer,
		encoder: encoder,
	}
}

// RenderVerdict renders a verdict as JSON.
func (p *JSONPresenter) RenderVerdict(verdict *VerdictView) error {
	return p.encoder.Encode(verdict)
}

// RenderRules renders the pattern library as JSON.
func (p *JSONPresenter) RenderRules(rules *RulesView) error {
	return p.encoder.Encode(rules)
}

// RenderInstall renders the installation result as JSON.
func (p *JSONPresenter) RenderInstall(result *InstallView) error {
	return p.encoder.Encode(result)
}

// RenderUninstall renders the uninstallation result as JSON.
func (p *JSONPresenter) RenderUninstall(result *UninstallView) error {
	return p.encoder.Encode(result)
}

// RenderStatus renders the tool status as JSON.
func (p *JSONPresenter) RenderStatus(status *StatusView) error {
	return p.encoder.Encode(status)
}

// RenderConfig renders the configuration as JSON.
func (p *JSONPresenter) RenderConfig(config *ConfigView) error {
	return p.encoder.Encode(config)
}

// RenderError renders an error message as JSON.
func (p *JSONPresenter) RenderError(err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return p.encoder.Encode(output)
}

// RenderMessage renders a simple message as JSON.
func (p *JSONPresenter) RenderMessage(message string) error {
	output := struct {
		Message string `json:"message"`
	}{
		Message: message,
	}
	return p.encoder.Encode(output)
}

// Ensure JSONPresenter implements Presenter
var _ Presenter = (*JSONPresenter)(nil)
