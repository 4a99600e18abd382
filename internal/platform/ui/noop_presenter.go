// internal/platform/ui/noop_presenter.go
package ui

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para tests.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Banner(info RunInfo)                             {}
func (n *NoopPresenter) OutputDir(path string, dryRun bool)              {}
func (n *NoopPresenter) ToolStatus(name string, found bool)              {}
func (n *NoopPresenter) StageHeader(info StageInfo)                      {}
func (n *NoopPresenter) Section(title string)                            {}
func (n *NoopPresenter) Command(description, command, outputPath string) {}
func (n *NoopPresenter) DryRun(msg string)                               {}
func (n *NoopPresenter) StreamLine(line string)                          {}
func (n *NoopPresenter) Info(msg string)                                 {}
func (n *NoopPresenter) Success(msg string)                              {}
func (n *NoopPresenter) Warning(msg string)                              {}
func (n *NoopPresenter) Error(msg string)                                {}
func (n *NoopPresenter) Recap(info RecapInfo)                            {}
func (n *NoopPresenter) Complete(info CompleteInfo)                      {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
