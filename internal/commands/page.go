package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"evtask/internal/action"
	"evtask/internal/config"
	"evtask/internal/exitcode"
	"evtask/internal/logging"
	"evtask/internal/output"
	"evtask/internal/service"
	"evtask/internal/view"
)

// page is the view a command patches: the --page snapshot when given,
// otherwise the terminal.
type page struct {
	view.View
	doc   *view.Document
	path  string
	out   io.Writer
	quiet bool
}

func openPage(cfg *config.Config, out io.Writer) (*page, error) {
	p := &page{path: cfg.PagePath, out: out, quiet: cfg.Quiet}
	if cfg.PagePath == "" {
		w := out
		if cfg.Quiet {
			w = io.Discard
		}
		p.View = output.NewTerminal(w)
		return p, nil
	}

	f, err := os.Open(cfg.PagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	doc, err := view.ParseDocument(f)
	if err != nil {
		return nil, err
	}
	p.View = doc
	p.doc = doc
	return p, nil
}

// isDocument reports whether the page is an HTML snapshot.
func (p *page) isDocument() bool {
	return p.doc != nil
}

// close prints the notices collected by a document and writes it back.
func (p *page) close() error {
	if p.doc == nil {
		return nil
	}
	if !p.quiet {
		for _, notice := range p.doc.Notices() {
			fmt.Fprintln(p.out, notice)
		}
	}
	return writeFileAtomic(p.path, p.doc.Render)
}

// writeFileAtomic writes through a temp file in the same directory and renames it over path.
func writeFileAtomic(path string, render func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	defer os.Remove(tmp.Name())

	if fi, err := os.Stat(path); err == nil {
		_ = tmp.Chmod(fi.Mode().Perm())
	}

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}

// runAction opens the page, runs act against a dispatcher bound to it and
// saves the page, whether or not act succeeded.
func runAction(cfg *config.Config, svc service.Service, out, errOut io.Writer, act func(d *action.Dispatcher) error) int {
	p, err := openPage(cfg, out)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	logger := logging.ForCLI(errOut, cfg.LogLevel, cfg.Debug)
	d := action.New(svc, p, action.WithLogger(logger))
	actErr := act(d)

	if err := p.close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if actErr != nil {
		return reportError(errOut, actErr)
	}
	if p.isDocument() && !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// reportError prints err and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	switch {
	case errors.Is(err, service.ErrValidation):
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// reportIDError prints an identifier parse error.
func reportIDError(errOut io.Writer, err error, what string) int {
	if errors.Is(err, ErrIDRequired) {
		fmt.Fprintf(errOut, "error: %s id required\n", what)
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}
