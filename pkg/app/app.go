// Package app builds the command line application skeleton: flag parsing,
// optional config file loading and options validation, in that order.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunFunc is the application's run callback, invoked once options are
// complete and valid.
type RunFunc func() error

// CliOptions abstracts the flag surface of an application.
type CliOptions interface {
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
	Validate() []error
}

// CompletableOptions may fill in derived defaults after flags and config
// file are applied.
type CompletableOptions interface {
	Complete() error
}

// App is a command line application.
type App struct {
	name        string
	shortDesc   string
	description string
	options     CliOptions
	runFunc     RunFunc

	cmd *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithOptions attaches the application's flag-backed options.
func WithOptions(opts CliOptions) Option {
	return func(a *App) {
		a.options = opts
	}
}

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) {
		a.description = desc
	}
}

// WithRunFunc sets the run callback.
func WithRunFunc(fn RunFunc) Option {
	return func(a *App) {
		a.runFunc = fn
	}
}

// NewApp creates an App with the given name and applies all options.
func NewApp(name, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()
	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          a.runCommand,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	fs := cmd.Flags()
	fs.SortFlags = true
	if a.options != nil {
		a.options.AddFlags(fs)
	}
	addConfigFlag(fs)

	a.cmd = cmd
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if a.options == nil {
		if a.runFunc != nil {
			return a.runFunc()
		}
		return nil
	}

	if err := loadConfig(cmd.Flags(), a.options); err != nil {
		return err
	}

	if completable, ok := a.options.(CompletableOptions); ok {
		if err := completable.Complete(); err != nil {
			return err
		}
	}

	if errs := a.options.Validate(); len(errs) > 0 {
		return aggregate(errs)
	}

	if a.runFunc != nil {
		return a.runFunc()
	}
	return nil
}

// Run executes the application and exits the process on error.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command returns the underlying cobra command, mainly for tests.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

func aggregate(errs []error) error {
	msg := ""
	for i, err := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += err.Error()
	}
	return fmt.Errorf("invalid options: %s", msg)
}
