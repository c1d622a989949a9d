// Command remindertext prints reminder texts, cards and policies offline.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/business"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

// errInvalid marks a failed validation so the process exits non-zero
// without a usage dump.
var errInvalid = errors.New("invalid")

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	profilePath string
	logLevel    string
	stderr      io.Writer
}

// defaults returns the generator defaults of the --profile file, or nil.
func (o *rootOptions) defaults() (*templates.Defaults, error) {
	if o.profilePath == "" {
		return nil, nil
	}
	logger := logging.NewWithWriter(o.logLevel, o.stderr).Component("remindertext")
	p, err := business.LoadProfileFile(o.profilePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("profile loaded", "path", o.profilePath, "business", p.Name, "industry", p.Industry)
	d := p.TemplateDefaults()
	return &d, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stderr: stderr}
	root := &cobra.Command{
		Use:           "remindertext",
		Short:         "Generate appointment reminder texts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.profilePath, "profile", "", "YAML business profile supplying default business fields")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for stderr output")

	root.AddCommand(
		smsCmd(opts),
		reminderCmd(opts),
		cardCmd(opts),
		policyCmd(opts),
		validatePhoneCmd(),
		validateEmailCmd(),
	)

	// Errors go to stderr once; the exit code carries the failure.
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil && !errors.Is(err, errInvalid) {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
			}
			return err
		}
	}
	return root
}
