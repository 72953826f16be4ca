// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

var (
	// OperationPerformed reports whether a verification was attempted.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether the last verification succeeded.
	OperationPerformedSuccessfully bool
)

var (
	// ErrRootsRequired is returned when no trust bundle was configured.
	ErrRootsRequired = errors.New("a trust bundle is required (--roots, config \"roots\" or " + RootsEnv + ")")
	// ErrInputRequired is returned when neither a chain file nor --connect was given.
	ErrInputRequired = errors.New("a chain file or --connect is required")
	// ErrNameRequired is returned when the server name to verify is unknown.
	ErrNameRequired = errors.New("--name is required when verifying a chain file")
	// ErrHandshakeAborted is returned when a client policy asks to abort the handshake.
	ErrHandshakeAborted = errors.New("client policy aborted the handshake")
	// ErrClientCertRequired is returned when a mandatory client certificate is missing.
	ErrClientCertRequired = errors.New("client certificate required by policy")
)

// app carries the state shared by every subcommand.
type app struct {
	version string
	log     logger.Logger

	configFile string
	roots      string
	jsonOutput bool
	verbose    bool
	at         string

	config *Config
	now    verify.TimeFunc
}

// Execute runs the root command with the process arguments.
//
// Parameters:
//   - ctx: Context for cancellation, forwarded to network operations
//   - version: Version string reported by --version
//   - log: Logger for diagnostics
//
// Returns:
//   - error: Error from the executed subcommand, including verification failures
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree without executing it.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.Discard
	}
	a := &app{version: version, log: log}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "Verify TLS certificate chains, handshake evidence and SCTs",
		Long: `tls-trust-verifier applies the certificate trust policy of a TLS stack
to chains read from files or presented by live servers: chain validation,
name binding, client authentication policies and Certificate Transparency.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to configuration file (JSON or YAML, default $"+ConfigEnv+")")
	flags.StringVarP(&a.roots, "roots", "r", "", "trust bundle (PEM, DER or PKCS#7)")
	flags.BoolVarP(&a.jsonOutput, "json", "j", false, "emit JSON reports and log lines")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "emit debug log lines")
	flags.StringVar(&a.at, "at", "", "validate at this RFC 3339 time instead of now")

	rootCmd.AddCommand(a.newServerCommand(), a.newClientCommand(), a.newSchemesCommand())

	return rootCmd
}

// setup merges configuration, flags and environment before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	if a.roots != "" {
		config.Roots = a.roots
	}
	config.Output.JSON = config.Output.JSON || a.jsonOutput
	config.Output.Verbose = config.Output.Verbose || a.verbose
	a.config = config

	if l, ok := a.log.(*logger.CLILogger); ok {
		if config.Output.JSON {
			a.log = logger.NewJSONLogger(cmd.ErrOrStderr(), false)
		} else {
			l.SetVerbose(config.Output.Verbose)
		}
	}

	a.now = verify.TryNow
	if a.at != "" {
		at, err := time.Parse(time.RFC3339, a.at)
		if err != nil {
			return fmt.Errorf("invalid --at time: %w", err)
		}
		a.now = verify.FixedTime(at)
	}

	return nil
}

func (a *app) loadRoots() (*anchors.RootStore, error) {
	if a.config.Roots == "" {
		return nil, ErrRootsRequired
	}

	store := anchors.NewRootStore()
	n, err := store.LoadFile(a.config.Roots)
	if err != nil {
		return nil, err
	}
	logger.Debugf(a.log, "Loaded %d trust anchors from %s", n, a.config.Roots)
	return store, nil
}

func (a *app) options() []verify.Option {
	return []verify.Option{verify.WithTimeFunc(a.now), verify.WithLogger(a.log)}
}

func toCertificates(ders [][]byte) []verify.Certificate {
	chain := make([]verify.Certificate, 0, len(ders))
	for _, der := range ders {
		chain = append(chain, der)
	}
	return chain
}

// parseForDisplay parses what it can of a chain for reporting. Certificates
// that fail to parse are left out of reports; verification sees them as sent.
func parseForDisplay(ders [][]byte) []*x509.Certificate {
	certs := make([]*x509.Certificate, 0, len(ders))
	for _, der := range ders {
		if cert, err := x509.ParseCertificate(der); err == nil {
			certs = append(certs, cert)
		}
	}
	return certs
}

func verdict(err error) string {
	if err != nil {
		return err.Error()
	}
	return "verified"
}
