// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

// Client authentication policy names accepted by --policy.
const (
	policyRequire  = "require"
	policyOptional = "optional"
	policyNone     = "none"
	policyDeny     = "deny"
)

// ErrUnknownPolicy is returned for a --policy value that names no policy.
var ErrUnknownPolicy = fmt.Errorf("unknown client auth policy (want %s, %s, %s or %s)",
	policyRequire, policyOptional, policyNone, policyDeny)

type clientReport struct {
	Policy    string `json:"policy"`
	Offered   bool   `json:"offered"`
	Mandatory bool   `json:"mandatory"`
	Subjects  int    `json:"advertisedSubjects"`
	Presented int    `json:"presented"`
	Verdict   string `json:"verdict"`
}

func (a *app) newClientCommand() *cobra.Command {
	var policy, sni string

	cmd := &cobra.Command{
		Use:   "client [CHAIN_FILE]",
		Short: "Run a client certificate through a client authentication policy",
		Long: `Walks through the server side of client authentication as a handshake
would: whether a certificate is requested, whether it is mandatory, which
root subjects are advertised, and whether the presented chain is accepted.
Without CHAIN_FILE the client is treated as anonymous.`,
		Example: `  tls-trust-verifier client -r client-roots.pem --policy require client-chain.pem
  tls-trust-verifier client -r client-roots.pem --policy optional`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if policy == "" {
				policy = a.config.ClientAuth.Policy
			}
			return a.runClient(cmd, args, policy, sni)
		},
	}

	cmd.Flags().StringVarP(&policy, "policy", "p", "", "client auth policy: require, optional, none or deny (default from config, else require)")
	cmd.Flags().StringVar(&sni, "sni", "", "server name the client sent, if any")

	return cmd
}

func (a *app) newClientPolicy(name string) (verify.ClientCertVerifier, error) {
	switch name {
	case policyNone:
		return verify.NoClientAuth{}, nil
	case policyDeny:
		return verify.DenyClientAuth{}, nil
	case policyRequire, policyOptional:
		roots, err := a.loadRoots()
		if err != nil {
			return nil, err
		}
		if name == policyRequire {
			return verify.NewAllowAnyAuthenticatedClient(roots, a.options()...), nil
		}
		return verify.NewAllowAnyAnonymousOrAuthenticatedClient(roots, a.options()...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// runClient drives a policy in handshake order. VerifyClientCert is only
// called when a certificate was requested and the client sent one.
func (a *app) runClient(cmd *cobra.Command, args []string, policyName, sni string) error {
	OperationPerformed = true

	policy, err := a.newClientPolicy(policyName)
	if err != nil {
		return err
	}

	rep := clientReport{Policy: policyName}
	rep.Offered = policy.OfferClientAuth()

	mandatory, ok := policy.ClientAuthMandatory(sni)
	if !ok {
		return ErrHandshakeAborted
	}
	rep.Mandatory = mandatory

	var verr error
	switch {
	case !rep.Offered:
		rep.Verdict = "client authentication not requested"

	default:
		subjects, ok := policy.ClientAuthRootSubjects(sni)
		if !ok {
			return ErrHandshakeAborted
		}
		rep.Subjects = len(subjects)

		var chain []verify.Certificate
		if len(args) == 1 {
			decoder := x509certs.New()
			data, err := decoder.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading chain file: %w", err)
			}
			ders, err := decoder.DecodeChain(data)
			if err != nil {
				return fmt.Errorf("error decoding chain file: %w", err)
			}
			chain = toCertificates(ders)
		}
		rep.Presented = len(chain)

		switch {
		case len(chain) > 0:
			_, verr = policy.VerifyClientCert(chain, sni)
			rep.Verdict = verdict(verr)
		case mandatory:
			verr = ErrClientCertRequired
			rep.Verdict = verr.Error()
		default:
			rep.Verdict = "anonymous client accepted"
		}
	}

	if err := a.reportClient(cmd, rep); err != nil {
		return err
	}
	if verr != nil {
		return verr
	}

	OperationPerformedSuccessfully = true
	return nil
}

func (a *app) reportClient(cmd *cobra.Command, rep clientReport) error {
	out := cmd.OutOrStdout()

	if a.config.Output.JSON {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("error generating JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "policy:    %s\n", rep.Policy)
	fmt.Fprintf(out, "offered:   %t\n", rep.Offered)
	fmt.Fprintf(out, "mandatory: %t\n", rep.Mandatory)
	if rep.Offered {
		fmt.Fprintf(out, "subjects:  %d\n", rep.Subjects)
		fmt.Fprintf(out, "presented: %d\n", rep.Presented)
	}
	fmt.Fprintf(out, "verdict:   %s\n", rep.Verdict)
	return nil
}
