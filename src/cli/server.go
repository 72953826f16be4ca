// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

type serverOptions struct {
	name     string
	connect  string
	ocspFile string
	sctFile  string
	logList  string
	tree     bool
	table    bool
}

func (a *app) newServerCommand() *cobra.Command {
	var opts serverOptions

	cmd := &cobra.Command{
		Use:   "server [CHAIN_FILE]",
		Short: "Verify a server certificate chain for a DNS name",
		Example: `  tls-trust-verifier server -r roots.pem --name example.com chain.pem
  tls-trust-verifier server -r roots.pem --connect example.com:443 --log-list log_list.json --table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServer(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "DNS name the chain must be valid for (default: host of --connect)")
	flags.StringVarP(&opts.connect, "connect", "c", "", "fetch the chain from a live server at HOST:PORT")
	flags.StringVar(&opts.ocspFile, "ocsp", "", "stapled OCSP response (DER) to pass along with a chain file")
	flags.StringVar(&opts.sctFile, "sct-list", "", "TLS-encoded SignedCertificateTimestampList to check with a chain file")
	flags.StringVar(&opts.logList, "log-list", "", "CT log list (v3 JSON); enables SCT verification")
	flags.BoolVarP(&opts.tree, "tree", "t", false, "display the presented chain as an ASCII tree")
	flags.BoolVar(&opts.table, "table", false, "display the presented chain as a markdown table")

	return cmd
}

func (a *app) runServer(cmd *cobra.Command, args []string, opts serverOptions) error {
	OperationPerformed = true

	roots, err := a.loadRoots()
	if err != nil {
		return err
	}

	var presented *x509chain.Presented
	switch {
	case opts.connect != "":
		host, portStr, err := net.SplitHostPort(opts.connect)
		if err != nil {
			return fmt.Errorf("invalid --connect address: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid --connect port: %w", err)
		}
		if opts.name == "" {
			opts.name = host
		}

		timeout := time.Duration(a.config.Timeout) * time.Second
		presented, err = x509chain.FetchPresented(cmd.Context(), host, port, timeout)
		if err != nil {
			return err
		}
		logger.Debugf(a.log, "Fetched %d certificates, %d SCTs and %d bytes of OCSP from %s",
			len(presented.Certificates), len(presented.SCTs), len(presented.OCSPResponse), opts.connect)

	case len(args) == 1:
		presented, err = readPresented(args[0], opts)
		if err != nil {
			return err
		}

	default:
		return ErrInputRequired
	}

	if opts.name == "" {
		return ErrNameRequired
	}

	chain := toCertificates(presented.Certificates)
	_, verr := verify.NewWebPKIVerifier(a.options()...).
		VerifyServerCert(roots, chain, opts.name, presented.OCSPResponse)

	logListPath := opts.logList
	if logListPath == "" {
		logListPath = a.config.LogList
	}
	if verr == nil && logListPath != "" {
		logs, err := verify.LoadLogListFile(logListPath)
		if err != nil {
			return err
		}
		logger.Debugf(a.log, "Checking %d SCTs against %d trusted logs", len(presented.SCTs), len(logs))
		verr = verify.NewSCTVerifier(a.options()...).VerifySCTs(chain[0], presented.SCTs, logs)
	}

	if err := a.report(cmd, presented.Certificates, opts, verr); err != nil {
		return err
	}
	if verr != nil {
		return verr
	}

	OperationPerformedSuccessfully = true
	return nil
}

// readPresented loads a chain and its optional OCSP and SCT evidence from files.
func readPresented(chainFile string, opts serverOptions) (*x509chain.Presented, error) {
	decoder := x509certs.New()

	data, err := decoder.ReadFile(chainFile)
	if err != nil {
		return nil, fmt.Errorf("error reading chain file: %w", err)
	}
	ders, err := decoder.DecodeChain(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding chain file: %w", err)
	}

	presented := &x509chain.Presented{Certificates: ders, ServerName: opts.name}

	if opts.ocspFile != "" {
		if presented.OCSPResponse, err = decoder.ReadFile(opts.ocspFile); err != nil {
			return nil, fmt.Errorf("error reading OCSP response: %w", err)
		}
	}

	if opts.sctFile != "" {
		raw, err := decoder.ReadFile(opts.sctFile)
		if err != nil {
			return nil, fmt.Errorf("error reading SCT list: %w", err)
		}
		if presented.SCTs, err = verify.ParseSCTList(raw); err != nil {
			return nil, err
		}
	}

	return presented, nil
}

func (a *app) report(cmd *cobra.Command, ders [][]byte, opts serverOptions, verr error) error {
	out := cmd.OutOrStdout()
	certs := parseForDisplay(ders)

	switch {
	case a.config.Output.JSON:
		data, err := x509chain.ToVisualizationJSON(certs, verdict(verr))
		if err != nil {
			return fmt.Errorf("error generating JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case opts.tree:
		fmt.Fprint(out, x509chain.RenderASCIITree(certs, verr == nil))
	case opts.table:
		fmt.Fprint(out, x509chain.RenderTable(certs, verr == nil))
	default:
		if verr == nil {
			fmt.Fprintf(out, "OK: chain of %d certificates is valid for %s\n", len(ders), opts.name)
		} else {
			fmt.Fprintf(out, "FAIL: %s: %v\n", opts.name, verr)
		}
	}
	return nil
}
