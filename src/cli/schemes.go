// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

// rejectedSchemes are listed alongside the supported ones so the table
// shows what a peer would be refused for.
var rejectedSchemes = []tls.SignatureScheme{
	tls.PKCS1WithSHA1,
	tls.ECDSAWithSHA1,
	tls.ECDSAWithP521AndSHA512,
	tls.Ed25519,
}

type schemeRow struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	TLS12 bool   `json:"tls12"`
	TLS13 bool   `json:"tls13"`
}

func schemeRows() []schemeRow {
	schemes := append(verify.SupportedVerifySchemes(), rejectedSchemes...)

	rows := make([]schemeRow, 0, len(schemes))
	for _, s := range schemes {
		rows = append(rows, schemeRow{
			Name:  s.String(),
			Code:  fmt.Sprintf("0x%04x", uint16(s)),
			TLS12: verify.AcceptForTLS12(s) == nil,
			TLS13: verify.AcceptForTLS13(s) == nil,
		})
	}
	return rows
}

func (a *app) newSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List signature schemes and whether TLS 1.2 and TLS 1.3 accept them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := schemeRows()
			out := cmd.OutOrStdout()

			if a.config.Output.JSON {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("error generating JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprint(out, renderSchemes(rows))
			return nil
		},
	}
}

func renderSchemes(rows []schemeRow) string {
	mark := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "no"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Scheme", "Code", "TLS 1.2", "TLS 1.3"})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{r.Name, r.Code, mark(r.TLS12), mark(r.TLS13)})
	}
	table.Bulk(data)
	table.Render()

	return buf.String()
}
