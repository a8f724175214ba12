package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and refresh conversion rates",
	}
	cmd.AddCommand(ratesListCmd())
	cmd.AddCommand(ratesRefreshCmd())
	return cmd
}

func ratesListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest rate per currency pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			rates, err := env.services.ConversionRate.ListConversionRates(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FROM\tTO\tRATE\tINVERSE\tCREATED")
			for _, r := range rates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.FromCurrency, r.ToCurrency, r.Rate.String(), r.InverseRate.String(), r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "filter by source currency")
	cmd.Flags().StringVar(&to, "to", "", "filter by target currency")

	return cmd
}

func ratesRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload rates from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			n, err := env.services.ConversionRate.RefreshRates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rates\n", n)
			return nil
		},
	}
}
