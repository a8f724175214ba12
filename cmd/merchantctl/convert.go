package main

import (
	"fmt"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/core/services"
	"github.com/SscSPs/merchant_payments/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "convert [amount] [from] [to]",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount using the same fallback chain as the API:
live rates from the database, then cached rates, then the configured fallback pair.

Examples:
  merchantctl convert 1000 XOF USD
  merchantctl convert 1 usd xof --offline`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			from := domain.NormalizeCurrencyCode(args[1])
			to := domain.NormalizeCurrencyCode(args[2])
			if !from.IsWellFormed() || !to.IsWellFormed() {
				return fmt.Errorf("currency codes must be three letters")
			}

			var (
				conversion domain.Conversion
				precision  *utils.PrecisionTable
			)
			if offline {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				precision = cfg.Precision
				engine := services.NewConversionEngine(services.NewRateStore(nil),
					services.WithPrecisionTable(cfg.Precision),
					services.WithFallbackRate(cfg.FallbackRate),
				)
				conversion = engine.ConvertWithDetail(amount, from, to, nil)
			} else {
				env, err := openEnvironment(cmd.Context())
				if err != nil {
					return err
				}
				defer env.Close()
				precision = env.cfg.Precision

				quote, err := env.services.ConversionRate.Quote(cmd.Context(), amount, string(from), string(to))
				if err != nil {
					return err
				}
				conversion = *quote
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s = %s\n", conversion.Amount.String(), conversion.FromCurrency, utils.FormatAmount(conversion.Converted, conversion.ToCurrency, precision))
			fmt.Fprintf(out, "rate: %s (%s)\n", conversion.Rate.String(), conversion.Tier)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "use built-in and configured fallback rates only")

	return cmd
}
