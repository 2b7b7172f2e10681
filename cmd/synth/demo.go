// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"os"

	"code.vegaprotocol.io/synth/config"
	"code.vegaprotocol.io/synth/core/broker"
	"code.vegaprotocol.io/synth/core/collateral"
	"code.vegaprotocol.io/synth/core/events"
	"code.vegaprotocol.io/synth/core/factory"
	"code.vegaprotocol.io/synth/core/types"
	"code.vegaprotocol.io/synth/libs/num"
	"code.vegaprotocol.io/synth/logging"

	"github.com/spf13/cobra"
)

// logSubscriber logs every event crossing the bus.
type logSubscriber struct {
	log *logging.Logger
}

func (s *logSubscriber) Types() []events.Type { return []events.Type{events.All} }

func (s *logSubscriber) Push(evts ...events.Event) {
	for _, e := range evts {
		s.log.Info("event",
			logging.String("type", e.Type().String()),
			logging.String("instance", e.InstanceID()),
			logging.String("trace-id", e.TraceID()),
		)
	}
}

func demoCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted collateralize/redeem/settle cycle against a builtin asset",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.NewDefaultConfig()
			if _, err := os.Stat(configPath); err == nil {
				loaded, err := config.Read(configPath)
				if err != nil {
					return err
				}
				cfg = *loaded
			}
			return runDemo(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path of the configuration file")
	return cmd
}

func runDemo(cfg config.Config) error {
	log := logging.NewLoggerFromEnv(cfg.Environment)
	defer log.AtExit()
	ctx := context.Background()

	bkr := broker.New(log, cfg.Broker)
	bkr.Subscribe(&logSubscriber{log: log.Named("events")})

	asset, err := collateral.NewBuiltinAsset("DAI", 0)
	if err != nil {
		return err
	}

	fct := factory.New(log, cfg.Factory, bkr)
	instance, err := fct.NewInstance(ctx, factory.InstanceParams{
		Name:   "Ethereum",
		Symbol: "ETHV",
		Owner:  "protocol-owner",
		Asset:  asset,
		Engine: &types.EngineParams{
			VolatilityCapRatio:   num.NewUint(200),
			MinimumCollateralQty: num.MustUintFromString("20000000000000000000"),
		},
	})
	if err != nil {
		return err
	}

	trader := types.NewParty("trader-1")
	deposit := num.MustUintFromString("400000000000000000000")
	asset.Deposit(trader.Origin, deposit)

	fct.BeginBlock(1)
	if err := instance.Engine.Collateralize(ctx, trader, deposit); err != nil {
		return err
	}
	log.Info("position opened",
		logging.String("vol-balance", num.DecimalFromUintScaled(instance.VolatilityToken.BalanceOf(trader.Origin), 18).String()),
		logging.String("collateral-left", num.DecimalFromUintScaled(asset.BalanceOf(trader.Origin), 18).String()),
	)

	fct.BeginBlock(2)
	half := num.UintZero().Div(instance.VolatilityToken.BalanceOf(trader.Origin), num.NewUint(2))
	if err := instance.Engine.Redeem(ctx, trader, half); err != nil {
		return err
	}

	fct.BeginBlock(3)
	if err := instance.Engine.Settle(ctx, "protocol-owner", num.NewUint(120)); err != nil {
		return err
	}
	remaining := instance.VolatilityToken.BalanceOf(trader.Origin)
	if err := instance.Engine.RedeemSettled(ctx, trader, remaining, remaining); err != nil {
		return err
	}
	if err := instance.Engine.ClaimAccumulatedFees(ctx, "protocol-owner"); err != nil {
		return err
	}

	log.Info("demo complete",
		logging.String("trader-collateral", num.DecimalFromUintScaled(asset.BalanceOf(trader.Origin), 18).String()),
		logging.String("vault-collateral", num.DecimalFromUintScaled(instance.Collateral.VaultBalance(), 18).String()),
	)
	return nil
}
