// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/areasrp"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/usecase/slotsuc"
	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Parking slots maintenance actions",
	Long: `Parking slots maintenance actions can be chosen by
sub-commands. They perform the same operations which are exposed by
the admin REST APIs, without a running server. The resulting area
summary is printed as a JSON document.`,
}

var slotsInitCmd = &cobra.Command{
	Use:   "init <area-id>",
	Short: "Generate the slots layout of an area if it is missing",
	RunE: runSlots(func(
		ctx context.Context, uc *slotsuc.UseCase, id uuid.UUID,
	) (*model.ParkingArea, error) {
		return uc.InitializeSlots(ctx, id)
	}),
	Args: cobra.ExactArgs(1),
}

var slotsRecalcCmd = &cobra.Command{
	Use:   "recalc <area-id>",
	Short: "Rebuild the slots occupancy and counters of an area",
	Long: `Rebuild the slots occupancy and counters of an area from its
active (parked or paid) vehicles. All occupant links are rewritten
from scratch and the unoccupied slots are aligned with the per-type
capacity of the area.`,
	RunE: runSlots(func(
		ctx context.Context, uc *slotsuc.UseCase, id uuid.UUID,
	) (*model.ParkingArea, error) {
		return uc.RecalculateCounts(ctx, id)
	}),
	Args: cobra.ExactArgs(1),
}

type slotsAction func(
	ctx context.Context, uc *slotsuc.UseCase, id uuid.UUID,
) (*model.ParkingArea, error)

func runSlots(action slotsAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parsing area id %q: %w", args[0], err)
		}
		return withPool(cmd.Context(), func(
			ctx context.Context, c *config.Config, p *postgres.Pool,
		) error {
			uc, err := c.NewSlotsUseCase(
				p, areasrp.New(), vehiclesrp.New(), usersrp.New(),
			)
			if err != nil {
				return fmt.Errorf("creating slots use case: %w", err)
			}
			a, err := action(ctx, uc, id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.Summary())
		})
	}
}

func init() {
	rootCmd.AddCommand(slotsCmd)
	slotsCmd.AddCommand(slotsInitCmd)
	slotsCmd.AddCommand(slotsRecalcCmd)
}
