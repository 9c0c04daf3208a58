// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/slotkeeper/pkg/adapter/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file actions",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the normalized configuration settings",
	Long: `Load, validate, and normalize the configuration file and print
it as YAML, including the default values of the missing settings.
Passwords are never kept in the configuration file, so the output
may be shared safely.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(4)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding configs: %w", err)
		}
		return enc.Close()
	},
	Args: cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
