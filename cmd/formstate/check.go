package main

import (
	"errors"
	"fmt"

	"github.com/Azhovan/formstate/formconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a form definition and compile its rules",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := viper.GetString("form")
	if path == "" {
		return errors.New("--form is required")
	}

	def, err := formconfig.Load(cmd.Context(), path, formconfig.Options{EnvPrefix: viper.GetString("env-prefix")})
	if err != nil {
		return err
	}
	if _, err := formconfig.Ruleset(def); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d fields, mode %s\n", len(def.Fields), def.FormMode())
	return nil
}
