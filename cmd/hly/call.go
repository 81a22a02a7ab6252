package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/cliargs"
)

// callCmd is the generic RPC escape hatch.
var callCmd = &cobra.Command{
	Use:   "call <service> <method> [--param value ...]",
	Short: "Call any gateway service method",
	Long: `Invoke an arbitrary method on a gateway service. Parameters are free-form
flags parsed after the method name:

  hly call crm contacts.search --query acme --limit 10
  hly call sell orders.create --sku=A1 --qty=2

Flag parsing for the parameter tail is deliberately open: any flag name is
accepted and forwarded as a string field, and a flag without a value is
sent as boolean true.`,
	// Parameter names are unknowable ahead of time, so cobra must not
	// interpret the tail.
	DisableFlagParsing: true,
	RunE:               runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	parsed := cliargs.Parse(args)
	if _, ok := parsed.Flags["help"]; ok {
		return cmd.Help()
	}
	service, method, err := resolveServiceAndMethod(parsed.Positional)
	if err != nil {
		return exitError(ExitUsage, "hly: usage: hly call <service> <method> [--param value ...]")
	}

	if err := app.requireAuth(); err != nil {
		return err
	}

	var params any
	if len(parsed.Flags) > 0 {
		params = parsed.Params()
	}

	result, err := app.caller().Call(cmd.Context(), service, method, params)
	if err != nil {
		return wrapGatewayError(err)
	}
	return printResult(cmd.OutOrStdout(), result)
}

// resolveServiceAndMethod reads <service> <method> from the positional
// arguments. A single positional is treated as the method when the project
// config names a default service.
func resolveServiceAndMethod(positional []string) (service, method string, err error) {
	switch {
	case len(positional) >= 2:
		return positional[0], positional[1], nil
	case len(positional) == 1 && app.defaultService() != "":
		return app.defaultService(), positional[0], nil
	default:
		return "", "", errMissingService
	}
}

var errMissingService = errors.New("service and method are required")
