package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/config"
	"github.com/headlessly/hly/internal/rpc"
)

var initForce bool

// initCmd writes a starter project configuration.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter .headlessly.yaml",
	Long: `Create a .headlessly.yaml in the given directory (default: current
directory) with the hosted gateway and sensible defaults.

This command is non-destructive: it refuses to overwrite an existing file
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .headlessly.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	info, err := os.Stat(dir)
	if err != nil {
		return exitError(ExitUsage, "hly: path %q does not exist", dir)
	}
	if !info.IsDir() {
		return exitError(ExitUsage, "hly: %q is not a directory", dir)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		return exitError(ExitUsage, "hly: %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-chosen path
	if err != nil {
		return fmt.Errorf("hly: create %s (%v)", path, err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from Write below

	starter := &config.Config{
		Gateway:      rpc.DefaultBaseURL,
		DefaultLimit: 25,
	}
	if err := config.Write(f, starter); err != nil {
		return fmt.Errorf("hly: write %s (%v)", path, err)
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(w, "  + %s\n", path)
	_, _ = fmt.Fprintln(w, "\nNext steps:")
	_, _ = fmt.Fprintln(w, "  1. Run: hly login")
	_, _ = fmt.Fprintln(w, "  2. Try: hly search crm \"acme\"")
	return nil
}
