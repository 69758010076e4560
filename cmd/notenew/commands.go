// Subcommands for the notenew CLI: version, init, serve, export, import.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MehmetDevlp/notenew/internal/bridge"
	"github.com/MehmetDevlp/notenew/pkg/notenew"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the notenew version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			out, _ := json.Marshal(map[string]string{"version": notenew.Version})
			fmt.Println(string(out))
			return
		}
		fmt.Println("notenew", notenew.Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the workspace store",
	Long: `Initialize the workspace store: create the data directory, back up any
existing database file, and apply schema migrations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if err := store.Close(); err != nil {
			return err
		}
		fmt.Println("workspace initialized")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace operations over stdin/stdout",
	Long: `Serve reads line-delimited JSON requests from stdin and writes one
response per line to stdout. Requests are dispatched one at a time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		handler := bridge.NewHandler(store)
		return handler.Serve(os.Stdin, os.Stdout, log)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export DIR",
	Short: "Export the workspace as JSONL files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := store.ExportJSONL(args[0]); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Println("exported to", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Import JSONL files into the workspace",
	Long: `Import loads JSONL files produced by export into the store inside one
transaction. The target store should be empty; imported rows must not
collide with existing ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := store.ImportJSONL(args[0]); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Println("imported from", args[0])
		return nil
	},
}
