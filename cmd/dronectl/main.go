package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/localnerve/dronedb/internal/client"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var baseURL string
	api := func() *client.Client { return client.New(baseURL) }

	root := &cobra.Command{
		Use:           "dronectl",
		Short:         "Command line client for the drone model catalog API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", envOr("DRONE_API_URL", "http://localhost:3000"),
		"API base URL including any base path (env DRONE_API_URL)")

	var opts client.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List drone models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(out)(api().List(opts))
		},
	}
	list.Flags().IntVar(&opts.Page, "page", 0, "page number")
	list.Flags().IntVar(&opts.Limit, "limit", 0, "page size (1-100)")
	list.Flags().StringVar(&opts.Category, "category", "", "quadcopter, fixed-wing, hexacopter or octocopter")
	list.Flags().StringVar(&opts.Enabled, "enabled", "", "true or false")
	list.Flags().StringVar(&opts.Search, "search", "", "substring of name, manufacturer or description")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one drone model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(out)(api().Get(args[0]))
		},
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a drone model from a JSON file (- for stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return render(out)(api().Create(body))
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "-", "JSON file")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a drone model from a JSON file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return render(out)(api().Update(args[0], body))
		},
	}
	update.Flags().StringVarP(&file, "file", "f", "-", "JSON file")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a drone model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(out)(api().Delete(args[0]))
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show per-category statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(out)(api().Stats())
		},
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Check the API is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(out)(api().Health())
		},
	}

	root.AddCommand(list, get, create, update, del, stats, health)
	return root
}

// render writes the envelope as indented JSON, then returns the call error
func render(out io.Writer) func(*client.Envelope, error) error {
	return func(env *client.Envelope, err error) error {
		if env != nil {
			raw, merr := json.MarshalIndent(env, "", "  ")
			if merr != nil {
				return merr
			}
			fmt.Fprintln(out, string(raw))
		}
		return err
	}
}

func readBody(stdin io.Reader, file string) ([]byte, error) {
	var body []byte
	var err error
	if file == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty JSON body")
	}
	return body, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
