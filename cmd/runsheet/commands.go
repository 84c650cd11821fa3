package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/runsheet/internal/core"
)

func newNewCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a project from a YAML day definition file",
		Long: `Create a project from a YAML file such as:

  title: Spring Live
  initialRows: 8
  days:
    - date: "2024-04-06"
      venue: Hall A
      start: "13:00"
      intermissionCount: 1
    - start: "12:00"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProjectRequest(file)
			if err != nil {
				return err
			}
			id, p, err := a.service.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			s := newStyles(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d days)\n",
				s.ok.Render("created"), s.title.Render(p.Meta.Title), len(p.Days))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML day definition file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readProjectRequest decodes a NewProjectRequest from a YAML file.
func readProjectRequest(path string) (core.NewProjectRequest, error) {
	var req core.NewProjectRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parse %s: %w", path, err)
	}
	return req, nil
}

func newImportCmd(a *app) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Ingest a roster CSV, optionally replacing a project's roster",
		Long: `Ingest a roster CSV and print the acts and issues found.

Without --project the file is only checked. With --project the roster
replaces the project's acts, keeping ids of acts with the same name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			if projectID == "" {
				res, err := a.service.ValidateRoster(cmd.Context(), f)
				if err != nil {
					return err
				}
				writeImportReport(out, core.ImportResult{
					Acts:   res.Acts,
					Days:   res.Days,
					Errors: res.Messages(),
					Issues: res.Issues,
				}, false)
				return nil
			}

			res, err := a.service.ImportCSV(cmd.Context(), projectID, f)
			if err != nil {
				return err
			}
			writeImportReport(out, res, true)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project to import into")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check PROJECT",
		Short: "Print the run-sheet of a project with its conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.service.Project(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeRunSheet(cmd.OutOrStdout(), p, core.BuildConflictReport(p))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.service.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			writeProjectList(cmd.OutOrStdout(), list)
			return nil
		},
	}
}
