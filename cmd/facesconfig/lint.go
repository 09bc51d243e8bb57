package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/facesconfig/pkg/cli"
	"mercator-hq/facesconfig/pkg/facesconfig"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/parser"
	"mercator-hq/facesconfig/pkg/manager"
)

// LintIssue is one problem found in a document.
type LintIssue struct {
	Document   string `json:"document,omitempty" yaml:"document,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
	Type       string `json:"type" yaml:"type"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`

	err *fcErrors.Error
}

// LintReport lists the issues of a lint run.
type LintReport struct {
	Documents []string    `json:"documents" yaml:"documents"`
	Issues    []LintIssue `json:"issues" yaml:"issues"`
}

func newLintReport(documents []string, list *fcErrors.ErrorList) LintReport {
	r := LintReport{Documents: documents, Issues: make([]LintIssue, 0, list.Count())}
	for _, e := range list.Errors {
		e = fcErrors.AddContextToError(e)
		r.Issues = append(r.Issues, LintIssue{
			Document:   e.Location.Document,
			Line:       e.Location.Line,
			Column:     e.Location.Column,
			Type:       string(e.Type),
			Path:       e.Path,
			Message:    e.Message,
			Suggestion: e.Suggestion,
			err:        e,
		})
	}
	return r
}

// WriteText prints every issue with its source context.
func (r LintReport) WriteText(w io.Writer) error {
	if len(r.Issues) == 0 {
		_, err := fmt.Fprintf(w, "%d document(s) OK\n", len(r.Documents))
		return err
	}
	for _, issue := range r.Issues {
		if _, err := fmt.Fprintf(w, "%s\n\n", issue.err.Error()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d issue(s) in %d document(s)\n", len(r.Issues), len(r.Documents))
	return err
}

func newLintCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Check each document and report every failure",
		Long: `Parse every document on its own and report one error per failing
document instead of stopping at the first. When all documents parse on their
own they are parsed together so merge conflicts are reported too.

The exit status is non-zero when any issue is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}
			docs := a.documentsConfig(args)
			if err := a.requirePaths(docs); err != nil {
				return cli.NewCommandError("lint", err)
			}

			sources, err := manager.NewLoader(&docs, a.config.Parser.MaxDocumentSize).Load()
			if err != nil {
				return err
			}
			parsed := make([]parser.Document, len(sources))
			paths := make([]string, len(sources))
			for i, s := range sources {
				parsed[i] = s.Document()
				paths[i] = s.Path
			}

			list := facesconfig.Lint(cmd.Context(), a.newParser(pipelineOptions{}), parsed...)
			report := newLintReport(paths, list)
			if err := cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if list.HasErrors() {
				return fmt.Errorf("lint found %d issue(s): %w", list.Count(), list.Errors[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}
