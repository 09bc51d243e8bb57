// Command facesconfig loads faces configuration documents into one merged
// graph and reports on it.
//
// Usage:
//
//	# Parse documents and print a summary
//	facesconfig parse META-INF/faces-config.xml WEB-INF/faces-config.xml
//
//	# Look up one entity in the merged graph
//	facesconfig inspect component --key javax.faces.HtmlInputText WEB-INF/
//
//	# Report every broken document at once
//	facesconfig lint WEB-INF/
//
//	# Keep the graph loaded, reload on change, serve metrics
//	facesconfig watch --config facesconfig.yaml
package main

import (
	"context"
	"fmt"
	"os"

	"mercator-hq/facesconfig/pkg/cli"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
