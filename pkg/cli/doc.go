/*
Package cli holds helpers shared by the facesconfig commands.

Results are written through a Formatter chosen by the --format flag:

	format, err := cli.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), summary)

Text output uses a result's WriteText method when it has one. ExitCode maps
command errors to process exit codes, separating usage, configuration,
document and I/O failures.
*/
package cli
