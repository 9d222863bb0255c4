/*
Package cli provides output formatting, error types and signal handling
for the callisto command.

Output Formatting:

Commands print results as text (default), JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Values implementing Table render as aligned columns in text mode and as
rows in CSV mode.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
