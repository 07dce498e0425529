package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/legalcanvas/pkg/errors"
	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output string // suite JSON path
	model  string // overrides the configured model
}

// generateCommand creates the generate command, which sends contract text to
// the model and stores the returned suite.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{output: "suite.json"}

	cmd := &cobra.Command{
		Use:   "generate [contract.txt]",
		Short: "Break a contract down into a suite of visual sheets",
		Long: `Generate sends the contract text to the Gemini model and writes the
returned suite as JSON. The text is read from the given file, or from stdin
when the file is "-" or omitted.

The API key is read from GEMINI_API_KEY (or API_KEY).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runGenerate(cmd.Context(), cmd.InOrStdin(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "suite JSON output file")
	cmd.Flags().StringVar(&opts.model, "model", "", "Gemini model (default from config)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, stdin io.Reader, path string, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}

	text, err := readContract(stdin, path)
	if err != nil {
		return err
	}
	if err := errors.ValidateContractText(text); err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	gen, err := c.newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("generating suite", "model", cfg.Model, "chars", len(text))
	prog := newProgress(logger)

	genCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	spinner := newSpinner(genCtx, "Analyzing legal mechanics...")
	spinner.Start()
	s, err := gen.Generate(genCtx, text)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	spinner.Stop()

	if err := suite.WriteFile(opts.output, s); err != nil {
		return err
	}

	printSuccess("Architected %s", StyleHighlight.Render(s.ProjectName))
	printSuite(s)
	printFile(opts.output)
	printNewline()
	printNextStep("Render the sheets", fmt.Sprintf("%s render %s -f svg,png", appName, opts.output))
	printNextStep("Browse the sheets", fmt.Sprintf("%s browse %s", appName, opts.output))

	prog.done("Generated suite", "sheets", len(s.Sheets))
	return nil
}

// readContract reads the contract text from path, or from stdin for "-".
func readContract(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read contract: %w", err)
	}
	return string(data), nil
}
