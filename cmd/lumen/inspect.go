package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lumen/internal/metadata"
	"lumen/internal/metafmt"
	"lumen/internal/observ"
	"lumen/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] module.lmm",
	Short: "Inspect serialized module metadata",
	Long:  `Inspect decodes a .lmm metadata envelope and renders its declaration records`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	inspectCmd.Flags().Bool("ui", false, "browse the metadata interactively")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	interactive, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	timer := observ.NewTimer()
	doneDecode := timer.Track("decode")
	env, err := metadata.ReadModuleFile(path)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}
	doneDecode(fmt.Sprintf("%d classes", len(env.Classes)))

	doneRender := timer.Track("render")
	defer func() {
		doneRender(format)
		if timings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}()

	if interactive {
		var b strings.Builder
		if err := metafmt.Pretty(&b, env, metafmt.PrettyOpts{Color: false}); err != nil {
			return err
		}
		program := tea.NewProgram(
			ui.NewBrowserModel(env.ModuleName, b.String()),
			tea.WithOutput(os.Stdout),
			tea.WithAltScreen(),
		)
		_, err := program.Run()
		return err
	}

	switch format {
	case "pretty":
		return metafmt.Pretty(os.Stdout, env, metafmt.PrettyOpts{Color: useColor(cmd, os.Stdout)})
	case "json":
		return metafmt.JSON(os.Stdout, env)
	default:
		return fmt.Errorf("unknown format %q (want pretty|json)", format)
	}
}
