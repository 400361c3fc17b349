package system

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/transfer"
)

type ExportCmd struct {
	Out string `help:"Write the export to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	doc, err := transfer.Export(ctx.Store, time.Now())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	var w io.Writer = os.Stdout
	if c.Out != "" {
		f, err := os.OpenFile(c.Out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := transfer.Write(w, doc); err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Printf("✓ Exported %d categories to %s\n", len(doc.Categories), c.Out)
	}
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"YAML file produced by export." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	doc, err := transfer.Read(f)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	summary, err := transfer.Import(ctx.Store, doc)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("✓ Imported %d categories, %d trackers, %d records\n", summary.Categories, summary.Trackers, summary.Records)
	for _, name := range summary.SkippedTrackers {
		fmt.Printf("  skipped existing tracker: %s\n", name)
	}
	return nil
}
