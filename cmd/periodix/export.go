package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/export"
	"github.com/san-kum/periodix/internal/scene"
	"github.com/san-kum/periodix/internal/storage"
)

func exportTrend(series []float64) string {
	return export.TrendToSVG(series, 800, 300, "#00ccff")
}

// buildModel builds the element model for the export commands.
func buildModel(ref string) (*build.Model, chem.Element, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, chem.Element{}, err
	}
	b, err := newBuilder(cfg)
	if err != nil {
		return nil, chem.Element{}, err
	}
	_, e, err := element(ref)
	if err != nil {
		return nil, chem.Element{}, err
	}
	m, err := b.Build(e, build.ParseMode(mode))
	if err != nil {
		return nil, chem.Element{}, err
	}
	return m, e, nil
}

// save writes the artifact to --out, or into the snapshot store when no
// output file was given.
func save(m *build.Model, e chem.Element, format string, write func(io.Writer) error) error {
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta, err := st.Save(storage.Metadata{
		Symbol: e.Symbol,
		Number: e.Number,
		Mode:   string(m.Mode),
		Format: format,
		Title:  m.Title,
	}, m.Root, write)
	if err != nil {
		return err
	}
	fmt.Printf("snapshot id: %s\n", meta.ID)
	fmt.Printf("file: %s\n", st.Path(&meta))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	m, e, err := buildModel(args[0])
	if err != nil {
		return err
	}
	view := &scene.View{
		Camera:     scene.NewCamera(),
		Lights:     scene.DefaultLights(),
		Background: build.BackgroundColor,
	}
	return save(m, e, "svg", func(w io.Writer) error {
		_, err := io.WriteString(w, export.SceneToSVG(m.Root, view, svgWidth, svgHeight))
		return err
	})
}

func exportGIF(cmd *cobra.Command, args []string) error {
	m, e, err := buildModel(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("rendering %d frames...\n", frames)
	opts := export.GIFOptions{Width: gifWidth, Height: gifHeight, Frames: frames, Delay: delay}
	return save(m, e, "gif", func(w io.Writer) error {
		return export.EncodeGIF(ctx, w, m.Root, opts)
	})
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tELEMENT\tMODE\tFORMAT\tTIME\tNODES")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			s.ID,
			s.Symbol,
			s.Mode,
			strings.ToUpper(s.Format),
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Nodes,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
