package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/storage"
	"github.com/covered-news/covered/pkg/verdict"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Muestra estadísticas de uso del servicio.",
	Long:  "Prints aggregate statistics from the backend, or from the local journal with --local.",
	RunE: func(cmd *cobra.Command, args []string) error {
		local, _ := cmd.Flags().GetBool("local")
		if local {
			return printLocalStats(cmd)
		}

		client := api.NewClient(viper.GetString("api.base_url"))
		stats, err := client.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CONSULTAS\tUSUARIOS\tLONGITUD MEDIA\t")
		fmt.Fprintf(w, "%d\t%d\t%.1f\t\n",
			stats.TotalConsultas, stats.UsuariosUnicos, stats.LongitudPromedioTexto)
		w.Flush()
		return nil
	},
}

func printLocalStats(cmd *cobra.Command) error {
	path, err := storage.DefaultPath()
	if err != nil {
		return err
	}
	journal, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("no local journal: %w", err)
	}
	defer journal.Close()

	stats, err := journal.Stats(cmd.Context())
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Println("No data in the local journal to generate stats.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "RESULTADO\tCONSULTAS\t")
	for code, count := range stats.PorResultado {
		fmt.Fprintf(w, "%s\t%d\t\n", verdict.Present(verdict.Code(code)).Status, count)
	}
	fmt.Fprintln(w, " \t \t")
	fmt.Fprintf(w, "TOTAL\t%d\t\n", stats.Total)
	w.Flush()
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolP("local", "", false, "Read the local journal instead of the backend")
}
